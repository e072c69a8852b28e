// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"time"
)

// SurveyType identifies the question set of a survey and which score it carries.
type SurveyType string

// Survey type constants
const (
	SurveyTypeNPS  SurveyType = "NPS"
	SurveyTypeCSAT SurveyType = "CSAT"
	SurveyTypeCES  SurveyType = "CES"
)

// Score field names as posted by the rendering client
const (
	FieldNPSScore  = "nps_score"
	FieldCSATScore = "csat_score"
	FieldCESScore  = "ces_score"
)

// Response status markers stored inside responseData
const (
	StatusCompleted = "completed"
)

// NPS categories
const (
	CategoryPromoter  = "promoter"
	CategoryPassive   = "passive"
	CategoryDetractor = "detractor"
)

// ScoreField returns the answer key holding this type's score.
// Types without a score return "".
func (t SurveyType) ScoreField() string {
	switch t {
	case SurveyTypeNPS:
		return FieldNPSScore
	case SurveyTypeCSAT:
		return FieldCSATScore
	case SurveyTypeCES:
		return FieldCESScore
	default:
		return ""
	}
}

// Domain types

type Organization struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PrimaryColor string    `json:"primaryColor"`
	Logo         *string   `json:"logo"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Survey struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organizationId"`
	Name           string     `json:"name"`
	Type           SurveyType `json:"type"`
	SurveyJSON     string     `json:"-"` // serialized question definitions
	CreatedAt      time.Time  `json:"createdAt"`
}

type SurveyResponse struct {
	ID             string     `json:"id"`
	SurveyID       string     `json:"surveyId"`
	OrganizationID string     `json:"organizationId"`
	ContactEmail   *string    `json:"contactEmail,omitempty"`
	NPSScore       *int       `json:"npsScore,omitempty"`
	CSATScore      *int       `json:"csatScore,omitempty"`
	CESScore       *int       `json:"cesScore,omitempty"`
	ResponseData   *string    `json:"-"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// Completed reports whether the response has reached its terminal state.
func (r SurveyResponse) Completed() bool {
	return r.CompletedAt != nil
}

// OrganizationBranding is the only part of an organization shown to respondents.
type OrganizationBranding struct {
	Name         string  `json:"name"`
	Logo         *string `json:"logo"`
	PrimaryColor string  `json:"primaryColor"`
}

// ResponseRecord is a response joined with its survey and organization branding.
type ResponseRecord struct {
	Response     SurveyResponse
	Survey       Survey
	Organization OrganizationBranding
}

// Completion is the single update applied when a response is submitted.
type Completion struct {
	ResponseData string
	NPSScore     *int
	CSATScore    *int
	CESScore     *int
	CompletedAt  time.Time
}

// Score returns the first present score, checking nps, csat then ces.
func (c Completion) Score() *int {
	switch {
	case c.NPSScore != nil:
		return c.NPSScore
	case c.CSATScore != nil:
		return c.CSATScore
	case c.CESScore != nil:
		return c.CESScore
	default:
		return nil
	}
}

// Response types

type SurveyDefinition struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       SurveyType      `json:"type"`
	SurveyJSON json.RawMessage `json:"surveyJson"`
}

type SurveyView struct {
	ID           string               `json:"id"`
	Survey       SurveyDefinition     `json:"survey"`
	Organization OrganizationBranding `json:"organization"`
	ContactEmail *string              `json:"contactEmail"`
}

type SubmissionResult struct {
	ID       string     `json:"id"`
	Score    *int       `json:"score"`
	Type     SurveyType `json:"type"`
	Category string     `json:"category,omitempty"`
	Demo     bool       `json:"demo,omitempty"`
}

type TemplateSummary struct {
	Type  SurveyType `json:"type"`
	Title string     `json:"title"`
}

// Envelope

// APIResponse wraps every JSON body. Error carries a stable, machine-checkable
// string and Message a human-readable explanation.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

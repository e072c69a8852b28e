// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"time"

	"github.com/danielhkuo/celeru-survey/models"
)

// Collection names used by MongoStore
const (
	organizationCollection = "organizations"
	surveyCollection       = "surveys"
	responseCollection     = "survey_responses"
)

type organizationDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	PrimaryColor string    `bson:"primaryColor"`
	Logo         *string   `bson:"logo,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
}

type surveyDocument struct {
	ID             string    `bson:"_id"`
	OrganizationID string    `bson:"organizationId"`
	Name           string    `bson:"name"`
	Type           string    `bson:"type"`
	SurveyJSON     string    `bson:"surveyJson"`
	CreatedAt      time.Time `bson:"createdAt"`
}

// completedAt is always written (null while open) so the open filter matches on it
type responseDocument struct {
	ID             string     `bson:"_id"`
	SurveyID       string     `bson:"surveyId"`
	OrganizationID string     `bson:"organizationId"`
	ContactEmail   *string    `bson:"contactEmail,omitempty"`
	NPSScore       *int       `bson:"npsScore,omitempty"`
	CSATScore      *int       `bson:"csatScore,omitempty"`
	CESScore       *int       `bson:"cesScore,omitempty"`
	ResponseData   *string    `bson:"responseData,omitempty"`
	CompletedAt    *time.Time `bson:"completedAt"`
	CreatedAt      time.Time  `bson:"createdAt"`
}

func newOrganizationDocument(org models.Organization) organizationDocument {
	return organizationDocument{
		ID:           org.ID,
		Name:         org.Name,
		PrimaryColor: org.PrimaryColor,
		Logo:         org.Logo,
		CreatedAt:    org.CreatedAt.UTC(),
	}
}

func (d organizationDocument) branding() models.OrganizationBranding {
	return models.OrganizationBranding{
		Name:         d.Name,
		Logo:         d.Logo,
		PrimaryColor: d.PrimaryColor,
	}
}

func newSurveyDocument(s models.Survey) surveyDocument {
	return surveyDocument{
		ID:             s.ID,
		OrganizationID: s.OrganizationID,
		Name:           s.Name,
		Type:           string(s.Type),
		SurveyJSON:     s.SurveyJSON,
		CreatedAt:      s.CreatedAt.UTC(),
	}
}

func (d surveyDocument) model() models.Survey {
	return models.Survey{
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		Type:           models.SurveyType(d.Type),
		SurveyJSON:     d.SurveyJSON,
		CreatedAt:      d.CreatedAt,
	}
}

func newResponseDocument(r models.SurveyResponse) responseDocument {
	doc := responseDocument{
		ID:             r.ID,
		SurveyID:       r.SurveyID,
		OrganizationID: r.OrganizationID,
		ContactEmail:   r.ContactEmail,
		NPSScore:       r.NPSScore,
		CSATScore:      r.CSATScore,
		CESScore:       r.CESScore,
		ResponseData:   r.ResponseData,
		CreatedAt:      r.CreatedAt.UTC(),
	}
	if r.CompletedAt != nil {
		t := r.CompletedAt.UTC()
		doc.CompletedAt = &t
	}
	return doc
}

func (d responseDocument) model() models.SurveyResponse {
	return models.SurveyResponse{
		ID:             d.ID,
		SurveyID:       d.SurveyID,
		OrganizationID: d.OrganizationID,
		ContactEmail:   d.ContactEmail,
		NPSScore:       d.NPSScore,
		CSATScore:      d.CSATScore,
		CESScore:       d.CESScore,
		ResponseData:   d.ResponseData,
		CompletedAt:    d.CompletedAt,
		CreatedAt:      d.CreatedAt,
	}
}

// completionUpdate builds the $set document; absent scores are left untouched.
func completionUpdate(c models.Completion) map[string]any {
	set := map[string]any{
		"responseData": c.ResponseData,
		"completedAt":  c.CompletedAt.UTC(),
	}
	if c.NPSScore != nil {
		set["npsScore"] = *c.NPSScore
	}
	if c.CSATScore != nil {
		set["csatScore"] = *c.CSATScore
	}
	if c.CESScore != nil {
		set["cesScore"] = *c.CESScore
	}
	return set
}

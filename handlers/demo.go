// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"strings"

	"github.com/danielhkuo/celeru-survey/models"
	"github.com/danielhkuo/celeru-survey/templates"
)

// Fixed content served for demo links
const (
	demoSurveyID     = "demo-nps-survey"
	demoSurveyName   = "Customer Experience Survey"
	demoOrgName      = "Celeru Demo"
	demoPrimaryColor = "#0ea5e9"
	demoContactEmail = "demo@example.com"
)

// demoView is the survey shown for every demo link
func demoView(responseID string) models.SurveyView {
	email := demoContactEmail
	return models.SurveyView{
		ID: responseID,
		Survey: models.SurveyDefinition{
			ID:         demoSurveyID,
			Name:       demoSurveyName,
			Type:       models.SurveyTypeNPS,
			SurveyJSON: templates.NPS(),
		},
		Organization: models.OrganizationBranding{
			Name:         demoOrgName,
			Logo:         nil,
			PrimaryColor: demoPrimaryColor,
		},
		ContactEmail: &email,
	}
}

// demoSubmission categorizes the NPS answer without storing anything.
// Numeric strings are accepted; an unreadable score is treated like a missing one.
func demoSubmission(responseID string, answers map[string]any) models.SubmissionResult {
	score := demoScore(answers)
	return models.SubmissionResult{
		ID:       responseID,
		Score:    score,
		Type:     models.SurveyTypeNPS,
		Category: NPSCategory(score),
		Demo:     true,
	}
}

// demoScore reads nps_score leniently: "10" counts the same as 10
func demoScore(answers map[string]any) *int {
	v := answers[models.FieldNPSScore]
	if str, ok := v.(string); ok {
		v = json.Number(strings.TrimSpace(str))
	}
	score, err := ScoreValue(map[string]any{models.FieldNPSScore: v}, models.FieldNPSScore)
	if err != nil {
		return nil
	}
	return score
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"time"

	"github.com/danielhkuo/celeru-survey/models"
)

// isoMillis matches the timestamp format of JavaScript's toISOString
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// NPS thresholds
const (
	promoterMin = 9
	passiveMin  = 7
)

var errInvalidScore = errors.New("score must be a whole number within the 32-bit integer range")

// NPSCategory buckets a Net Promoter score. A missing score counts as a detractor.
func NPSCategory(score *int) string {
	switch {
	case score == nil:
		return models.CategoryDetractor
	case *score >= promoterMin:
		return models.CategoryPromoter
	case *score >= passiveMin:
		return models.CategoryPassive
	default:
		return models.CategoryDetractor
	}
}

// ScoreValue reads a whole-number score from answers[key].
// Returns nil when the key is absent or null, errInvalidScore when the value
// is not an integral number or does not fit an INTEGER column.
func ScoreValue(answers map[string]any, key string) (*int, error) {
	v, ok := answers[key]
	if !ok || v == nil {
		return nil, nil
	}

	var f float64
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return checkRange(float64(i))
		}
		parsed, err := n.Float64()
		if err != nil {
			return nil, errInvalidScore
		}
		f = parsed
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return nil, errInvalidScore
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, errInvalidScore
	}
	return checkRange(f)
}

// checkRange bounds a whole number to the 32-bit INTEGER score columns
func checkRange(f float64) (*int, error) {
	if f < math.MinInt32 || f > math.MaxInt32 {
		return nil, errInvalidScore
	}
	score := int(f)
	return &score, nil
}

// BuildCompletion extracts the score relevant to surveyType and serializes the
// answers with submission metadata. Survey types without a score field store
// the answers only.
func BuildCompletion(surveyType models.SurveyType, answers map[string]any, now time.Time) (models.Completion, error) {
	c := models.Completion{CompletedAt: now.UTC()}

	if field := surveyType.ScoreField(); field != "" {
		score, err := ScoreValue(answers, field)
		if err != nil {
			return models.Completion{}, fmt.Errorf("%s: %w", field, err)
		}
		switch surveyType {
		case models.SurveyTypeNPS:
			c.NPSScore = score
		case models.SurveyTypeCSAT:
			c.CSATScore = score
		case models.SurveyTypeCES:
			c.CESScore = score
		}
	}

	data := make(map[string]any, len(answers)+2)
	maps.Copy(data, answers)
	data["submittedAt"] = c.CompletedAt.Format(isoMillis)
	data["status"] = models.StatusCompleted

	raw, err := json.Marshal(data)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to encode response data: %w", err)
	}
	c.ResponseData = string(raw)

	return c, nil
}

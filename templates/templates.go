// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package templates

import (
	"embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/celeru-survey/models"
)

//go:embed definitions/*.yaml
var definitions embed.FS

type template struct {
	title   string
	payload json.RawMessage
}

// order of Types(); also the set of supported templates
var order = []models.SurveyType{
	models.SurveyTypeNPS,
	models.SurveyTypeCSAT,
	models.SurveyTypeCES,
}

var files = map[models.SurveyType]string{
	models.SurveyTypeNPS:  "definitions/nps.yaml",
	models.SurveyTypeCSAT: "definitions/csat.yaml",
	models.SurveyTypeCES:  "definitions/ces.yaml",
}

var registry = mustLoad()

func mustLoad() map[models.SurveyType]template {
	reg := make(map[models.SurveyType]template, len(files))
	for typ, name := range files {
		tmpl, err := load(name)
		if err != nil {
			panic(fmt.Sprintf("templates: %s: %v", name, err))
		}
		reg[typ] = tmpl
	}
	return reg
}

func load(name string) (template, error) {
	raw, err := definitions.ReadFile(name)
	if err != nil {
		return template{}, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return template{}, fmt.Errorf("failed to parse template: %w", err)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return template{}, fmt.Errorf("failed to encode template: %w", err)
	}

	title, _ := doc["title"].(string)
	return template{title: title, payload: payload}, nil
}

// Lookup returns the question definitions for a survey type.
// The returned slice is a copy and may be modified by the caller.
func Lookup(t models.SurveyType) (json.RawMessage, bool) {
	tmpl, ok := registry[t]
	if !ok {
		return nil, false
	}
	return clone(tmpl.payload), true
}

// NPS returns the Net Promoter Score template, used as the fallback for
// surveys whose stored definitions cannot be parsed.
func NPS() json.RawMessage {
	return clone(registry[models.SurveyTypeNPS].payload)
}

// Types lists the survey types that have a template.
func Types() []models.SurveyType {
	return append([]models.SurveyType(nil), order...)
}

// Summaries lists every template's type and title.
func Summaries() []models.TemplateSummary {
	out := make([]models.TemplateSummary, 0, len(order))
	for _, t := range order {
		out = append(out, models.TemplateSummary{Type: t, Title: registry[t].title})
	}
	return out
}

func clone(b json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), b...)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, view, and envelope types for the API.

# Domain Types

Persisted records:

  - Organization: tenant with branding (name, primaryColor, logo)
  - Survey: name, type, and serialized SurveyJS question definitions
  - SurveyResponse: one respondent's instance of a survey, open until completedAt is set

# View Types

Types returned to the rendering client:

  - SurveyView: survey definition, organization branding, contact email
  - SurveyDefinition: id, name, type, surveyJson
  - OrganizationBranding: name, logo, primaryColor (never other organization fields)
  - SubmissionResult: id, score, type (plus category and demo for demo links)

# Envelope

Every body is wrapped in APIResponse:

	{"success": true, "data": {...}}
	{"success": false, "error": "Survey not found", "message": "..."}

# Constants

Survey types and their score fields:

	SurveyTypeNPS  -> nps_score
	SurveyTypeCSAT -> csat_score
	SurveyTypeCES  -> ces_score
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Celeru survey API.

# Handler Types

  - SurveyHandler: survey fetch and answer submission
  - TemplateHandler: built-in question templates
  - HealthHandler: liveness with a store ping

SurveyHandler depends only on store.ResponseRepository:

	surveyHandler := handlers.NewSurveyHandler(st)

# Survey Flow

A response is created outside the API and reached through its link:

	GET  /api/survey/{responseId} → GetSurvey (definitions + branding)
	POST /api/survey/{responseId} → SubmitSurvey (answers, once)

A response moves from open to completed exactly once. Completed responses
answer 410 on fetch and 400 on submit.

# Scores

The score key depends on the survey type: nps_score, csat_score or ces_score.
A present score must be a whole number that fits a 32-bit integer. Other survey types store answers
without a score.

# Demo Links

Response ids starting with "test" are demo links. They are served a fixed NPS
survey and their submissions are categorized (promoter >= 9, passive >= 7,
detractor otherwise) without touching the repository.
*/
package handlers

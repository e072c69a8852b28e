// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/celeru-survey/ids"
	"github.com/danielhkuo/celeru-survey/middleware"
	"github.com/danielhkuo/celeru-survey/models"
	"github.com/danielhkuo/celeru-survey/store"
	"github.com/danielhkuo/celeru-survey/templates"
)

// Error codes returned in the envelope's error field
const (
	errInvalidLink      = "Invalid survey link"
	errInvalidScoreCode = "Invalid score"
	errNotFound         = "Survey not found"
	errCompleted        = "Survey already completed"
	errInternal         = "Internal server error"
)

// Respondent-facing messages
const (
	msgInvalidLink   = "This survey link is missing a response identifier"
	msgNotFound      = "This survey link may be invalid or expired"
	msgCompleted     = "Thank you! This survey has already been completed."
	msgLoadFailed    = "Unable to load survey. Please try again later."
	msgSubmitFailed  = "Unable to submit survey. Please try again."
	msgSubmitted     = "Survey submitted successfully"
	msgDemoSubmitted = "Survey completed successfully!"
)

type SurveyHandler struct {
	repo store.ResponseRepository
	now  func() time.Time
}

func NewSurveyHandler(repo store.ResponseRepository) *SurveyHandler {
	return &SurveyHandler{repo: repo, now: time.Now}
}

// GetSurvey handles GET /api/survey/{responseId}
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, "responseId")
	if strings.TrimSpace(responseID) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, errInvalidLink, msgInvalidLink)
		return
	}

	// Demo links never touch the repository
	if ids.IsDemo(responseID) {
		slog.Info("demo survey requested", "response_id", responseID)
		middleware.SuccessResponse(w, http.StatusOK, "", demoView(responseID))
		return
	}

	rec, err := h.repo.FindResponse(r.Context(), responseID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, errNotFound, msgNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to load survey response", "response_id", responseID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, errInternal, msgLoadFailed)
		return
	}

	if rec.Response.Completed() {
		middleware.ErrorResponse(w, http.StatusGone, errCompleted, msgCompleted)
		return
	}

	view := models.SurveyView{
		ID: rec.Response.ID,
		Survey: models.SurveyDefinition{
			ID:         rec.Survey.ID,
			Name:       rec.Survey.Name,
			Type:       rec.Survey.Type,
			SurveyJSON: surveyDefinitions(rec.Survey),
		},
		Organization: rec.Organization,
		ContactEmail: rec.Response.ContactEmail,
	}

	slog.Info("survey served", "response_id", responseID, "survey_id", rec.Survey.ID)

	middleware.SuccessResponse(w, http.StatusOK, "", view)
}

// SubmitSurvey handles POST /api/survey/{responseId}
func (h *SurveyHandler) SubmitSurvey(w http.ResponseWriter, r *http.Request) {
	responseID := chi.URLParam(r, "responseId")
	if strings.TrimSpace(responseID) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, errInvalidLink, msgInvalidLink)
		return
	}

	var answers map[string]any
	if err := middleware.ParseJSONBody(r, &answers); err != nil || answers == nil {
		slog.Error("failed to parse survey answers", "response_id", responseID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, errInternal, msgSubmitFailed)
		return
	}

	// Demo links are categorized and echoed back, nothing is stored
	if ids.IsDemo(responseID) {
		result := demoSubmission(responseID, answers)
		slog.Info("demo survey submitted", "response_id", responseID, "category", result.Category)
		middleware.SuccessResponse(w, http.StatusOK, msgDemoSubmitted, result)
		return
	}

	rec, err := h.repo.FindResponse(r.Context(), responseID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, errNotFound, msgNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to load survey response", "response_id", responseID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, errInternal, msgSubmitFailed)
		return
	}

	if rec.Response.Completed() {
		middleware.ErrorResponse(w, http.StatusBadRequest, errCompleted, msgCompleted)
		return
	}

	completion, err := BuildCompletion(rec.Survey.Type, answers, h.now())
	if errors.Is(err, errInvalidScore) {
		middleware.ErrorResponse(w, http.StatusBadRequest, errInvalidScoreCode, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to build completion", "response_id", responseID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, errInternal, msgSubmitFailed)
		return
	}

	err = h.repo.CompleteResponse(r.Context(), responseID, completion)
	switch {
	case errors.Is(err, store.ErrAlreadyCompleted):
		middleware.ErrorResponse(w, http.StatusBadRequest, errCompleted, msgCompleted)
		return
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, errNotFound, msgNotFound)
		return
	case err != nil:
		slog.Error("failed to complete survey response", "response_id", responseID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, errInternal, msgSubmitFailed)
		return
	}

	score := completion.Score()
	slog.Info("survey completed",
		"response_id", responseID,
		"survey_type", rec.Survey.Type,
		"has_score", score != nil,
	)

	middleware.SuccessResponse(w, http.StatusOK, msgSubmitted, models.SubmissionResult{
		ID:    responseID,
		Score: score,
		Type:  rec.Survey.Type,
	})
}

// surveyDefinitions returns the stored question definitions, or the NPS
// template when they are not a JSON object.
func surveyDefinitions(s models.Survey) json.RawMessage {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s.SurveyJSON), &probe); err != nil || probe == nil {
		slog.Warn("malformed survey definitions, using NPS template",
			"survey_id", s.ID,
			"error", err,
		)
		return templates.NPS()
	}
	return json.RawMessage(s.SurveyJSON)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/celeru-survey/middleware"
	"github.com/danielhkuo/celeru-survey/models"
	"github.com/danielhkuo/celeru-survey/templates"
)

type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

// ListTemplates handles GET /api/templates
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	middleware.SuccessResponse(w, http.StatusOK, "", templates.Summaries())
}

// GetTemplate handles GET /api/templates/{type}
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	surveyType := models.SurveyType(strings.ToUpper(chi.URLParam(r, "type")))

	payload, ok := templates.Lookup(surveyType)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Template not found",
			"No template exists for survey type "+string(surveyType))
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, "", payload)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/danielhkuo/celeru-survey/cliparse"
	"github.com/danielhkuo/celeru-survey/handlers"
	"github.com/danielhkuo/celeru-survey/middleware"
	"github.com/danielhkuo/celeru-survey/store"
)

// Banner is the body served at the root path
const Banner = "celeru survey API v1"

func NewRouter(st store.Store, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithLogging)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(st)
	templateHandler := handlers.NewTemplateHandler()
	healthHandler := handlers.NewHealthHandler(st)

	// Health check
	r.Get("/health", healthHandler.Health)

	// Survey collection (public, keyed by response link)
	r.Get("/api/survey/{responseId}", surveyHandler.GetSurvey)
	r.Post("/api/survey/{responseId}", surveyHandler.SubmitSurvey)

	// Built-in templates
	r.Get("/api/templates", templateHandler.ListTemplates)
	r.Get("/api/templates/{type}", templateHandler.GetTemplate)

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found", "No route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed",
			r.Method+" is not supported for "+r.URL.Path)
	})

	return r
}

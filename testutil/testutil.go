// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/celeru-survey/cliparse"
	"github.com/danielhkuo/celeru-survey/db"
	"github.com/danielhkuo/celeru-survey/models"
	"github.com/danielhkuo/celeru-survey/store"
	"github.com/danielhkuo/celeru-survey/templates"
)

// TestDBURL is an in-memory sqlite database, private to each connection pool
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a SQL store over a fresh test database
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	return store.NewSQLStore(SetupTestDB(t), db.DialectSQLite)
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    TestDBURL,
		DatabaseType:   cliparse.DatabaseSQLite,
		MongoDatabase:  "celeru_test",
		AllowedOrigins: []string{"*"},
		BaseURL:        "http://localhost:3000",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// CreateTestOrganization creates an organization with fixed branding
func CreateTestOrganization(t *testing.T, s store.Seeder) models.Organization {
	t.Helper()

	org := models.Organization{
		Name:         "Test Org",
		PrimaryColor: "#112233",
	}
	if err := s.CreateOrganization(context.Background(), &org); err != nil {
		t.Fatalf("Failed to create test organization: %v", err)
	}
	return org
}

// CreateTestSurvey creates a survey of the given type. An empty surveyJSON
// stores the built-in template for that type.
func CreateTestSurvey(t *testing.T, s store.Seeder, orgID string, surveyType models.SurveyType, surveyJSON string) models.Survey {
	t.Helper()

	if surveyJSON == "" {
		if payload, ok := templates.Lookup(surveyType); ok {
			surveyJSON = string(payload)
		}
	}

	survey := models.Survey{
		OrganizationID: orgID,
		Name:           "Test " + string(surveyType) + " Survey",
		Type:           surveyType,
		SurveyJSON:     surveyJSON,
	}
	if err := s.CreateSurvey(context.Background(), &survey); err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}
	return survey
}

// CreateTestResponse creates a response for survey.
// completed marks it as already submitted.
func CreateTestResponse(t *testing.T, s store.Seeder, survey models.Survey, completed bool) models.SurveyResponse {
	t.Helper()

	email := "respondent@example.com"
	resp := models.SurveyResponse{
		SurveyID:       survey.ID,
		OrganizationID: survey.OrganizationID,
		ContactEmail:   &email,
	}
	if completed {
		at := time.Now().UTC().Add(-time.Hour)
		data := `{"status":"completed"}`
		resp.CompletedAt = &at
		resp.ResponseData = &data
	}

	if err := s.CreateResponse(context.Background(), &resp); err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}
	return resp
}

// CreateOpenResponse creates an organization, a survey of surveyType and an
// open response in one step
func CreateOpenResponse(t *testing.T, s store.Seeder, surveyType models.SurveyType) models.SurveyResponse {
	t.Helper()

	org := CreateTestOrganization(t, s)
	survey := CreateTestSurvey(t, s, org.ID, surveyType, "")
	return CreateTestResponse(t, s, survey, false)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var payload []byte
		switch b := body.(type) {
		case string:
			payload = []byte(b)
		case []byte:
			payload = b
		default:
			payload, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// WithURLParams attaches chi route parameters to a request, for calling
// handlers without going through the router
func WithURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Envelope is the decoded form of models.APIResponse with a raw data field
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// DecodeEnvelope decodes the response envelope and, when data is non-nil,
// its data field
func DecodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) Envelope {
	t.Helper()

	var env Envelope
	AssertJSON(t, w, &env)
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("Failed to decode envelope data: %v", err)
		}
	}
	return env
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/celeru-survey/models"
	"github.com/danielhkuo/celeru-survey/store"
	"github.com/danielhkuo/celeru-survey/templates"
	"github.com/danielhkuo/celeru-survey/testutil"
)

// failingRepo fails every call with err
type failingRepo struct {
	err      error
	findHits int
}

func (f *failingRepo) FindResponse(ctx context.Context, id string) (*models.ResponseRecord, error) {
	f.findHits++
	return nil, f.err
}

func (f *failingRepo) CompleteResponse(ctx context.Context, id string, c models.Completion) error {
	return f.err
}

func getSurvey(h *SurveyHandler, id string) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("GET", "/api/survey/"+id, nil, nil)
	req = testutil.WithURLParams(req, map[string]string{"responseId": id})
	w := httptest.NewRecorder()
	h.GetSurvey(w, req)
	return w
}

func submitSurvey(h *SurveyHandler, id string, body interface{}) *httptest.ResponseRecorder {
	req := testutil.MakeRequest("POST", "/api/survey/"+id, body, nil)
	req = testutil.WithURLParams(req, map[string]string{"responseId": id})
	w := httptest.NewRecorder()
	h.SubmitSurvey(w, req)
	return w
}

func TestGetSurvey(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSurveyHandler(st)

	org := testutil.CreateTestOrganization(t, st)
	survey := testutil.CreateTestSurvey(t, st, org.ID, models.SurveyTypeNPS, `{"title":"Custom","pages":[]}`)
	open := testutil.CreateTestResponse(t, st, survey, false)
	completed := testutil.CreateTestResponse(t, st, survey, true)

	t.Run("open response", func(t *testing.T) {
		w := getSurvey(handler, open.ID)
		testutil.AssertStatus(t, w, http.StatusOK)

		var view models.SurveyView
		env := testutil.DecodeEnvelope(t, w, &view)
		assert.True(t, env.Success)
		assert.Equal(t, open.ID, view.ID)
		assert.Equal(t, survey.ID, view.Survey.ID)
		assert.Equal(t, survey.Name, view.Survey.Name)
		assert.Equal(t, models.SurveyTypeNPS, view.Survey.Type)
		assert.JSONEq(t, `{"title":"Custom","pages":[]}`, string(view.Survey.SurveyJSON))
		assert.Equal(t, models.OrganizationBranding{Name: "Test Org", PrimaryColor: "#112233"}, view.Organization)
		require.NotNil(t, view.ContactEmail)
		assert.Equal(t, "respondent@example.com", *view.ContactEmail)
	})

	t.Run("completed response is gone", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			w := getSurvey(handler, completed.ID)
			testutil.AssertStatus(t, w, http.StatusGone)

			env := testutil.DecodeEnvelope(t, w, nil)
			assert.False(t, env.Success)
			assert.Equal(t, "Survey already completed", env.Error)
			assert.Equal(t, "Thank you! This survey has already been completed.", env.Message)
		}
	})

	t.Run("unknown response", func(t *testing.T) {
		w := getSurvey(handler, "does-not-exist")
		testutil.AssertStatus(t, w, http.StatusNotFound)

		env := testutil.DecodeEnvelope(t, w, nil)
		assert.Equal(t, "Survey not found", env.Error)
		assert.Equal(t, "This survey link may be invalid or expired", env.Message)
	})

	t.Run("empty id", func(t *testing.T) {
		w := getSurvey(handler, "")
		testutil.AssertStatus(t, w, http.StatusBadRequest)

		env := testutil.DecodeEnvelope(t, w, nil)
		assert.Equal(t, "Invalid survey link", env.Error)
	})
}

func TestGetSurveyMalformedDefinitions(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSurveyHandler(st)

	tests := []struct {
		name       string
		surveyJSON string
	}{
		{"not json", `{not json`},
		{"json array", `[1,2,3]`},
		{"json scalar", `42`},
		{"json null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org := testutil.CreateTestOrganization(t, st)
			survey := testutil.CreateTestSurvey(t, st, org.ID, models.SurveyTypeCSAT, tt.surveyJSON)
			resp := testutil.CreateTestResponse(t, st, survey, false)

			w := getSurvey(handler, resp.ID)
			testutil.AssertStatus(t, w, http.StatusOK)

			var view models.SurveyView
			testutil.DecodeEnvelope(t, w, &view)
			assert.JSONEq(t, string(templates.NPS()), string(view.Survey.SurveyJSON))
		})
	}
}

func TestGetSurveyDemo(t *testing.T) {
	repo := &failingRepo{err: errors.New("should not be called")}
	handler := NewSurveyHandler(repo)

	for _, id := range []string{"test", "test-123", "testing"} {
		t.Run(id, func(t *testing.T) {
			w := getSurvey(handler, id)
			testutil.AssertStatus(t, w, http.StatusOK)

			var view models.SurveyView
			testutil.DecodeEnvelope(t, w, &view)
			assert.Equal(t, id, view.ID)
			assert.Equal(t, "demo-nps-survey", view.Survey.ID)
			assert.Equal(t, "Customer Experience Survey", view.Survey.Name)
			assert.Equal(t, models.SurveyTypeNPS, view.Survey.Type)
			assert.JSONEq(t, string(templates.NPS()), string(view.Survey.SurveyJSON))
			assert.Equal(t, "Celeru Demo", view.Organization.Name)
			assert.Nil(t, view.Organization.Logo)
			assert.Equal(t, "#0ea5e9", view.Organization.PrimaryColor)
			require.NotNil(t, view.ContactEmail)
			assert.Equal(t, "demo@example.com", *view.ContactEmail)
		})
	}

	assert.Zero(t, repo.findHits, "demo ids must not reach the repository")
}

func TestGetSurveyRepositoryFailure(t *testing.T) {
	handler := NewSurveyHandler(&failingRepo{err: errors.New("connection refused")})

	w := getSurvey(handler, "abc")
	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	env := testutil.DecodeEnvelope(t, w, nil)
	assert.Equal(t, "Internal server error", env.Error)
	assert.Equal(t, "Unable to load survey. Please try again later.", env.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestSubmitSurveyDemo(t *testing.T) {
	repo := &failingRepo{err: errors.New("should not be called")}
	handler := NewSurveyHandler(repo)

	tests := []struct {
		name      string
		body      map[string]any
		wantScore *int
		wantCat   string
	}{
		{"promoter", map[string]any{"nps_score": 9}, intPtr(9), models.CategoryPromoter},
		{"top promoter", map[string]any{"nps_score": 10}, intPtr(10), models.CategoryPromoter},
		{"passive", map[string]any{"nps_score": 7}, intPtr(7), models.CategoryPassive},
		{"detractor", map[string]any{"nps_score": 6}, intPtr(6), models.CategoryDetractor},
		{"zero", map[string]any{"nps_score": 0}, intPtr(0), models.CategoryDetractor},
		{"missing", map[string]any{"nps_reason": "meh"}, nil, models.CategoryDetractor},
		{"non numeric", map[string]any{"nps_score": "nine"}, nil, models.CategoryDetractor},
		{"numeric string", map[string]any{"nps_score": "10"}, intPtr(10), models.CategoryPromoter},
		{"padded numeric string", map[string]any{"nps_score": " 7 "}, intPtr(7), models.CategoryPassive},
		{"empty string", map[string]any{"nps_score": ""}, nil, models.CategoryDetractor},
		{"huge", map[string]any{"nps_score": 1e300}, nil, models.CategoryDetractor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submitSurvey(handler, "test-demo", tt.body)
			testutil.AssertStatus(t, w, http.StatusOK)

			var result models.SubmissionResult
			env := testutil.DecodeEnvelope(t, w, &result)
			assert.True(t, env.Success)
			assert.Equal(t, "Survey completed successfully!", env.Message)
			assert.Equal(t, "test-demo", result.ID)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, models.SurveyTypeNPS, result.Type)
			assert.Equal(t, tt.wantCat, result.Category)
			assert.True(t, result.Demo)
		})
	}

	assert.Zero(t, repo.findHits, "demo ids must not reach the repository")
}

func TestSubmitSurveyNPS(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSurveyHandler(st)
	fixed := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	handler.now = func() time.Time { return fixed }

	resp := testutil.CreateOpenResponse(t, st, models.SurveyTypeNPS)

	w := submitSurvey(handler, resp.ID, map[string]any{"nps_score": 8, "nps_reason": "Good support"})
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.SubmissionResult
	env := testutil.DecodeEnvelope(t, w, &result)
	assert.Equal(t, "Survey submitted successfully", env.Message)
	assert.Equal(t, resp.ID, result.ID)
	assert.Equal(t, intPtr(8), result.Score)
	assert.Equal(t, models.SurveyTypeNPS, result.Type)
	assert.Empty(t, result.Category)
	assert.False(t, result.Demo)

	rec, err := st.FindResponse(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, intPtr(8), rec.Response.NPSScore)
	assert.Nil(t, rec.Response.CSATScore)
	assert.Nil(t, rec.Response.CESScore)
	require.NotNil(t, rec.Response.CompletedAt)
	assert.True(t, fixed.Equal(*rec.Response.CompletedAt))

	require.NotNil(t, rec.Response.ResponseData)
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(*rec.Response.ResponseData), &data))
	assert.Equal(t, float64(8), data["nps_score"])
	assert.Equal(t, "Good support", data["nps_reason"])
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, "2025-03-14T09:26:53.000Z", data["submittedAt"])

	// A second submission is rejected and leaves the record untouched
	w = submitSurvey(handler, resp.ID, map[string]any{"nps_score": 3})
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	env = testutil.DecodeEnvelope(t, w, nil)
	assert.Equal(t, "Survey already completed", env.Error)

	rec, err = st.FindResponse(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, intPtr(8), rec.Response.NPSScore)
}

func TestSubmitSurveyScoreByType(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSurveyHandler(st)

	answers := map[string]any{"nps_score": 10, "csat_score": 4, "ces_score": 2}

	tests := []struct {
		surveyType models.SurveyType
		wantNPS    *int
		wantCSAT   *int
		wantCES    *int
		wantScore  *int
	}{
		{models.SurveyTypeNPS, intPtr(10), nil, nil, intPtr(10)},
		{models.SurveyTypeCSAT, nil, intPtr(4), nil, intPtr(4)},
		{models.SurveyTypeCES, nil, nil, intPtr(2), intPtr(2)},
		{models.SurveyType("CUSTOM"), nil, nil, nil, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.surveyType), func(t *testing.T) {
			resp := testutil.CreateOpenResponse(t, st, tt.surveyType)

			w := submitSurvey(handler, resp.ID, answers)
			testutil.AssertStatus(t, w, http.StatusOK)

			var result models.SubmissionResult
			testutil.DecodeEnvelope(t, w, &result)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.surveyType, result.Type)

			rec, err := st.FindResponse(context.Background(), resp.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNPS, rec.Response.NPSScore)
			assert.Equal(t, tt.wantCSAT, rec.Response.CSATScore)
			assert.Equal(t, tt.wantCES, rec.Response.CESScore)
			assert.True(t, rec.Response.Completed())
		})
	}
}

func TestSubmitSurveyZeroScore(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSurveyHandler(st)

	resp := testutil.CreateOpenResponse(t, st, models.SurveyTypeNPS)

	w := submitSurvey(handler, resp.ID, map[string]any{"nps_score": 0})
	testutil.AssertStatus(t, w, http.StatusOK)

	var raw struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	testutil.AssertJSON(t, w, &raw)
	assert.Equal(t, "0", string(raw.Data["score"]))
}

func TestSubmitSurveyMissingScore(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSurveyHandler(st)

	resp := testutil.CreateOpenResponse(t, st, models.SurveyTypeNPS)

	w := submitSurvey(handler, resp.ID, map[string]any{"nps_reason": "no score given"})
	testutil.AssertStatus(t, w, http.StatusOK)

	var raw struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	testutil.AssertJSON(t, w, &raw)
	assert.Equal(t, "null", string(raw.Data["score"]))
}

func TestSubmitSurveyErrors(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSurveyHandler(st)

	org := testutil.CreateTestOrganization(t, st)
	survey := testutil.CreateTestSurvey(t, st, org.ID, models.SurveyTypeNPS, "")
	open := testutil.CreateTestResponse(t, st, survey, false)
	completed := testutil.CreateTestResponse(t, st, survey, true)

	tests := []struct {
		name       string
		id         string
		body       interface{}
		wantStatus int
		wantError  string
	}{
		{"unknown id", "does-not-exist", map[string]any{"nps_score": 5}, http.StatusNotFound, "Survey not found"},
		{"completed", completed.ID, map[string]any{"nps_score": 5}, http.StatusBadRequest, "Survey already completed"},
		{"empty id", "", map[string]any{"nps_score": 5}, http.StatusBadRequest, "Invalid survey link"},
		{"fractional score", open.ID, map[string]any{"nps_score": 7.5}, http.StatusBadRequest, "Invalid score"},
		{"string score", open.ID, map[string]any{"nps_score": "8"}, http.StatusBadRequest, "Invalid score"},
		{"huge score", open.ID, `{"nps_score": 1e300}`, http.StatusBadRequest, "Invalid score"},
		{"int64 overflow score", open.ID, `{"nps_score": 1e20}`, http.StatusBadRequest, "Invalid score"},
		{"int32 overflow score", open.ID, `{"nps_score": 2147483648}`, http.StatusBadRequest, "Invalid score"},
		{"negative overflow score", open.ID, `{"nps_score": -2147483649}`, http.StatusBadRequest, "Invalid score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submitSurvey(handler, tt.id, tt.body)
			testutil.AssertStatus(t, w, tt.wantStatus)

			env := testutil.DecodeEnvelope(t, w, nil)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantError, env.Error)
		})
	}

	// Rejected submissions leave the open response open
	rec, err := st.FindResponse(context.Background(), open.ID)
	require.NoError(t, err)
	assert.False(t, rec.Response.Completed())
}

func TestSubmitSurveyUnreadableBody(t *testing.T) {
	st := testutil.SetupTestStore(t)
	handler := NewSurveyHandler(st)

	open := testutil.CreateOpenResponse(t, st, models.SurveyTypeNPS)

	tests := []struct {
		name string
		id   string
		body string
	}{
		{"invalid json", open.ID, `{"nps_score":`},
		{"array body", open.ID, `[1,2,3]`},
		{"null body", open.ID, `null`},
		{"invalid json on demo link", "test-demo", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := submitSurvey(handler, tt.id, tt.body)
			testutil.AssertStatus(t, w, http.StatusInternalServerError)

			env := testutil.DecodeEnvelope(t, w, nil)
			assert.False(t, env.Success)
			assert.Equal(t, "Internal server error", env.Error)
			assert.Equal(t, "Unable to submit survey. Please try again.", env.Message)
		})
	}

	rec, err := st.FindResponse(context.Background(), open.ID)
	require.NoError(t, err)
	assert.False(t, rec.Response.Completed())
}

func TestSubmitSurveyRepositoryFailure(t *testing.T) {
	handler := NewSurveyHandler(&failingRepo{err: errors.New("disk I/O error")})

	w := submitSurvey(handler, "abc", map[string]any{"nps_score": 9})
	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	env := testutil.DecodeEnvelope(t, w, nil)
	assert.Equal(t, "Internal server error", env.Error)
	assert.Equal(t, "Unable to submit survey. Please try again.", env.Message)
	assert.NotContains(t, w.Body.String(), "disk I/O error")
}

// racingRepo reports an open response but loses the completion race
type racingRepo struct {
	rec *models.ResponseRecord
}

func (r *racingRepo) FindResponse(ctx context.Context, id string) (*models.ResponseRecord, error) {
	return r.rec, nil
}

func (r *racingRepo) CompleteResponse(ctx context.Context, id string, c models.Completion) error {
	return store.ErrAlreadyCompleted
}

func TestSubmitSurveyLostRace(t *testing.T) {
	handler := NewSurveyHandler(&racingRepo{rec: &models.ResponseRecord{
		Response: models.SurveyResponse{ID: "abc"},
		Survey:   models.Survey{ID: "s1", Type: models.SurveyTypeNPS},
	}})

	w := submitSurvey(handler, "abc", map[string]any{"nps_score": 9})
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	env := testutil.DecodeEnvelope(t, w, nil)
	assert.Equal(t, "Survey already completed", env.Error)
}

func intPtr(n int) *int {
	return &n
}

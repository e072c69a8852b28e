// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/celeru-survey/db"
	"github.com/danielhkuo/celeru-survey/ids"
	"github.com/danielhkuo/celeru-survey/models"
)

// SQLStore implements Store on SQLite or PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewSQLStore(conn *sql.DB, dialect db.Dialect) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

func (s *SQLStore) q(query string) string {
	return db.Rebind(s.dialect, query)
}

// FindResponse loads a response with its survey and organization branding.
func (s *SQLStore) FindResponse(ctx context.Context, id string) (*models.ResponseRecord, error) {
	var rec models.ResponseRecord
	var (
		contactEmail, responseData, logo sql.NullString
		nps, csat, ces                   sql.NullInt64
		completedAt                      sql.NullTime
		surveyType                       string
	)

	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT r.id, r.survey_id, r.organization_id, r.contact_email,
		       r.nps_score, r.csat_score, r.ces_score, r.response_data,
		       r.completed_at, r.created_at,
		       s.id, s.organization_id, s.name, s.type, s.survey_json, s.created_at,
		       o.name, o.logo, o.primary_color
		FROM survey_response r
		JOIN survey s ON s.id = r.survey_id
		JOIN organization o ON o.id = r.organization_id
		WHERE r.id = ?
	`), id).Scan(
		&rec.Response.ID, &rec.Response.SurveyID, &rec.Response.OrganizationID, &contactEmail,
		&nps, &csat, &ces, &responseData,
		&completedAt, &rec.Response.CreatedAt,
		&rec.Survey.ID, &rec.Survey.OrganizationID, &rec.Survey.Name, &surveyType,
		&rec.Survey.SurveyJSON, &rec.Survey.CreatedAt,
		&rec.Organization.Name, &logo, &rec.Organization.PrimaryColor,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query survey response: %w", err)
	}

	rec.Survey.Type = models.SurveyType(surveyType)
	rec.Response.ContactEmail = stringPtr(contactEmail)
	rec.Response.ResponseData = stringPtr(responseData)
	rec.Response.NPSScore = intPtr(nps)
	rec.Response.CSATScore = intPtr(csat)
	rec.Response.CESScore = intPtr(ces)
	rec.Response.CompletedAt = timePtr(completedAt)
	rec.Organization.Logo = stringPtr(logo)

	return &rec, nil
}

// CompleteResponse marks an open response completed in a single conditional update.
// Scores absent from c keep their stored value.
func (s *SQLStore) CompleteResponse(ctx context.Context, id string, c models.Completion) error {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE survey_response
		SET response_data = ?,
		    nps_score = COALESCE(?, nps_score),
		    csat_score = COALESCE(?, csat_score),
		    ces_score = COALESCE(?, ces_score),
		    completed_at = ?
		WHERE id = ? AND completed_at IS NULL
	`), c.ResponseData, nullInt(c.NPSScore), nullInt(c.CSATScore), nullInt(c.CESScore), c.CompletedAt.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to complete survey response: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 1 {
		return nil
	}

	// Nothing updated: either the id is unknown or someone completed it first
	var completedAt sql.NullTime
	err = s.db.QueryRowContext(ctx, s.q(`
		SELECT completed_at FROM survey_response WHERE id = ?
	`), id).Scan(&completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query survey response: %w", err)
	}
	return ErrAlreadyCompleted
}

func (s *SQLStore) CreateOrganization(ctx context.Context, org *models.Organization) error {
	if org.ID == "" {
		org.ID = ids.NewEntityID()
	}
	if org.CreatedAt.IsZero() {
		org.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO organization (id, name, primary_color, logo, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), org.ID, org.Name, org.PrimaryColor, nullString(org.Logo), org.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert organization: %w", err)
	}
	return nil
}

func (s *SQLStore) CreateSurvey(ctx context.Context, survey *models.Survey) error {
	if survey.ID == "" {
		survey.ID = ids.NewEntityID()
	}
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO survey (id, organization_id, name, type, survey_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), survey.ID, survey.OrganizationID, survey.Name, string(survey.Type), survey.SurveyJSON, survey.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert survey: %w", err)
	}
	return nil
}

func (s *SQLStore) CreateResponse(ctx context.Context, resp *models.SurveyResponse) error {
	if resp.ID == "" {
		id, err := ids.NewResponseID()
		if err != nil {
			return err
		}
		resp.ID = id
	}
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}

	var completedAt any
	if resp.CompletedAt != nil {
		completedAt = resp.CompletedAt.UTC()
	}

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO survey_response
		    (id, survey_id, organization_id, contact_email, nps_score, csat_score, ces_score,
		     response_data, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`), resp.ID, resp.SurveyID, resp.OrganizationID, nullString(resp.ContactEmail),
		nullInt(resp.NPSScore), nullInt(resp.CSATScore), nullInt(resp.CESScore),
		nullString(resp.ResponseData), completedAt, resp.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert survey response: %w", err)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func timePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	return &v.Time
}

// nullString and nullInt turn optional fields into driver values
func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

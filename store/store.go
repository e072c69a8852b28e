// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/celeru-survey/cliparse"
	"github.com/danielhkuo/celeru-survey/db"
	"github.com/danielhkuo/celeru-survey/models"
)

var (
	ErrNotFound          = errors.New("survey response not found")
	ErrAlreadyCompleted  = errors.New("survey response already completed")
	ErrUnsupportedSource = errors.New("unsupported database type")
)

// ResponseRepository is the persistence boundary for survey responses.
type ResponseRepository interface {
	// FindResponse returns the response joined with its survey and the
	// organization's branding. Returns ErrNotFound if any part is missing.
	FindResponse(ctx context.Context, id string) (*models.ResponseRecord, error)

	// CompleteResponse applies c only if the response is still open.
	// Returns ErrNotFound or ErrAlreadyCompleted when nothing was updated.
	CompleteResponse(ctx context.Context, id string, c models.Completion) error
}

// Seeder creates records that are normally imported from outside the service.
type Seeder interface {
	CreateOrganization(ctx context.Context, org *models.Organization) error
	CreateSurvey(ctx context.Context, survey *models.Survey) error
	CreateResponse(ctx context.Context, resp *models.SurveyResponse) error
}

// Store is a full backend: repository, seeding, health and lifecycle.
type Store interface {
	ResponseRepository
	Seeder
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the backend named by cfg.DatabaseType.
// SQL backends get their schema created.
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabaseSQLite, cliparse.DatabasePostgres:
		dialect := db.Dialect(cfg.DatabaseType)
		conn, err := db.Open(dialect, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, err
		}
		return NewSQLStore(conn, dialect), nil
	case cliparse.DatabaseMongo:
		return NewMongoStore(ctx, cfg.DatabaseURL, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSource, cfg.DatabaseType)
	}
}

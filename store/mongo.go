// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/danielhkuo/celeru-survey/ids"
	"github.com/danielhkuo/celeru-survey/models"
)

const mongoConnectTimeout = 10 * time.Second

// MongoStore implements Store on MongoDB with one collection per entity.
type MongoStore struct {
	client        *mongo.Client
	organizations *mongo.Collection
	surveys       *mongo.Collection
	responses     *mongo.Collection
}

// NewMongoStore connects to uri and verifies the connection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return newMongoStore(client, client.Database(database)), nil
}

func newMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{
		client:        client,
		organizations: db.Collection(organizationCollection),
		surveys:       db.Collection(surveyCollection),
		responses:     db.Collection(responseCollection),
	}
}

// FindResponse loads a response, its survey and the organization branding.
// A dangling survey or organization reference is reported as ErrNotFound,
// matching the inner join of the SQL backend.
func (s *MongoStore) FindResponse(ctx context.Context, id string) (*models.ResponseRecord, error) {
	var resp responseDocument
	if err := s.responses.FindOne(ctx, bson.M{"_id": id}).Decode(&resp); err != nil {
		return nil, notFoundOr(err, "failed to load survey response")
	}

	var survey surveyDocument
	if err := s.surveys.FindOne(ctx, bson.M{"_id": resp.SurveyID}).Decode(&survey); err != nil {
		return nil, notFoundOr(err, "failed to load survey")
	}

	var org organizationDocument
	projection := options.FindOne().SetProjection(bson.M{"name": 1, "logo": 1, "primaryColor": 1})
	if err := s.organizations.FindOne(ctx, bson.M{"_id": resp.OrganizationID}, projection).Decode(&org); err != nil {
		return nil, notFoundOr(err, "failed to load organization")
	}

	return &models.ResponseRecord{
		Response:     resp.model(),
		Survey:       survey.model(),
		Organization: org.branding(),
	}, nil
}

// CompleteResponse sets the completion fields only while completedAt is null.
func (s *MongoStore) CompleteResponse(ctx context.Context, id string, c models.Completion) error {
	filter := bson.M{"_id": id, "completedAt": nil}
	res, err := s.responses.UpdateOne(ctx, filter, bson.M{"$set": completionUpdate(c)})
	if err != nil {
		return fmt.Errorf("failed to complete survey response: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	n, err := s.responses.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to count survey responses: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrAlreadyCompleted
}

func (s *MongoStore) CreateOrganization(ctx context.Context, org *models.Organization) error {
	if org.ID == "" {
		org.ID = ids.NewEntityID()
	}
	if org.CreatedAt.IsZero() {
		org.CreatedAt = time.Now().UTC()
	}
	if _, err := s.organizations.InsertOne(ctx, newOrganizationDocument(*org)); err != nil {
		return fmt.Errorf("failed to insert organization: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateSurvey(ctx context.Context, survey *models.Survey) error {
	if survey.ID == "" {
		survey.ID = ids.NewEntityID()
	}
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = time.Now().UTC()
	}
	if _, err := s.surveys.InsertOne(ctx, newSurveyDocument(*survey)); err != nil {
		return fmt.Errorf("failed to insert survey: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateResponse(ctx context.Context, resp *models.SurveyResponse) error {
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
	if _, err := s.responses.InsertOne(ctx, newResponseDocument(*resp)); err != nil {
		return fmt.Errorf("failed to insert survey response: %w", err)
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

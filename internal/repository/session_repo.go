package repository

import (
	"context"

	"voicedeck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SessionRepo resolves responses against their originating sessions, so the
// engagement scorer can see session start times next to submission times.
type SessionRepo interface {
	ListResponseSessions(ctx context.Context, orgID string, rng *model.DateRange) ([]model.ResponseSession, error)
}

type sessionRepo struct {
	responses *mongo.Collection
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *mongo.Database) SessionRepo {
	return &sessionRepo{
		responses: db.Collection("responses"),
	}
}

func (r *sessionRepo) ListResponseSessions(ctx context.Context, orgID string, rng *model.DateRange) ([]model.ResponseSession, error) {
	// Left join so a response whose session row is missing still comes back,
	// just without a sessionStartedAt.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: orgFilter(orgID, "submittedAt", rng)}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "sessions",
			"localField":   "sessionId",
			"foreignField": "_id",
			"as":           "session",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$session",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"respondentId":          1,
			"completionTimeSeconds": 1,
			"submittedAt":           1,
			"hasVoice":              1,
			"sessionStartedAt":      "$session.startedAt",
		}}},
	}

	cursor, err := r.responses.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []model.ResponseSession
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

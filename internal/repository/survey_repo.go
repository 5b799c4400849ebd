package repository

import (
	"context"

	"voicedeck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SurveyRepo reads survey rows owned by the survey CRUD service
type SurveyRepo interface {
	ListByOrg(ctx context.Context, orgID string, rng *model.DateRange) ([]model.Survey, error)
	CountActive(ctx context.Context, orgID string) (int, error)
}

type surveyRepo struct {
	collection *mongo.Collection
}

// NewSurveyRepo creates a new survey repository
func NewSurveyRepo(db *mongo.Database) SurveyRepo {
	return &surveyRepo{
		collection: db.Collection("surveys"),
	}
}

func (r *surveyRepo) ListByOrg(ctx context.Context, orgID string, rng *model.DateRange) ([]model.Survey, error) {
	cursor, err := r.collection.Find(ctx, orgFilter(orgID, "createdAt", rng))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var surveys []model.Survey
	if err := cursor.All(ctx, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *surveyRepo) CountActive(ctx context.Context, orgID string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"orgId": orgID, "status": model.SurveyActive})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

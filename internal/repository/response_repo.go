package repository

import (
	"context"
	"time"

	"voicedeck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ResponseRepo reads submitted response rows. Responses are denormalized
// with the owning orgId so org-scoped reads need no join.
type ResponseRepo interface {
	ListByOrg(ctx context.Context, orgID string, rng *model.DateRange) ([]model.Response, error)
	CountSince(ctx context.Context, orgID string, since time.Time) (int, error)
	DistinctRespondentsSince(ctx context.Context, orgID string, since time.Time) ([]string, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

// NewResponseRepo creates a new response repository
func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

func (r *responseRepo) ListByOrg(ctx context.Context, orgID string, rng *model.DateRange) ([]model.Response, error) {
	cursor, err := r.collection.Find(ctx, orgFilter(orgID, "submittedAt", rng))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []model.Response
	if err := cursor.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepo) CountSince(ctx context.Context, orgID string, since time.Time) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{
		"orgId":       orgID,
		"submittedAt": bson.M{"$gte": since},
	})
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *responseRepo) DistinctRespondentsSince(ctx context.Context, orgID string, since time.Time) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "respondentId", bson.M{
		"orgId":       orgID,
		"submittedAt": bson.M{"$gte": since},
	})
	if err != nil {
		return nil, err
	}

	respondents := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			respondents = append(respondents, id)
		}
	}
	return respondents, nil
}

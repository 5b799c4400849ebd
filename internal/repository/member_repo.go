package repository

import (
	"context"

	"voicedeck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MemberRepo reads organization membership rows
type MemberRepo interface {
	ListByOrg(ctx context.Context, orgID string) ([]model.Member, error)
}

type memberRepo struct {
	collection *mongo.Collection
}

// NewMemberRepo creates a new member repository
func NewMemberRepo(db *mongo.Database) MemberRepo {
	return &memberRepo{
		collection: db.Collection("members"),
	}
}

func (r *memberRepo) ListByOrg(ctx context.Context, orgID string) ([]model.Member, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"orgId": orgID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []model.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

package repository

import (
	"context"

	"voicedeck/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalysisRepo reads the per-response JTBD force analyses and the
// per-recording voice-quality rows produced by the analysis pipeline
type AnalysisRepo interface {
	ListForceAnalyses(ctx context.Context, orgID string, rng *model.DateRange) ([]model.ForceAnalysis, error)
	ListVoiceQuality(ctx context.Context, orgID string, rng *model.DateRange) ([]model.VoiceQuality, error)
}

type analysisRepo struct {
	forces *mongo.Collection
	voice  *mongo.Collection
}

// NewAnalysisRepo creates a new analysis repository
func NewAnalysisRepo(db *mongo.Database) AnalysisRepo {
	return &analysisRepo{
		forces: db.Collection("force_analyses"),
		voice:  db.Collection("voice_quality"),
	}
}

func (r *analysisRepo) ListForceAnalyses(ctx context.Context, orgID string, rng *model.DateRange) ([]model.ForceAnalysis, error) {
	opts := options.Find().SetSort(bson.D{{Key: "analyzedAt", Value: 1}})
	cursor, err := r.forces.Find(ctx, orgFilter(orgID, "analyzedAt", rng), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var analyses []model.ForceAnalysis
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

func (r *analysisRepo) ListVoiceQuality(ctx context.Context, orgID string, rng *model.DateRange) ([]model.VoiceQuality, error) {
	cursor, err := r.voice.Find(ctx, orgFilter(orgID, "analyzedAt", rng))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []model.VoiceQuality
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

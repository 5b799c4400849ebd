package service

import (
	"context"
	"time"

	"voicedeck/internal/model"
	"voicedeck/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	activeUserWindow     = 15 * time.Minute
	recentResponseWindow = time.Hour
)

// RealtimeService serves the live dashboard widget. It bypasses the cache
// entirely: staleness defeats the purpose of a real-time view.
type RealtimeService struct {
	surveys   repository.SurveyRepo
	responses repository.ResponseRepo
	logger    *zap.Logger
	now       func() time.Time
}

// NewRealtimeService creates a new realtime service
func NewRealtimeService(surveys repository.SurveyRepo, responses repository.ResponseRepo, logger *zap.Logger) *RealtimeService {
	return &RealtimeService{surveys: surveys, responses: responses, logger: logger, now: time.Now}
}

// Snapshot combines three short-window live counts into a health
// classification. On any fetch error it returns the worst-case snapshot so
// the widget degrades instead of crashing.
func (s *RealtimeService) Snapshot(ctx context.Context, orgID string) *model.RealTimeSnapshot {
	now := s.now()

	var (
		activeUsers     []string
		ongoingSurveys  int
		recentResponses int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		activeUsers, err = s.responses.DistinctRespondentsSince(gctx, orgID, now.Add(-activeUserWindow))
		return err
	})
	g.Go(func() error {
		var err error
		ongoingSurveys, err = s.surveys.CountActive(gctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		recentResponses, err = s.responses.CountSince(gctx, orgID, now.Add(-recentResponseWindow))
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("realtime snapshot fetch", zap.String("orgId", orgID), zap.Error(err))
		return &model.RealTimeSnapshot{SystemHealth: model.HealthCritical}
	}

	health := model.HealthHealthy
	if ongoingSurveys > 0 && len(activeUsers) == 0 {
		health = model.HealthWarning
	}
	if ongoingSurveys > 2 && recentResponses == 0 {
		health = model.HealthCritical
	}

	return &model.RealTimeSnapshot{
		ActiveUsers:     len(activeUsers),
		OngoingSurveys:  ongoingSurveys,
		RecentResponses: recentResponses,
		SystemHealth:    health,
	}
}

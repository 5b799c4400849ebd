package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"voicedeck/internal/cache"
	"voicedeck/internal/model"
	"voicedeck/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const metricsTTL = 5 * time.Minute

// MetricsService computes point-in-time organization metrics from the raw
// survey, response, member and voice-quality rows.
type MetricsService struct {
	surveys   repository.SurveyRepo
	responses repository.ResponseRepo
	members   repository.MemberRepo
	analyses  repository.AnalysisRepo
	cache     cache.Cache
	logger    *zap.Logger
}

// NewMetricsService creates a new metrics service
func NewMetricsService(
	surveys repository.SurveyRepo,
	responses repository.ResponseRepo,
	members repository.MemberRepo,
	analyses repository.AnalysisRepo,
	c cache.Cache,
	logger *zap.Logger,
) *MetricsService {
	return &MetricsService{
		surveys:   surveys,
		responses: responses,
		members:   members,
		analyses:  analyses,
		cache:     c,
		logger:    logger,
	}
}

func metricsKey(orgID string, rng *model.DateRange) string {
	return fmt.Sprintf("analytics:metrics:%s:%s", orgID, rangeTag(rng))
}

// OrganizationMetrics returns the org's metrics snapshot, cached for five
// minutes per (org, range). Fetch failures propagate: the anomaly detector
// compares these numbers against a baseline, so silent defaults would
// corrupt detection.
func (s *MetricsService) OrganizationMetrics(ctx context.Context, orgID string, rng *model.DateRange) (*model.OrganizationMetrics, error) {
	key := metricsKey(orgID, rng)

	var cached model.OrganizationMetrics
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("metrics cache read", zap.String("orgId", orgID), zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	// The four source fetches are independent; issue them concurrently and
	// join on the first failure.
	var (
		surveys   []model.Survey
		responses []model.Response
		members   []model.Member
		voice     []model.VoiceQuality
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		surveys, err = s.surveys.ListByOrg(gctx, orgID, rng)
		return err
	})
	g.Go(func() error {
		var err error
		responses, err = s.responses.ListByOrg(gctx, orgID, rng)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.members.ListByOrg(gctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		voice, err = s.analyses.ListVoiceQuality(gctx, orgID, rng)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch organization metrics: %w", err)
	}

	metrics := deriveOrganizationMetrics(surveys, responses, members, voice)

	if err := s.cache.Set(ctx, key, metrics, metricsTTL); err != nil {
		s.logger.Warn("metrics cache write", zap.String("orgId", orgID), zap.Error(err))
	}
	return metrics, nil
}

func deriveOrganizationMetrics(surveys []model.Survey, responses []model.Response, members []model.Member, voice []model.VoiceQuality) *model.OrganizationMetrics {
	totalSurveys := len(surveys)
	totalResponses := len(responses)
	totalUsers := len(members)

	completionRate := 0.0
	if denom := totalSurveys * totalUsers; denom > 0 {
		completionRate = float64(totalResponses) / float64(denom) * 100
	}

	var completionTimes []float64
	respondents := make(map[string]struct{})
	voiceResponses := 0
	for _, r := range responses {
		if r.CompletionTimeSeconds != nil {
			completionTimes = append(completionTimes, float64(*r.CompletionTimeSeconds))
		}
		respondents[r.RespondentID] = struct{}{}
		if r.HasVoice {
			voiceResponses++
		}
	}

	participationRate := 0.0
	if totalUsers > 0 {
		participationRate = float64(len(respondents)) / float64(totalUsers) * 100
	}

	voiceResponseRate := 0.0
	if totalResponses > 0 {
		voiceResponseRate = float64(voiceResponses) / float64(totalResponses) * 100
	}

	overall := make([]float64, 0, len(voice))
	for _, v := range voice {
		overall = append(overall, v.OverallScore)
	}

	return &model.OrganizationMetrics{
		TotalSurveys:          totalSurveys,
		TotalResponses:        totalResponses,
		TotalUsers:            totalUsers,
		CompletionRate:        round1(clampPercent(completionRate)),
		AverageCompletionTime: int(math.Round(mean(completionTimes))),
		ParticipationRate:     round1(clampPercent(participationRate)),
		VoiceResponseRate:     round1(clampPercent(voiceResponseRate)),
		AverageVoiceQuality:   round1(mean(overall)),
	}
}

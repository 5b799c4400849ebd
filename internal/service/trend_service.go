package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"voicedeck/internal/cache"
	"voicedeck/internal/model"
	"voicedeck/internal/repository"

	"go.uber.org/zap"
)

// Short TTL: the force trend feeds a near-real-time dashboard panel.
const forceTrendTTL = 2 * time.Minute

// TrendService groups analyzed records into period buckets and emits one
// averaged data point per bucket. Buckets are created lazily, so a period
// with no contributing records never appears in a series.
type TrendService struct {
	analyses repository.AnalysisRepo
	cache    cache.Cache
	logger   *zap.Logger
}

// NewTrendService creates a new trend service
func NewTrendService(analyses repository.AnalysisRepo, c cache.Cache, logger *zap.Logger) *TrendService {
	return &TrendService{analyses: analyses, cache: c, logger: logger}
}

func forceTrendKey(orgID string, period model.Period, rng *model.DateRange) string {
	return fmt.Sprintf("analytics:forces:%s:%s:%s", orgID, period, rangeTag(rng))
}

type forceBucket struct {
	push      []float64
	pull      []float64
	habit     []float64
	anxiety   []float64
	readiness []float64
}

// ForceTrend aggregates JTBD force analyses into the requested period
// buckets, ascending by period key. Fetch failures propagate.
func (s *TrendService) ForceTrend(ctx context.Context, orgID string, period model.Period, rng *model.DateRange) (*model.ForceTrendSeries, error) {
	if period == "" {
		period = model.PeriodDaily
	}
	key := forceTrendKey(orgID, period, rng)

	var cached model.ForceTrendSeries
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.logger.Warn("force trend cache read", zap.String("orgId", orgID), zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	analyses, err := s.analyses.ListForceAnalyses(ctx, orgID, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch force analyses: %w", err)
	}

	buckets := make(map[string]*forceBucket)
	for _, a := range analyses {
		k := periodKey(a.AnalyzedAt, period)
		b := buckets[k]
		if b == nil {
			b = &forceBucket{}
			buckets[k] = b
		}
		// This push/pull pairing mirrors the upstream scoring service for
		// compatibility, even though it reads inverted against textbook JTBD
		// semantics (anchors and anxiety are the anti-change forces).
		b.push = append(b.push, a.Forces.PainOfOld+a.Forces.PullOfNew)
		b.pull = append(b.pull, a.Forces.AnchorsToOld+a.Forces.AnxietyOfNew)
		b.habit = append(b.habit, a.Forces.AnchorsToOld)
		b.anxiety = append(b.anxiety, a.Forces.AnxietyOfNew)
		if a.ReadinessScore != nil {
			b.readiness = append(b.readiness, *a.ReadinessScore)
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := &model.ForceTrendSeries{
		Period: period,
		Points: make([]model.ForceTrendPoint, 0, len(keys)),
	}
	for _, k := range keys {
		b := buckets[k]
		series.Points = append(series.Points, model.ForceTrendPoint{
			Period:    k,
			Push:      round1(mean(b.push)),
			Pull:      round1(mean(b.pull)),
			Habit:     round1(mean(b.habit)),
			Anxiety:   round1(mean(b.anxiety)),
			Readiness: round1(mean(b.readiness)),
		})
	}

	if err := s.cache.Set(ctx, key, series, forceTrendTTL); err != nil {
		s.logger.Warn("force trend cache write", zap.String("orgId", orgID), zap.Error(err))
	}
	return series, nil
}

type voiceBucket struct {
	clarity      []float64
	completeness []float64
	audibility   []float64
	accuracy     []float64
}

// VoiceQualityTrend aggregates voice-quality rows into daily buckets.
// This is best-effort supplementary data: a failed fetch yields a safe
// empty result rather than an error, so the dashboard keeps rendering.
func (s *TrendService) VoiceQualityTrend(ctx context.Context, orgID string, rng *model.DateRange) *model.VoiceQualityTrend {
	rows, err := s.analyses.ListVoiceQuality(ctx, orgID, rng)
	if err != nil {
		s.logger.Warn("voice quality fetch", zap.String("orgId", orgID), zap.Error(err))
		return &model.VoiceQualityTrend{Trends: []model.VoiceQualityPoint{}}
	}

	overall := make([]float64, 0, len(rows))
	buckets := make(map[string]*voiceBucket)
	for _, row := range rows {
		overall = append(overall, row.OverallScore)

		k := periodKey(row.AnalyzedAt, model.PeriodDaily)
		b := buckets[k]
		if b == nil {
			b = &voiceBucket{}
			buckets[k] = b
		}
		b.clarity = append(b.clarity, row.Clarity)
		b.completeness = append(b.completeness, row.Completeness)
		b.audibility = append(b.audibility, row.Audibility)
		if row.TranscriptionConfidence != nil {
			// Confidence is 0-1; scale x10 to sit on the same 0-10 axis as
			// the other sub-scores.
			b.accuracy = append(b.accuracy, *row.TranscriptionConfidence*10)
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	trends := make([]model.VoiceQualityPoint, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		trends = append(trends, model.VoiceQualityPoint{
			Date:                  k,
			Clarity:               round1(mean(b.clarity)),
			Completeness:          round1(mean(b.completeness)),
			Audibility:            round1(mean(b.audibility)),
			TranscriptionAccuracy: round1(mean(b.accuracy)),
		})
	}

	return &model.VoiceQualityTrend{
		AverageQuality: round1(mean(overall)),
		Trends:         trends,
	}
}

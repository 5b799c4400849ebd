package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"voicedeck/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MetricsProvider is the slice of MetricsService the detector depends on
type MetricsProvider interface {
	OrganizationMetrics(ctx context.Context, orgID string, rng *model.DateRange) (*model.OrganizationMetrics, error)
}

// Sensitivity tunes how eagerly deviations are flagged
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

type sensitivityConfig struct {
	window    time.Duration // width of the recent sample
	threshold float64       // relative deviation that triggers an anomaly
}

var sensitivityConfigs = map[Sensitivity]sensitivityConfig{
	SensitivityLow:    {window: 48 * time.Hour, threshold: 0.5},
	SensitivityMedium: {window: 24 * time.Hour, threshold: 0.3},
	SensitivityHigh:   {window: 12 * time.Hour, threshold: 0.15},
}

// baselineWindow is the trailing window the expected values come from
const baselineWindow = 30 * 24 * time.Hour

// AnomalyService flags metrics whose recent value drifted too far from the
// 30-day baseline. This is a deterministic statistical comparison, not a
// trained model.
type AnomalyService struct {
	metrics MetricsProvider
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnomalyService creates a new anomaly service
func NewAnomalyService(metrics MetricsProvider, logger *zap.Logger) *AnomalyService {
	return &AnomalyService{metrics: metrics, logger: logger, now: time.Now}
}

// DetectAnomalies compares each requested metric between the 30-day baseline
// and the recent window. It never errors: an unknown metric name resolves to
// 0 and is skipped by the zero-baseline guard, and a failed metrics fetch
// degrades to an empty report with confidence 0.
func (s *AnomalyService) DetectAnomalies(ctx context.Context, orgID string, metrics []string, sensitivity Sensitivity) *model.AnomalyReport {
	cfg, ok := sensitivityConfigs[sensitivity]
	if !ok {
		cfg = sensitivityConfigs[SensitivityMedium]
	}
	now := s.now()

	// Both windows are read-only and independent; compute them concurrently.
	var historical, recent *model.OrganizationMetrics
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		historical, err = s.metrics.OrganizationMetrics(gctx, orgID, &model.DateRange{
			Start: now.Add(-baselineWindow),
			End:   now,
		})
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.metrics.OrganizationMetrics(gctx, orgID, &model.DateRange{
			Start: now.Add(-cfg.window),
			End:   now,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("anomaly baseline fetch", zap.String("orgId", orgID), zap.Error(err))
		return &model.AnomalyReport{Anomalies: []model.Anomaly{}}
	}

	report := &model.AnomalyReport{Anomalies: []model.Anomaly{}}
	var weights []float64
	for _, name := range metrics {
		expected := metricValue(historical, name)
		if expected == 0 {
			// No baseline to compare against.
			continue
		}
		observed := metricValue(recent, name)
		deviation := math.Abs(observed-expected) / expected
		if deviation <= cfg.threshold {
			continue
		}

		severity := severityFor(deviation)
		direction := "increased"
		if observed < expected {
			direction = "decreased"
		}
		report.Anomalies = append(report.Anomalies, model.Anomaly{
			Metric:        name,
			ObservedValue: observed,
			ExpectedValue: expected,
			Deviation:     deviation,
			Severity:      severity,
			Description:   fmt.Sprintf("%s %s by %.1f%% against the 30-day baseline", name, direction, deviation*100),
		})
		weights = append(weights, severityWeight(severity))
	}

	report.Confidence = mean(weights)
	return report
}

func metricValue(m *model.OrganizationMetrics, name string) float64 {
	switch name {
	case "completion_rate":
		return m.CompletionRate
	case "response_time":
		return float64(m.AverageCompletionTime)
	case "voice_quality":
		return m.AverageVoiceQuality
	case "participation_rate":
		return m.ParticipationRate
	default:
		// Unknown metric: 0 falls through the zero-baseline guard.
		return 0
	}
}

func severityFor(deviation float64) model.AnomalySeverity {
	switch {
	case deviation > 0.8:
		return model.SeverityCritical
	case deviation > 0.5:
		return model.SeverityHigh
	case deviation > 0.3:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func severityWeight(s model.AnomalySeverity) float64 {
	switch s {
	case model.SeverityCritical:
		return 0.9
	case model.SeverityHigh:
		return 0.7
	default:
		return 0.5
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"voicedeck/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDetectAnomaliesCompletionRateDrop(t *testing.T) {
	provider := &fakeMetricsProvider{
		historical: &model.OrganizationMetrics{CompletionRate: 50.0},
		recent:     &model.OrganizationMetrics{CompletionRate: 20.0},
	}
	svc := NewAnomalyService(provider, zap.NewNop())

	report := svc.DetectAnomalies(context.Background(), "org1", []string{"completion_rate"}, SensitivityMedium)

	require.Len(t, report.Anomalies, 1)
	a := report.Anomalies[0]
	assert.Equal(t, "completion_rate", a.Metric)
	assert.Equal(t, 20.0, a.ObservedValue)
	assert.Equal(t, 50.0, a.ExpectedValue)
	assert.InDelta(t, 0.6, a.Deviation, 1e-9)
	assert.Equal(t, model.SeverityHigh, a.Severity)
	assert.Contains(t, a.Description, "decreased")
	assert.Equal(t, 0.7, report.Confidence)
}

func TestDetectAnomaliesSeverityLadder(t *testing.T) {
	tests := []struct {
		name     string
		recent   float64
		severity model.AnomalySeverity
	}{
		{"medium at 0.35 deviation", 135, model.SeverityMedium},
		{"high at 0.55 deviation", 155, model.SeverityHigh},
		{"critical at 0.85 deviation", 185, model.SeverityCritical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeMetricsProvider{
				historical: &model.OrganizationMetrics{ParticipationRate: 100},
				recent:     &model.OrganizationMetrics{ParticipationRate: tt.recent},
			}
			svc := NewAnomalyService(provider, zap.NewNop())

			report := svc.DetectAnomalies(context.Background(), "org1", []string{"participation_rate"}, SensitivityMedium)
			require.Len(t, report.Anomalies, 1)
			assert.Equal(t, tt.severity, report.Anomalies[0].Severity)
			assert.Contains(t, report.Anomalies[0].Description, "increased")
		})
	}
}

func TestDetectAnomaliesZeroBaselineSkipped(t *testing.T) {
	// No historical voice quality means no relative comparison, whatever
	// the recent value looks like.
	provider := &fakeMetricsProvider{
		historical: &model.OrganizationMetrics{},
		recent:     &model.OrganizationMetrics{AverageVoiceQuality: 9.5},
	}
	svc := NewAnomalyService(provider, zap.NewNop())

	report := svc.DetectAnomalies(context.Background(), "org1", []string{"voice_quality"}, SensitivityHigh)

	assert.Empty(t, report.Anomalies)
	assert.Equal(t, 0.0, report.Confidence)
}

func TestDetectAnomaliesUnknownMetricIgnored(t *testing.T) {
	provider := &fakeMetricsProvider{
		historical: &model.OrganizationMetrics{CompletionRate: 50},
		recent:     &model.OrganizationMetrics{CompletionRate: 50},
	}
	svc := NewAnomalyService(provider, zap.NewNop())

	report := svc.DetectAnomalies(context.Background(), "org1", []string{"nonsense_metric"}, SensitivityMedium)
	assert.Empty(t, report.Anomalies)
}

func TestDetectAnomaliesBelowThresholdNotFlagged(t *testing.T) {
	provider := &fakeMetricsProvider{
		historical: &model.OrganizationMetrics{CompletionRate: 100},
		recent:     &model.OrganizationMetrics{CompletionRate: 80},
	}
	svc := NewAnomalyService(provider, zap.NewNop())

	// 0.2 deviation is under the medium threshold but over the high one.
	assert.Empty(t, svc.DetectAnomalies(context.Background(), "org1", []string{"completion_rate"}, SensitivityMedium).Anomalies)

	report := svc.DetectAnomalies(context.Background(), "org1", []string{"completion_rate"}, SensitivityHigh)
	require.Len(t, report.Anomalies, 1)
	assert.Equal(t, model.SeverityLow, report.Anomalies[0].Severity)
	assert.Equal(t, 0.5, report.Confidence)
}

func TestDetectAnomaliesConfidenceAveragesSeverityWeights(t *testing.T) {
	provider := &fakeMetricsProvider{
		historical: &model.OrganizationMetrics{CompletionRate: 100, ParticipationRate: 100},
		recent:     &model.OrganizationMetrics{CompletionRate: 10, ParticipationRate: 155},
	}
	svc := NewAnomalyService(provider, zap.NewNop())

	report := svc.DetectAnomalies(context.Background(), "org1",
		[]string{"completion_rate", "participation_rate"}, SensitivityMedium)

	require.Len(t, report.Anomalies, 2)
	// critical (0.9) and high (0.55 deviation -> 0.7) average to 0.8
	assert.InDelta(t, 0.8, report.Confidence, 1e-9)
}

func TestDetectAnomaliesDegradesOnFetchError(t *testing.T) {
	svc := NewAnomalyService(&fakeMetricsProvider{err: errors.New("mongo down")}, zap.NewNop())

	report := svc.DetectAnomalies(context.Background(), "org1", []string{"completion_rate"}, SensitivityMedium)

	assert.NotNil(t, report)
	assert.Empty(t, report.Anomalies)
	assert.Equal(t, 0.0, report.Confidence)
}

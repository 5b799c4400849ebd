package handler

import (
	"net/http"
	"strings"

	"voicedeck/internal/model"
	"voicedeck/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// defaultAnomalyMetrics is checked when the caller does not narrow the set
var defaultAnomalyMetrics = []string{"completion_rate", "response_time", "voice_quality", "participation_rate"}

// AnalyticsHandler exposes the analytics engine to the dashboard
type AnalyticsHandler struct {
	metrics    *service.MetricsService
	trends     *service.TrendService
	engagement *service.EngagementService
	anomalies  *service.AnomalyService
	realtime   *service.RealtimeService
	logger     *zap.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	metrics *service.MetricsService,
	trends *service.TrendService,
	engagement *service.EngagementService,
	anomalies *service.AnomalyService,
	realtime *service.RealtimeService,
	logger *zap.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		metrics:    metrics,
		trends:     trends,
		engagement: engagement,
		anomalies:  anomalies,
		realtime:   realtime,
		logger:     logger,
	}
}

// GetMetrics handles GET /v1/orgs/{orgId}/analytics/metrics
func (h *AnalyticsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgId"]
	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics, err := h.metrics.OrganizationMetrics(r.Context(), orgID, rng)
	if err != nil {
		h.logger.Error("organization metrics", zap.String("orgId", orgID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}

// GetForceTrend handles GET /v1/orgs/{orgId}/analytics/trends/forces
func (h *AnalyticsHandler) GetForceTrend(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgId"]
	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	period := model.Period(r.URL.Query().Get("period"))
	switch period {
	case "", model.PeriodDaily, model.PeriodWeekly, model.PeriodMonthly:
	default:
		writeError(w, http.StatusBadRequest, "period must be daily, weekly or monthly")
		return
	}

	series, err := h.trends.ForceTrend(r.Context(), orgID, period, rng)
	if err != nil {
		h.logger.Error("force trend", zap.String("orgId", orgID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// GetVoiceQualityTrend handles GET /v1/orgs/{orgId}/analytics/trends/voice-quality
func (h *AnalyticsHandler) GetVoiceQualityTrend(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgId"]
	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Best-effort path: always 200.
	writeJSON(w, http.StatusOK, h.trends.VoiceQualityTrend(r.Context(), orgID, rng))
}

// GetEngagement handles GET /v1/orgs/{orgId}/analytics/engagement
func (h *AnalyticsHandler) GetEngagement(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgId"]
	rng, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := h.engagement.UserEngagement(r.Context(), orgID, rng)
	if err != nil {
		h.logger.Error("user engagement", zap.String("orgId", orgID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// GetAnomalies handles GET /v1/orgs/{orgId}/analytics/anomalies
func (h *AnalyticsHandler) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgId"]

	metrics := defaultAnomalyMetrics
	if raw := r.URL.Query().Get("metrics"); raw != "" {
		metrics = strings.Split(raw, ",")
	}

	sensitivity := service.Sensitivity(r.URL.Query().Get("sensitivity"))
	if sensitivity == "" {
		sensitivity = service.SensitivityMedium
	}

	// Never errors: degrades to an empty report.
	writeJSON(w, http.StatusOK, h.anomalies.DetectAnomalies(r.Context(), orgID, metrics, sensitivity))
}

// GetRealtime handles GET /v1/orgs/{orgId}/analytics/realtime
func (h *AnalyticsHandler) GetRealtime(w http.ResponseWriter, r *http.Request) {
	orgID := mux.Vars(r)["orgId"]
	writeJSON(w, http.StatusOK, h.realtime.Snapshot(r.Context(), orgID))
}

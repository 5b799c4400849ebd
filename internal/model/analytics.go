package model

import "time"

// Period selects the bucketing granularity for trend series
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// OrganizationMetrics is the point-in-time metrics snapshot for an org.
// Rates are percentages rounded to one decimal; AverageCompletionTime is
// rounded to the nearest second.
type OrganizationMetrics struct {
	TotalSurveys          int     `json:"totalSurveys"`
	TotalResponses        int     `json:"totalResponses"`
	TotalUsers            int     `json:"totalUsers"`
	CompletionRate        float64 `json:"completionRate"`
	AverageCompletionTime int     `json:"averageCompletionTime"`
	ParticipationRate     float64 `json:"participationRate"`
	VoiceResponseRate     float64 `json:"voiceResponseRate"`
	AverageVoiceQuality   float64 `json:"averageVoiceQuality"`
}

// ForceTrendPoint is one period bucket of averaged JTBD force scores
type ForceTrendPoint struct {
	Period    string  `json:"period"`
	Push      float64 `json:"pushForces"`
	Pull      float64 `json:"pullForces"`
	Habit     float64 `json:"habitForces"`
	Anxiety   float64 `json:"anxietyForces"`
	Readiness float64 `json:"readinessScore"`
}

// ForceTrendSeries is an ordered force trend, ascending by period key
type ForceTrendSeries struct {
	Period Period            `json:"period"`
	Points []ForceTrendPoint `json:"points"`
}

// VoiceQualityPoint is one day of averaged voice-quality sub-scores, all on
// a 0-10 scale (transcription accuracy is confidence scaled x10).
type VoiceQualityPoint struct {
	Date                  string  `json:"date"`
	Clarity               float64 `json:"clarity"`
	Completeness          float64 `json:"completeness"`
	Audibility            float64 `json:"audibility"`
	TranscriptionAccuracy float64 `json:"transcriptionAccuracy"`
}

// VoiceQualityTrend bundles the overall average with the daily series
type VoiceQualityTrend struct {
	AverageQuality float64             `json:"averageQuality"`
	Trends         []VoiceQualityPoint `json:"trends"`
}

// EngagementRecord is the per-user engagement summary
type EngagementRecord struct {
	UserID                 string    `json:"userId"`
	EngagementScore        float64   `json:"engagementScore"`
	ResponseFrequency      float64   `json:"responseFrequency"`
	AverageSessionDuration float64   `json:"averageSessionDuration"`
	VoiceUsageRate         float64   `json:"voiceUsageRate"`
	QualityScore           float64   `json:"qualityScore"`
	LastActive             time.Time `json:"lastActive"`
	TotalContributions     int       `json:"totalContributions"`
}

// AnomalySeverity classifies how far a metric drifted from its baseline
type AnomalySeverity string

const (
	SeverityLow      AnomalySeverity = "low"
	SeverityMedium   AnomalySeverity = "medium"
	SeverityHigh     AnomalySeverity = "high"
	SeverityCritical AnomalySeverity = "critical"
)

// Anomaly is a single detected deviation against the historical baseline
type Anomaly struct {
	Metric        string          `json:"metric"`
	ObservedValue float64         `json:"observedValue"`
	ExpectedValue float64         `json:"expectedValue"`
	Deviation     float64         `json:"deviation"`
	Severity      AnomalySeverity `json:"severity"`
	Description   string          `json:"description"`
}

// AnomalyReport is the full detection result. Confidence is 0-1, 0 when no
// anomalies were detected.
type AnomalyReport struct {
	Anomalies  []Anomaly `json:"anomalies"`
	Confidence float64   `json:"confidence"`
}

// SystemHealth is the real-time health classification
type SystemHealth string

const (
	HealthHealthy  SystemHealth = "healthy"
	HealthWarning  SystemHealth = "warning"
	HealthCritical SystemHealth = "critical"
)

// RealTimeSnapshot is the live, uncached dashboard view
type RealTimeSnapshot struct {
	ActiveUsers     int          `json:"activeUsers"`
	OngoingSurveys  int          `json:"ongoingSurveys"`
	RecentResponses int          `json:"recentResponses"`
	SystemHealth    SystemHealth `json:"systemHealth"`
}

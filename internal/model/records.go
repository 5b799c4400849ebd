package model

import "time"

// SurveyStatus tracks the lifecycle of a survey
type SurveyStatus string

const (
	SurveyDraft    SurveyStatus = "draft"
	SurveyActive   SurveyStatus = "active"
	SurveyArchived SurveyStatus = "archived"
)

// DateRange bounds a query window. A nil *DateRange means unbounded.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Survey is the read-only survey row as stored by the platform's CRUD services
type Survey struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	OrgID     string       `json:"orgId" bson:"orgId"`
	Status    SurveyStatus `json:"status" bson:"status"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}

// Response is a submitted survey response. Immutable once submitted.
type Response struct {
	ID                    string    `json:"id" bson:"_id,omitempty"`
	SessionID             string    `json:"sessionId" bson:"sessionId"`
	RespondentID          string    `json:"respondentId" bson:"respondentId"`
	CompletionTimeSeconds *int      `json:"completionTimeSeconds,omitempty" bson:"completionTimeSeconds,omitempty"`
	SubmittedAt           time.Time `json:"submittedAt" bson:"submittedAt"`
	HasVoice              bool      `json:"hasVoice" bson:"hasVoice"`
}

// Member is an organization member
type Member struct {
	ID string `json:"id" bson:"_id,omitempty"`
}

// ForceScores carries the four JTBD force dimensions for one response
type ForceScores struct {
	PainOfOld    float64 `json:"pain_of_old" bson:"painOfOld"`
	PullOfNew    float64 `json:"pull_of_new" bson:"pullOfNew"`
	AnchorsToOld float64 `json:"anchors_to_old" bson:"anchorsToOld"`
	AnxietyOfNew float64 `json:"anxiety_of_new" bson:"anxietyOfNew"`
}

// ForceAnalysis is the per-response JTBD analysis row
type ForceAnalysis struct {
	AnalyzedAt     time.Time   `json:"analyzedAt" bson:"analyzedAt"`
	Forces         ForceScores `json:"forceScores" bson:"forceScores"`
	ReadinessScore *float64    `json:"readinessScore,omitempty" bson:"readinessScore,omitempty"`
}

// VoiceQuality is the per-recording quality row. Sub-scores are on a 0-10
// scale; TranscriptionConfidence comes from the parent recording and is 0-1.
type VoiceQuality struct {
	OverallScore            float64   `json:"overallScore" bson:"overallScore"`
	Clarity                 float64   `json:"clarity" bson:"clarity"`
	Completeness            float64   `json:"completeness" bson:"completeness"`
	Audibility              float64   `json:"audibility" bson:"audibility"`
	AnalyzedAt              time.Time `json:"analyzedAt" bson:"analyzedAt"`
	TranscriptionConfidence *float64  `json:"transcriptionConfidence,omitempty" bson:"transcriptionConfidence,omitempty"`
}

// ResponseSession is a response joined to its originating session, as
// returned by the persistence layer for engagement scoring.
type ResponseSession struct {
	RespondentID          string     `json:"respondentId" bson:"respondentId"`
	CompletionTimeSeconds *int       `json:"completionTimeSeconds,omitempty" bson:"completionTimeSeconds,omitempty"`
	SubmittedAt           time.Time  `json:"submittedAt" bson:"submittedAt"`
	HasVoice              bool       `json:"hasVoice" bson:"hasVoice"`
	SessionStartedAt      *time.Time `json:"sessionStartedAt,omitempty" bson:"sessionStartedAt,omitempty"`
}

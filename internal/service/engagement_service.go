package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"voicedeck/internal/model"
	"voicedeck/internal/repository"

	"go.uber.org/zap"
)

// EngagementService scores each org member's contribution activity
type EngagementService struct {
	sessions repository.SessionRepo
	logger   *zap.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(sessions repository.SessionRepo, logger *zap.Logger) *EngagementService {
	return &EngagementService{sessions: sessions, logger: logger}
}

// UserEngagement computes per-user engagement records for the org, sorted
// descending by engagement score. Fetch failures propagate.
func (s *EngagementService) UserEngagement(ctx context.Context, orgID string, rng *model.DateRange) ([]model.EngagementRecord, error) {
	rows, err := s.sessions.ListResponseSessions(ctx, orgID, rng)
	if err != nil {
		return nil, fmt.Errorf("fetch response sessions: %w", err)
	}

	byUser := make(map[string][]model.ResponseSession)
	for _, row := range rows {
		byUser[row.RespondentID] = append(byUser[row.RespondentID], row)
	}

	records := make([]model.EngagementRecord, 0, len(byUser))
	for userID, userRows := range byUser {
		records = append(records, buildEngagementRecord(userID, userRows, rng))
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].EngagementScore > records[j].EngagementScore
	})
	return records, nil
}

func buildEngagementRecord(userID string, rows []model.ResponseSession, rng *model.DateRange) model.EngagementRecord {
	count := len(rows)
	voiceCount := 0
	var completionTimes, sessionMinutes []float64
	first, last := rows[0].SubmittedAt, rows[0].SubmittedAt
	for _, row := range rows {
		if row.HasVoice {
			voiceCount++
		}
		if row.CompletionTimeSeconds != nil {
			completionTimes = append(completionTimes, float64(*row.CompletionTimeSeconds))
		}
		if row.SessionStartedAt != nil {
			sessionMinutes = append(sessionMinutes, row.SubmittedAt.Sub(*row.SessionStartedAt).Minutes())
		}
		if row.SubmittedAt.Before(first) {
			first = row.SubmittedAt
		}
		if row.SubmittedAt.After(last) {
			last = row.SubmittedAt
		}
	}

	// Frequency is measured over the caller's window when given, otherwise
	// over the user's own first-to-last submission span.
	start, end := first, last
	if rng != nil {
		start, end = rng.Start, rng.End
	}
	frequency := float64(count) / daysBetween(start, end)

	avgSessionMinutes := mean(sessionMinutes)
	avgCompletionSeconds := mean(completionTimes)
	voiceUsageRate := float64(voiceCount) / float64(count) * 100

	return model.EngagementRecord{
		UserID:                 userID,
		EngagementScore:        round1(engagementScore(count, frequency, voiceUsageRate, avgSessionMinutes, avgCompletionSeconds)),
		ResponseFrequency:      round1(frequency),
		AverageSessionDuration: round1(avgSessionMinutes),
		VoiceUsageRate:         round1(voiceUsageRate),
		QualityScore:           round1(qualityScore(count, voiceCount, avgCompletionSeconds)),
		LastActive:             last,
		TotalContributions:     count,
	}
}

// engagementScore is a weighted composite: 30% response volume, 20%
// frequency, 20% voice usage, 15% session depth, 15% completion speed.
// Only the final sum is clamped at zero; the completion term goes negative
// past 300s and drags the composite down, matching the upstream scorer.
func engagementScore(count int, frequency, voiceUsageRate, avgSessionMinutes, avgCompletionSeconds float64) float64 {
	responseScore := math.Min(100, float64(count)/10*30)
	frequencyScore := math.Min(100, frequency*20)
	voiceScore := voiceUsageRate / 100 * 20
	sessionScore := math.Min(100, avgSessionMinutes/30*15)
	completionScore := math.Min(100, (300-avgCompletionSeconds)/3) * 0.15

	return math.Max(0, responseScore+frequencyScore+voiceScore+sessionScore+completionScore)
}

// qualityScore rewards volume, voice richness and a completion-time sweet
// spot: under a minute earns nothing for thoroughness, the bonus tops out
// at 20 around 260s.
func qualityScore(count, voiceCount int, avgCompletionSeconds float64) float64 {
	responseQuality := math.Min(100, float64(count)/5*40)
	voiceQuality := float64(voiceCount) / float64(count) * 40
	thoroughness := clamp((avgCompletionSeconds-60)/10, 0, 20)

	return responseQuality + voiceQuality + thoroughness
}

package service

import (
	"context"
	"sync"
	"time"

	"voicedeck/internal/model"
)

// In-memory fakes for the repository ports. Counters are mutex-guarded
// because some services fan out to the same fake from several goroutines.

type fakeSurveyRepo struct {
	mu          sync.Mutex
	surveys     []model.Survey
	activeCount int
	err         error
	listCalls   int
}

func (f *fakeSurveyRepo) ListByOrg(ctx context.Context, orgID string, rng *model.DateRange) ([]model.Survey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.surveys, nil
}

func (f *fakeSurveyRepo) CountActive(ctx context.Context, orgID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return f.activeCount, nil
}

type fakeResponseRepo struct {
	mu          sync.Mutex
	responses   []model.Response
	countSince  int
	respondents []string
	err         error
	listCalls   int
}

func (f *fakeResponseRepo) ListByOrg(ctx context.Context, orgID string, rng *model.DateRange) ([]model.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.responses, nil
}

func (f *fakeResponseRepo) CountSince(ctx context.Context, orgID string, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	return f.countSince, nil
}

func (f *fakeResponseRepo) DistinctRespondentsSince(ctx context.Context, orgID string, since time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.respondents, nil
}

type fakeMemberRepo struct {
	mu        sync.Mutex
	members   []model.Member
	err       error
	listCalls int
}

func (f *fakeMemberRepo) ListByOrg(ctx context.Context, orgID string) ([]model.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.members, nil
}

type fakeAnalysisRepo struct {
	mu         sync.Mutex
	forces     []model.ForceAnalysis
	voice      []model.VoiceQuality
	forceErr   error
	voiceErr   error
	forceCalls int
	voiceCalls int
}

func (f *fakeAnalysisRepo) ListForceAnalyses(ctx context.Context, orgID string, rng *model.DateRange) ([]model.ForceAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forceCalls++
	if f.forceErr != nil {
		return nil, f.forceErr
	}
	return f.forces, nil
}

func (f *fakeAnalysisRepo) ListVoiceQuality(ctx context.Context, orgID string, rng *model.DateRange) ([]model.VoiceQuality, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.voiceCalls++
	if f.voiceErr != nil {
		return nil, f.voiceErr
	}
	return f.voice, nil
}

type fakeSessionRepo struct {
	rows []model.ResponseSession
	err  error
}

func (f *fakeSessionRepo) ListResponseSessions(ctx context.Context, orgID string, rng *model.DateRange) ([]model.ResponseSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

// fakeMetricsProvider serves canned metrics to the anomaly detector,
// telling the two windows apart by their span.
type fakeMetricsProvider struct {
	mu         sync.Mutex
	historical *model.OrganizationMetrics
	recent     *model.OrganizationMetrics
	err        error
}

func (f *fakeMetricsProvider) OrganizationMetrics(ctx context.Context, orgID string, rng *model.DateRange) (*model.OrganizationMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if rng != nil && rng.End.Sub(rng.Start) > 7*24*time.Hour {
		return f.historical, nil
	}
	return f.recent, nil
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

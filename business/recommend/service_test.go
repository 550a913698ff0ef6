package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myMealPlanner/domain"
)

type fakeUpstream struct {
	candidates []domain.CandidateRecord
	err        error

	feedbackErr  error
	gotQuery     Query
	sentFeedback []domain.RecommendationFeedback
}

func (f *fakeUpstream) Recommend(_ context.Context, q Query) ([]domain.CandidateRecord, error) {
	f.gotQuery = q
	return f.candidates, f.err
}

func (f *fakeUpstream) SendFeedback(_ context.Context, fb domain.RecommendationFeedback) error {
	f.sentFeedback = append(f.sentFeedback, fb)
	return f.feedbackErr
}

func (f *fakeUpstream) TriggerTraining(_ context.Context, force bool) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"training": "started", "force": force}, nil
}

func (f *fakeUpstream) Status(_ context.Context) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"status": "ok"}, nil
}

type fakeFeedbackRepo struct {
	saved []domain.RecommendationFeedback
	err   error
}

func (f *fakeFeedbackRepo) SaveFeedback(_ context.Context, fb *domain.RecommendationFeedback) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *fb)
	return nil
}

func mlCandidate(id string, similarity float64) domain.CandidateRecord {
	return domain.CandidateRecord{
		ItemID:     id,
		RawSignals: domain.RawSignals{domain.SignalSimilarity: similarity},
		Kind:       domain.KindModelPersonalized,
	}
}

func newTestService(upstream *fakeUpstream, feedbackRepo *fakeFeedbackRepo) *Service {
	usageRepo := &fakeUsageRepo{stats: []domain.UsageStat{
		{MealID: "pop1", UsageCount: 7},
		{MealID: "pop2", UsageCount: 3},
	}}
	catalogRepo := &fakeCatalogRepo{
		meals: map[string]domain.Meal{
			"pop1": activeMeal("pop1", "Nasi Uduk"),
			"pop2": activeMeal("pop2", "Mie Ayam"),
		},
		recent: []domain.Meal{
			activeMeal("fill1", "Capcay"),
			activeMeal("fill2", "Tumis Kangkung"),
			activeMeal("fill3", "Ayam Bakar"),
		},
	}
	return NewService(
		upstream,
		newFallback(usageRepo, catalogRepo),
		NewModeProvider(nil, time.Second),
		feedbackRepo,
	)
}

func TestRecommendUpstreamSuccess(t *testing.T) {
	upstream := &fakeUpstream{candidates: []domain.CandidateRecord{
		mlCandidate("m1", 10),
		mlCandidate("m2", 5),
		mlCandidate("m1", 10), // duplicate from upstream
	}}
	svc := newTestService(upstream, &fakeFeedbackRepo{})

	env, err := svc.Recommend(context.Background(), 42, "dinner", "", 5, nil)
	require.NoError(t, err)

	assert.False(t, env.Context.Fallback)
	assert.Empty(t, env.Context.Message)
	require.Len(t, env.Recommendations, 2, "duplicates dropped")
	assert.InDelta(t, 1.0, env.Recommendations[0].DisplayScore, 1e-9)
	assert.InDelta(t, 0.5, env.Recommendations[1].DisplayScore, 1e-9)
	assert.Equal(t, []string{string(domain.KindModelPersonalized)}, env.Context.ModelsUsed)
	assert.Equal(t, string(ModeTopNormalized), env.Context.ScoringMode)
	assert.False(t, env.Timestamp.IsZero())

	// request context carries the temporal fields
	require.NotNil(t, upstream.gotQuery.Context)
	assert.Contains(t, upstream.gotQuery.Context, "hour")
	assert.Contains(t, upstream.gotQuery.Context, "day_of_week")
	assert.Contains(t, upstream.gotQuery.Context, "month")
}

func TestRecommendEmptyUpstreamFallsBack(t *testing.T) {
	upstream := &fakeUpstream{candidates: nil}
	svc := newTestService(upstream, &fakeFeedbackRepo{})

	env, err := svc.Recommend(context.Background(), 42, "", "", 5, nil)
	require.NoError(t, err)

	assert.True(t, env.Context.Fallback)
	assert.Equal(t, "no ML recommendations", env.Context.Message)
	require.NotEmpty(t, env.Recommendations)
	assert.Equal(t, "pop1", env.Recommendations[0].ItemID)
	for _, c := range env.Recommendations {
		assert.GreaterOrEqual(t, c.DisplayScore, 0.0)
		assert.LessOrEqual(t, c.DisplayScore, 1.0)
	}
}

func TestRecommendUnavailableUpstreamFallsBack(t *testing.T) {
	upstream := &fakeUpstream{err: ErrUpstreamUnavailable}
	svc := newTestService(upstream, &fakeFeedbackRepo{})

	env, err := svc.Recommend(context.Background(), 42, "", "", 3, nil)
	require.NoError(t, err)

	assert.True(t, env.Context.Fallback)
	assert.Equal(t, "service unavailable", env.Context.Message)
	assert.Len(t, env.Recommendations, 3)
}

func TestRecommendOtherErrorPropagates(t *testing.T) {
	upstream := &fakeUpstream{err: errors.New("schema mismatch")}
	svc := newTestService(upstream, &fakeFeedbackRepo{})

	_, err := svc.Recommend(context.Background(), 42, "", "", 5, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestRecommendDefaultLimit(t *testing.T) {
	upstream := &fakeUpstream{candidates: []domain.CandidateRecord{mlCandidate("m1", 1)}}
	svc := newTestService(upstream, &fakeFeedbackRepo{})

	_, err := svc.Recommend(context.Background(), 42, "", "", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, upstream.gotQuery.Limit)
}

func TestRecordFeedbackPersistsAndForwards(t *testing.T) {
	upstream := &fakeUpstream{}
	feedbackRepo := &fakeFeedbackRepo{}
	svc := newTestService(upstream, feedbackRepo)

	err := svc.RecordFeedback(context.Background(), 42, "m1", domain.FeedbackLike, 4.5, map[string]any{"source": "detail_page"})
	require.NoError(t, err)

	require.Len(t, feedbackRepo.saved, 1)
	fb := feedbackRepo.saved[0]
	assert.Equal(t, uint(42), fb.UserID)
	assert.Equal(t, "m1", fb.MealID)
	assert.Equal(t, domain.FeedbackLike, fb.FeedbackType)
	assert.Equal(t, "detail_page", fb.Context["source"])

	require.Len(t, upstream.sentFeedback, 1)
}

func TestRecordFeedbackUpstreamFailureIsSwallowed(t *testing.T) {
	upstream := &fakeUpstream{feedbackErr: ErrUpstreamUnavailable}
	feedbackRepo := &fakeFeedbackRepo{}
	svc := newTestService(upstream, feedbackRepo)

	err := svc.RecordFeedback(context.Background(), 42, "m1", domain.FeedbackDislike, 0, nil)
	require.NoError(t, err, "forwarding is fire-and-forget")
	assert.Len(t, feedbackRepo.saved, 1)
}

func TestRecordFeedbackRejectsUnknownType(t *testing.T) {
	svc := newTestService(&fakeUpstream{}, &fakeFeedbackRepo{})

	err := svc.RecordFeedback(context.Background(), 42, "m1", "loved_it", 0, nil)
	assert.Error(t, err)
}

func TestRecordFeedbackSaveFailurePropagates(t *testing.T) {
	svc := newTestService(&fakeUpstream{}, &fakeFeedbackRepo{err: errors.New("db down")})

	err := svc.RecordFeedback(context.Background(), 42, "m1", domain.FeedbackNeutral, 0, nil)
	assert.Error(t, err)
}

func TestServiceStatusUnreachable(t *testing.T) {
	upstream := &fakeUpstream{err: ErrUpstreamUnavailable}
	svc := newTestService(upstream, &fakeFeedbackRepo{})

	status, err := svc.ServiceStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "unreachable", status["status"])
}

func TestTriggerTraining(t *testing.T) {
	svc := newTestService(&fakeUpstream{}, &fakeFeedbackRepo{})

	result, err := svc.TriggerTraining(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, true, result["force"])
}

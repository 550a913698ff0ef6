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

type fakeUsageRepo struct {
	stats []domain.UsageStat
	err   error
}

func (f *fakeUsageRepo) TopUsed(_ context.Context, _ time.Time, _ string, limit int) ([]domain.UsageStat, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.stats) > limit {
		return f.stats[:limit], nil
	}
	return f.stats, nil
}

type fakeCatalogRepo struct {
	meals  map[string]domain.Meal
	recent []domain.Meal
}

func (f *fakeCatalogRepo) FindActiveByMealIDs(_ context.Context, mealIDs []string) ([]domain.Meal, error) {
	out := make([]domain.Meal, 0, len(mealIDs))
	for _, id := range mealIDs {
		if m, ok := f.meals[id]; ok && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) FindRecentActive(_ context.Context, excludeMealIDs []string, limit int) ([]domain.Meal, error) {
	excluded := make(map[string]struct{}, len(excludeMealIDs))
	for _, id := range excludeMealIDs {
		excluded[id] = struct{}{}
	}
	out := make([]domain.Meal, 0, limit)
	for _, m := range f.recent {
		if _, skip := excluded[m.MealID]; skip {
			continue
		}
		out = append(out, m)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func activeMeal(id, name string) domain.Meal {
	return domain.Meal{MealID: id, MealName: name, MealType: "dinner", IsActive: true}
}

func newFallback(usageRepo *fakeUsageRepo, catalogRepo *fakeCatalogRepo) *FallbackRecommender {
	return NewFallbackRecommender(
		NewUsageAggregator(usageRepo, 30*24*time.Hour),
		NewFillerSelector(catalogRepo),
		catalogRepo,
	)
}

func TestFallbackPopularOrderPreserved(t *testing.T) {
	usageRepo := &fakeUsageRepo{stats: []domain.UsageStat{
		{MealID: "m1", UsageCount: 9},
		{MealID: "m2", UsageCount: 4},
		{MealID: "m3", UsageCount: 1},
	}}
	catalogRepo := &fakeCatalogRepo{meals: map[string]domain.Meal{
		"m1": activeMeal("m1", "Nasi Goreng"),
		"m2": activeMeal("m2", "Soto Ayam"),
		"m3": activeMeal("m3", "Gado Gado"),
	}}

	got, err := newFallback(usageRepo, catalogRepo).BuildFallback(context.Background(), "dinner", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "m1", got[0].ItemID)
	assert.Equal(t, "m2", got[1].ItemID)
	assert.Equal(t, "m3", got[2].ItemID)
	for i, c := range got {
		assert.Equal(t, domain.KindFallbackPopular, c.Kind)
		assert.Equal(t, float64(usageRepo.stats[i].UsageCount), c.RawSignals[domain.SignalPopularity])
	}
}

func TestFallbackSkipsMissingCatalogRows(t *testing.T) {
	usageRepo := &fakeUsageRepo{stats: []domain.UsageStat{
		{MealID: "gone", UsageCount: 50},
		{MealID: "inactive", UsageCount: 20},
		{MealID: "m1", UsageCount: 5},
	}}
	catalogRepo := &fakeCatalogRepo{meals: map[string]domain.Meal{
		"inactive": {MealID: "inactive", IsActive: false},
		"m1":       activeMeal("m1", "Rendang"),
	}}

	got, err := newFallback(usageRepo, catalogRepo).BuildFallback(context.Background(), "", 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ItemID)
}

func TestFallbackFillsWithRecentMeals(t *testing.T) {
	usageRepo := &fakeUsageRepo{stats: []domain.UsageStat{
		{MealID: "m1", UsageCount: 3},
	}}
	catalogRepo := &fakeCatalogRepo{
		meals: map[string]domain.Meal{"m1": activeMeal("m1", "Bakso")},
		recent: []domain.Meal{
			activeMeal("m1", "Bakso"),
			activeMeal("m2", "Sate"),
			activeMeal("m3", "Pecel"),
		},
	}

	got, err := newFallback(usageRepo, catalogRepo).BuildFallback(context.Background(), "", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, domain.KindFallbackPopular, got[0].Kind)
	assert.Equal(t, domain.KindFallbackFiller, got[1].Kind)
	assert.Equal(t, domain.KindFallbackFiller, got[2].Kind)

	seen := make(map[string]struct{})
	for _, c := range got {
		_, dup := seen[c.ItemID]
		assert.False(t, dup, "no duplicate meal IDs")
		seen[c.ItemID] = struct{}{}
	}
	assert.Zero(t, got[1].RawSignals[domain.SignalPopularity], "filler carries zero popularity")
}

func TestFallbackAllFillerWhenNoUsage(t *testing.T) {
	usageRepo := &fakeUsageRepo{}
	catalogRepo := &fakeCatalogRepo{recent: []domain.Meal{
		activeMeal("m1", "Opor"),
		activeMeal("m2", "Rawon"),
	}}

	got, err := newFallback(usageRepo, catalogRepo).BuildFallback(context.Background(), "lunch", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, domain.KindFallbackFiller, c.Kind)
	}
}

func TestFallbackRespectsLimit(t *testing.T) {
	stats := make([]domain.UsageStat, 10)
	meals := map[string]domain.Meal{}
	for i := range stats {
		id := string(rune('a' + i))
		stats[i] = domain.UsageStat{MealID: id, UsageCount: int64(10 - i)}
		meals[id] = activeMeal(id, id)
	}
	usageRepo := &fakeUsageRepo{stats: stats}
	catalogRepo := &fakeCatalogRepo{meals: meals}

	got, err := newFallback(usageRepo, catalogRepo).BuildFallback(context.Background(), "", 4)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestFallbackUsageErrorPropagates(t *testing.T) {
	usageRepo := &fakeUsageRepo{err: errors.New("db down")}
	catalogRepo := &fakeCatalogRepo{}

	_, err := newFallback(usageRepo, catalogRepo).BuildFallback(context.Background(), "", 3)
	assert.Error(t, err)
}

func TestFallbackZeroLimit(t *testing.T) {
	got, err := newFallback(&fakeUsageRepo{}, &fakeCatalogRepo{}).BuildFallback(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

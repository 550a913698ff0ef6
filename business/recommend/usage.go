package recommend

import (
	"context"
	"fmt"
	"time"

	"myMealPlanner/domain"
)

// UsageRepository reads historical meal-plan assignments.
type UsageRepository interface {
	TopUsed(ctx context.Context, since time.Time, mealType string, limit int) ([]domain.UsageStat, error)
}

// UsageAggregator ranks meals by how often they were planned inside a
// trailing window. Pure read; rows come back count-descending with ties
// broken by most recent use.
type UsageAggregator struct {
	usageRepo UsageRepository
	window    time.Duration
}

const defaultUsageWindow = 30 * 24 * time.Hour

func NewUsageAggregator(usageRepo UsageRepository, window time.Duration) *UsageAggregator {
	if window <= 0 {
		window = defaultUsageWindow
	}
	return &UsageAggregator{
		usageRepo: usageRepo,
		window:    window,
	}
}

func (a *UsageAggregator) TopUsed(ctx context.Context, mealType string, limit int) ([]domain.UsageStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.UsageStat{}, nil
	}

	since := time.Now().Add(-a.window)

	stats, err := a.usageRepo.TopUsed(ctx, since, mealType, limit)
	if err != nil {
		return nil, fmt.Errorf("load usage stats: %w", err)
	}

	return stats, nil
}

package recommend

import (
	"context"
	"fmt"

	"myMealPlanner/domain"
)

// CatalogRepository reads the meal catalog.
type CatalogRepository interface {
	FindActiveByMealIDs(ctx context.Context, mealIDs []string) ([]domain.Meal, error)
	FindRecentActive(ctx context.Context, excludeMealIDs []string, limit int) ([]domain.Meal, error)
}

// FillerSelector supplements a short popularity ranking with active
// catalog meals, newest first.
type FillerSelector struct {
	catalogRepo CatalogRepository
}

func NewFillerSelector(catalogRepo CatalogRepository) *FillerSelector {
	return &FillerSelector{catalogRepo: catalogRepo}
}

func (f *FillerSelector) Fill(ctx context.Context, exclude map[string]struct{}, limit int) ([]domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.Meal{}, nil
	}

	excludeIDs := make([]string, 0, len(exclude))
	for id := range exclude {
		excludeIDs = append(excludeIDs, id)
	}

	meals, err := f.catalogRepo.FindRecentActive(ctx, excludeIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("load filler meals: %w", err)
	}
	if len(meals) > limit {
		meals = meals[:limit]
	}

	return meals, nil
}

package recommend

import (
	"context"
	"fmt"

	"myMealPlanner/domain"
)

// FallbackRecommender synthesizes a ranked candidate list from historical
// popularity when the ML service is unavailable or returns nothing.
type FallbackRecommender struct {
	usage       *UsageAggregator
	filler      *FillerSelector
	catalogRepo CatalogRepository
}

func NewFallbackRecommender(
	usage *UsageAggregator,
	filler *FillerSelector,
	catalogRepo CatalogRepository,
) *FallbackRecommender {
	return &FallbackRecommender{
		usage:       usage,
		filler:      filler,
		catalogRepo: catalogRepo,
	}
}

// BuildFallback returns up to limit candidates: popularity-ranked meals
// first, then recent active meals as filler. Usage rows whose catalog
// record is gone or inactive are silently skipped.
func (r *FallbackRecommender) BuildFallback(ctx context.Context, mealType string, limit int) ([]domain.CandidateRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.CandidateRecord{}, nil
	}

	stats, err := r.usage.TopUsed(ctx, mealType, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.CandidateRecord, 0, limit)
	chosen := make(map[string]struct{}, limit)

	if len(stats) > 0 {
		ids := make([]string, 0, len(stats))
		for _, s := range stats {
			ids = append(ids, s.MealID)
		}

		meals, err := r.catalogRepo.FindActiveByMealIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("materialize popular meals: %w", err)
		}
		byID := make(map[string]domain.Meal, len(meals))
		for _, m := range meals {
			byID[m.MealID] = m
		}

		// keep the usage ranking order
		for _, s := range stats {
			meal, ok := byID[s.MealID]
			if !ok {
				continue
			}
			if _, dup := chosen[meal.MealID]; dup {
				continue
			}
			chosen[meal.MealID] = struct{}{}
			candidates = append(candidates, mealCandidate(meal, domain.KindFallbackPopular, float64(s.UsageCount)))
			if len(candidates) >= limit {
				break
			}
		}
	}

	if len(candidates) < limit {
		fillers, err := r.filler.Fill(ctx, chosen, limit-len(candidates))
		if err != nil {
			return nil, err
		}
		for _, meal := range fillers {
			if _, dup := chosen[meal.MealID]; dup {
				continue
			}
			chosen[meal.MealID] = struct{}{}
			candidates = append(candidates, mealCandidate(meal, domain.KindFallbackFiller, 0))
		}
	}

	return candidates, nil
}

func mealCandidate(meal domain.Meal, kind domain.RecommendationKind, popularity float64) domain.CandidateRecord {
	return domain.CandidateRecord{
		ItemID:          meal.MealID,
		DisplayName:     meal.MealName,
		Category:        meal.MealType,
		PrepTimeMinutes: meal.PrepTime,
		DifficultyTier:  meal.Difficulty,
		UserRating:      meal.Rating,
		RawSignals:      domain.RawSignals{domain.SignalPopularity: popularity},
		Kind:            kind,
	}
}

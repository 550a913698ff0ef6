package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"myMealPlanner/business/recommend"
	"myMealPlanner/domain"
)

type MealPlanRepository struct {
	DB *gorm.DB
}

var _ recommend.UsageRepository = (*MealPlanRepository)(nil)

func NewMealPlanRepository(db *gorm.DB) *MealPlanRepository {
	return &MealPlanRepository{
		DB: db,
	}
}

func (r *MealPlanRepository) Create(ctx context.Context, entry *domain.MealPlanEntry) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create meal plan entry: %w", err)
	}

	return nil
}

func (r *MealPlanRepository) FindByID(ctx context.Context, id uint64) (domain.MealPlanEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.MealPlanEntry{}, fmt.Errorf("context error: %w", err)
	}

	var entry domain.MealPlanEntry
	err := r.DB.WithContext(ctx).First(&entry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.MealPlanEntry{}, errors.New("meal plan entry not found")
		}
		return domain.MealPlanEntry{}, fmt.Errorf("failed to find meal plan entry: %w", err)
	}

	return entry, nil
}

func (r *MealPlanRepository) FindByUser(ctx context.Context, userID uint, from, to time.Time) ([]domain.MealPlanEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Where("user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("plan_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("plan_date <= ?", to)
	}

	var entries []domain.MealPlanEntry
	if err := q.Order("plan_date ASC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to find meal plan entries: %w", err)
	}

	return entries, nil
}

func (r *MealPlanRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.MealPlanEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete meal plan entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("meal plan entry not found")
	}

	return nil
}

// TopUsed aggregates plan entries newer than since into per-meal usage
// counts, descending, ties broken by most recent use.
func (r *MealPlanRepository) TopUsed(ctx context.Context, since time.Time, mealType string, limit int) ([]domain.UsageStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		limit = 10
	}

	q := r.DB.WithContext(ctx).
		Model(&domain.MealPlanEntry{}).
		Select("meal_id, COUNT(*) AS usage_count, MAX(meal_type) AS meal_type, MAX(plan_date) AS last_used").
		Where("plan_date >= ?", since)
	if mealType != "" {
		q = q.Where("meal_type = ?", mealType)
	}

	var stats []domain.UsageStat
	err := q.Group("meal_id").
		Order("usage_count DESC, last_used DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate meal usage: %w", err)
	}

	return stats, nil
}

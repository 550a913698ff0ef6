package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"myMealPlanner/business/recommend"
	"myMealPlanner/domain"
)

type MealRepository struct {
	DB *gorm.DB
}

var _ recommend.CatalogRepository = (*MealRepository)(nil)

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{
		DB: db,
	}
}

func (r *MealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}

	return nil
}

func (r *MealRepository) FindByMealID(ctx context.Context, mealID string) (domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		return domain.Meal{}, fmt.Errorf("context error: %w", err)
	}

	var meal domain.Meal

	err := r.DB.WithContext(ctx).Where("meal_id = ?", mealID).First(&meal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Meal{}, errors.New("meal not found")
		}
		return domain.Meal{}, fmt.Errorf("failed to find meal: %w", err)
	}

	return meal, nil
}

func (r *MealRepository) FindAll(ctx context.Context, mealType string) ([]domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx)
	if mealType != "" {
		q = q.Where("meal_type = ?", mealType)
	}

	var meals []domain.Meal
	if err := q.Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to find meals: %w", err)
	}

	return meals, nil
}

func (r *MealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"meal_name":        meal.MealName,
		"meal_type":        meal.MealType,
		"prep_time":        meal.PrepTime,
		"difficulty":       meal.Difficulty,
		"rating":           meal.Rating,
		"ingredient_count": meal.IngredientCount,
		"is_active":        meal.IsActive,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Meal{}).Where("meal_id = ?", meal.MealID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("meal not found")
	}

	return nil
}

func (r *MealRepository) Delete(ctx context.Context, mealID string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("meal_id = ?", mealID).Delete(&domain.Meal{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("meal not found")
	}

	return nil
}

// FindActiveByMealIDs returns the active catalog rows among the given ids.
// Missing or inactive ids are simply absent from the result.
func (r *MealRepository) FindActiveByMealIDs(ctx context.Context, mealIDs []string) ([]domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(mealIDs) == 0 {
		return []domain.Meal{}, nil
	}

	var meals []domain.Meal
	err := r.DB.WithContext(ctx).
		Where("meal_id IN ? AND is_active = ?", mealIDs, true).
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find meals by ids: %w", err)
	}

	return meals, nil
}

// FindRecentActive returns active meals newest-first, skipping excluded
// ids, truncated to limit.
func (r *MealRepository) FindRecentActive(ctx context.Context, excludeMealIDs []string, limit int) ([]domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if limit <= 0 {
		return []domain.Meal{}, nil
	}

	q := r.DB.WithContext(ctx).Where("is_active = ?", true)
	if len(excludeMealIDs) > 0 {
		q = q.Where("meal_id NOT IN ?", excludeMealIDs)
	}

	var meals []domain.Meal
	err := q.Order("created_at DESC").Limit(limit).Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent meals: %w", err)
	}

	return meals, nil
}

package mealplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myMealPlanner/business/meal"
	"myMealPlanner/domain"
	"myMealPlanner/pkg/logger"
)

// PlanRepository contract interface
type PlanRepository interface {
	Create(ctx context.Context, entry *domain.MealPlanEntry) error
	FindByID(ctx context.Context, id uint64) (domain.MealPlanEntry, error)
	FindByUser(ctx context.Context, userID uint, from, to time.Time) ([]domain.MealPlanEntry, error)
	Delete(ctx context.Context, id uint64) error
}

type mealPlanService struct {
	planRepo PlanRepository
	mealRepo meal.MealRepository
}

func NewMealPlanService(planRepo PlanRepository, mealRepo meal.MealRepository) *mealPlanService {
	return &mealPlanService{
		planRepo: planRepo,
		mealRepo: mealRepo,
	}
}

func (s *mealPlanService) AddEntry(ctx context.Context, entry *domain.MealPlanEntry) (*domain.MealPlanEntry, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when adding meal plan entry")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if entry.UserID == 0 {
		return nil, errors.New("user ID is required")
	}

	if entry.PlanDate.IsZero() {
		return nil, errors.New("plan date is required")
	}

	// Planned meals must exist in the catalog
	planned, err := s.mealRepo.FindByMealID(ctx, entry.MealID)
	if err != nil {
		logger.Error("meal not found for plan entry", err)
		return nil, errors.New("meal not found")
	}

	if entry.MealType == "" {
		entry.MealType = planned.MealType
	}

	if err := s.planRepo.Create(ctx, entry); err != nil {
		logger.Error("failed to create meal plan entry", err)
		return nil, fmt.Errorf("failed to create meal plan entry: %w", err)
	}

	logger.Info("meal plan entry created", "user_id", entry.UserID, "meal_id", entry.MealID)

	return entry, nil
}

func (s *mealPlanService) GetEntry(ctx context.Context, id uint64) (*domain.MealPlanEntry, error) {
	if id == 0 {
		return nil, errors.New("invalid entry id")
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	entry, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find meal plan entry", err)
		return nil, err
	}

	return &entry, nil
}

func (s *mealPlanService) GetUserPlan(ctx context.Context, userID uint, from, to time.Time) ([]domain.MealPlanEntry, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when getting user plan")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if userID == 0 {
		return nil, errors.New("user ID is required")
	}

	if to.Before(from) {
		return nil, errors.New("invalid date range")
	}

	entries, err := s.planRepo.FindByUser(ctx, userID, from, to)
	if err != nil {
		logger.Error("failed to find meal plan entries", err)
		return nil, err
	}

	return entries, nil
}

func (s *mealPlanService) RemoveEntry(ctx context.Context, userID uint, id uint64) error {
	if id == 0 {
		return errors.New("invalid entry id")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	entry, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("meal plan entry not found", err)
		return errors.New("meal plan entry not found")
	}

	// Users may only remove their own entries
	if entry.UserID != userID {
		return errors.New("meal plan entry not found")
	}

	if err := s.planRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete meal plan entry", err)
		return fmt.Errorf("failed to delete meal plan entry: %w", err)
	}

	logger.Info("meal plan entry deleted", "entry_id", id)

	return nil
}

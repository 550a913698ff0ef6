package meal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"myMealPlanner/domain"
	"myMealPlanner/pkg/logger"
)

// MealRepository contract interface
type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) error
	FindByMealID(ctx context.Context, mealID string) (domain.Meal, error)
	FindAll(ctx context.Context, mealType string) ([]domain.Meal, error)
	Update(ctx context.Context, meal *domain.Meal) error
	Delete(ctx context.Context, mealID string) error
}

var validMealTypes = map[string]struct{}{
	domain.MealTypeBreakfast: {},
	domain.MealTypeLunch:     {},
	domain.MealTypeDinner:    {},
	domain.MealTypeSnack:     {},
}

var validDifficulties = map[string]struct{}{
	domain.DifficultyEasy:   {},
	domain.DifficultyMedium: {},
	domain.DifficultyHard:   {},
}

type mealService struct {
	mealRepo MealRepository
}

func NewMealService(mealRepo MealRepository) *mealService {
	return &mealService{
		mealRepo: mealRepo,
	}
}

func (s *mealService) GetAllMeals(ctx context.Context, mealType string) ([]domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all meals")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if mealType != "" {
		if _, ok := validMealTypes[mealType]; !ok {
			return nil, errors.New("invalid meal type")
		}
	}

	meals, err := s.mealRepo.FindAll(ctx, mealType)
	if err != nil {
		logger.Error("Failed to find all meals", err)
		return nil, err
	}

	return meals, nil
}

func (s *mealService) GetMealByID(ctx context.Context, mealID string) (*domain.Meal, error) {
	if mealID == "" {
		logger.Error("invalid meal id")
		return nil, errors.New("invalid meal id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get meal by id")
		return nil, fmt.Errorf("context error: %w", err)
	}

	meal, err := s.mealRepo.FindByMealID(ctx, mealID)
	if err != nil {
		logger.Error("failed to find meal by id", err.Error())
		return nil, err
	}

	return &meal, nil
}

func (s *mealService) CreateMeal(ctx context.Context, meal *domain.Meal) (*domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create meal")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validateMeal(meal); err != nil {
		logger.Error("Invalid meal data", err)
		return nil, err
	}

	if meal.MealID == "" {
		meal.MealID = uuid.NewString()
	}
	meal.IsActive = true

	if err := s.mealRepo.Create(ctx, meal); err != nil {
		logger.Error("failed to create new meal", err)
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	logger.Info("meal created successfully", "meal_id", meal.MealID)

	return meal, nil
}

func (s *mealService) UpdateMeal(ctx context.Context, meal *domain.Meal) (*domain.Meal, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating meal")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if meal.MealID == "" {
		logger.Error("Invalid meal data: meal ID is required")
		return nil, errors.New("meal ID is required")
	}

	if err := validateMeal(meal); err != nil {
		logger.Error("Invalid meal data", err)
		return nil, err
	}

	// Verify meal exists
	_, err := s.mealRepo.FindByMealID(ctx, meal.MealID)
	if err != nil {
		logger.Error("meal not found", err)
		return nil, errors.New("meal not found")
	}

	if err := s.mealRepo.Update(ctx, meal); err != nil {
		logger.Error("failed to update meal", err)
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}

	updatedMeal, err := s.mealRepo.FindByMealID(ctx, meal.MealID)
	if err != nil {
		logger.Error("failed to fetch updated meal", err)
		return nil, fmt.Errorf("failed to fetch updated meal: %w", err)
	}

	logger.Info("meal updated success")

	return &updatedMeal, nil
}

func (s *mealService) DeleteMeal(ctx context.Context, mealID string) error {
	if mealID == "" {
		logger.Error("Invalid meal id when deleting meal")
		return errors.New("invalid meal id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting meal")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify meal exists
	_, err := s.mealRepo.FindByMealID(ctx, mealID)
	if err != nil {
		logger.Error("meal not found", err)
		return errors.New("meal not found")
	}

	if err := s.mealRepo.Delete(ctx, mealID); err != nil {
		logger.Error("failed to delete meal", err)
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	logger.Info("meal deleted success")

	return nil
}

func validateMeal(meal *domain.Meal) error {
	if meal.MealName == "" {
		return errors.New("meal name is required")
	}

	if _, ok := validMealTypes[meal.MealType]; !ok {
		return errors.New("invalid meal type")
	}

	if _, ok := validDifficulties[meal.Difficulty]; !ok {
		return errors.New("invalid difficulty")
	}

	if meal.PrepTime < 0 {
		return errors.New("prep time cannot be negative")
	}

	if meal.Rating < 0 || meal.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}

	return nil
}

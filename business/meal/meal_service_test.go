package meal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myMealPlanner/domain"
)

type fakeMealRepo struct {
	meals map[string]domain.Meal
}

func newFakeMealRepo() *fakeMealRepo {
	return &fakeMealRepo{meals: map[string]domain.Meal{}}
}

func (f *fakeMealRepo) Create(_ context.Context, meal *domain.Meal) error {
	f.meals[meal.MealID] = *meal
	return nil
}

func (f *fakeMealRepo) FindByMealID(_ context.Context, mealID string) (domain.Meal, error) {
	m, ok := f.meals[mealID]
	if !ok {
		return domain.Meal{}, errors.New("meal not found")
	}
	return m, nil
}

func (f *fakeMealRepo) FindAll(_ context.Context, mealType string) ([]domain.Meal, error) {
	out := make([]domain.Meal, 0, len(f.meals))
	for _, m := range f.meals {
		if mealType != "" && m.MealType != mealType {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMealRepo) Update(_ context.Context, meal *domain.Meal) error {
	if _, ok := f.meals[meal.MealID]; !ok {
		return errors.New("meal not found")
	}
	f.meals[meal.MealID] = *meal
	return nil
}

func (f *fakeMealRepo) Delete(_ context.Context, mealID string) error {
	if _, ok := f.meals[mealID]; !ok {
		return errors.New("meal not found")
	}
	delete(f.meals, mealID)
	return nil
}

func validMeal() *domain.Meal {
	return &domain.Meal{
		MealName:   "Nasi Goreng",
		MealType:   domain.MealTypeDinner,
		PrepTime:   25,
		Difficulty: domain.DifficultyEasy,
		Rating:     4.2,
	}
}

func TestCreateMealAssignsID(t *testing.T) {
	svc := NewMealService(newFakeMealRepo())

	meal, err := svc.CreateMeal(context.Background(), validMeal())
	require.NoError(t, err)
	assert.NotEmpty(t, meal.MealID)
	assert.True(t, meal.IsActive)
}

func TestCreateMealValidation(t *testing.T) {
	svc := NewMealService(newFakeMealRepo())

	cases := []struct {
		name   string
		mutate func(*domain.Meal)
	}{
		{"missing name", func(m *domain.Meal) { m.MealName = "" }},
		{"bad meal type", func(m *domain.Meal) { m.MealType = "brunch" }},
		{"bad difficulty", func(m *domain.Meal) { m.Difficulty = "impossible" }},
		{"negative prep time", func(m *domain.Meal) { m.PrepTime = -1 }},
		{"rating out of range", func(m *domain.Meal) { m.Rating = 6 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validMeal()
			tc.mutate(m)
			_, err := svc.CreateMeal(context.Background(), m)
			assert.Error(t, err)
		})
	}
}

func TestGetAllMealsFiltersByType(t *testing.T) {
	repo := newFakeMealRepo()
	svc := NewMealService(repo)

	breakfast := validMeal()
	breakfast.MealType = domain.MealTypeBreakfast
	_, err := svc.CreateMeal(context.Background(), breakfast)
	require.NoError(t, err)
	_, err = svc.CreateMeal(context.Background(), validMeal())
	require.NoError(t, err)

	got, err := svc.GetAllMeals(context.Background(), domain.MealTypeBreakfast)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.MealTypeBreakfast, got[0].MealType)

	_, err = svc.GetAllMeals(context.Background(), "brunch")
	assert.Error(t, err)
}

func TestUpdateMealNotFound(t *testing.T) {
	svc := NewMealService(newFakeMealRepo())

	m := validMeal()
	m.MealID = "missing"
	_, err := svc.UpdateMeal(context.Background(), m)
	assert.Error(t, err)
}

func TestDeleteMeal(t *testing.T) {
	repo := newFakeMealRepo()
	svc := NewMealService(repo)

	meal, err := svc.CreateMeal(context.Background(), validMeal())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMeal(context.Background(), meal.MealID))
	assert.Error(t, svc.DeleteMeal(context.Background(), meal.MealID))
}

package domain

import (
	"time"
)

// CREATE TABLE public.meals (
//     id               BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     meal_id          TEXT UNIQUE NOT NULL,
//     meal_name        TEXT NOT NULL,
//     meal_type        TEXT NOT NULL,
//     prep_time        INT,
//     difficulty       TEXT,
//     rating           NUMERIC,
//     ingredient_count INT,
//     is_active        BOOLEAN DEFAULT TRUE,
//     created_at       TIMESTAMPTZ DEFAULT NOW(),
//     updated_at       TIMESTAMPTZ
// );

type Meal struct {
	ID              uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	MealID          string    `gorm:"column:meal_id;uniqueIndex;not null" json:"meal_id"`
	MealName        string    `gorm:"column:meal_name;type:text;not null" json:"meal_name"`
	MealType        string    `gorm:"column:meal_type;type:text;not null" json:"meal_type"`
	PrepTime        int       `gorm:"column:prep_time" json:"prep_time"`
	Difficulty      string    `gorm:"column:difficulty;type:text" json:"difficulty"`
	Rating          float64   `gorm:"column:rating;type:numeric" json:"rating"`
	IngredientCount int       `gorm:"column:ingredient_count" json:"ingredient_count"`
	IsActive        bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Meal) TableName() string {
	return "meals"
}

// Meal types accepted across the API and the ML service.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

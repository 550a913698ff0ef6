package domain

import (
	"time"
)

// MealPlanEntry is one meal assigned to a calendar slot. Entries are
// immutable once created; the recommendation fallback reads them as the
// usage history.
type MealPlanEntry struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	MealID    string    `gorm:"column:meal_id;not null;index" json:"meal_id"`
	MealType  string    `gorm:"column:meal_type;not null" json:"meal_type"`
	PlanDate  time.Time `gorm:"column:plan_date;not null;index" json:"plan_date"`
	Notes     string    `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (MealPlanEntry) TableName() string {
	return "meal_plan_entries"
}

// UsageStat is one row of the popularity aggregation over plan entries.
type UsageStat struct {
	MealID     string    `json:"meal_id"`
	UsageCount int64     `json:"usage_count"`
	MealType   string    `json:"meal_type"`
	LastUsed   time.Time `json:"last_used"`
}

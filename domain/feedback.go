package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	FeedbackLike    = "like"
	FeedbackDislike = "dislike"
	FeedbackNeutral = "neutral"
)

// RecommendationFeedback is one user reaction to a recommended meal,
// persisted locally and forwarded to the ML service for retraining.
type RecommendationFeedback struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       uint              `gorm:"column:user_id;not null" json:"user_id"`
	MealID       string            `gorm:"column:meal_id;not null" json:"meal_id"`
	FeedbackType string            `gorm:"column:feedback_type;not null" json:"feedback_type"`
	Rating       float64           `gorm:"column:rating" json:"rating,omitempty"`
	Context      datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (RecommendationFeedback) TableName() string {
	return "recommendation_feedback"
}

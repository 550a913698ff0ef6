package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"myMealPlanner/business/recommend"
	"myMealPlanner/domain"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

var _ recommend.FeedbackRepository = (*FeedbackRepository)(nil)

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{DB: db}
}

func (r *FeedbackRepository) SaveFeedback(ctx context.Context, fb *domain.RecommendationFeedback) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(fb).Error; err != nil {
		return fmt.Errorf("failed to save recommendation feedback: %w", err)
	}

	return nil
}

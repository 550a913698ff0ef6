package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"myMealPlanner/business/recommend"
	"myMealPlanner/domain"
)

type ScoringSettingRepository struct {
	DB *gorm.DB
}

var _ recommend.SettingRepository = (*ScoringSettingRepository)(nil)

func NewScoringSettingRepository(db *gorm.DB) *ScoringSettingRepository {
	return &ScoringSettingRepository{DB: db}
}

func (r *ScoringSettingRepository) GetSetting(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, fmt.Errorf("context error: %w", err)
	}

	var setting domain.ScoringSetting
	err := r.DB.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read scoring setting: %w", err)
	}

	return setting.Value, true, nil
}

func (r *ScoringSettingRepository) UpsertSetting(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	setting := domain.ScoringSetting{Key: key, Value: value}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to upsert scoring setting: %w", err)
	}

	return nil
}

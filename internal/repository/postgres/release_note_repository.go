package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"myMealPlanner/domain"
)

type ReleaseNoteRepository struct {
	DB *gorm.DB
}

func NewReleaseNoteRepository(db *gorm.DB) *ReleaseNoteRepository {
	return &ReleaseNoteRepository{
		DB: db,
	}
}

func (r *ReleaseNoteRepository) Create(ctx context.Context, note *domain.ReleaseNote) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("failed to create release note: %w", err)
	}

	return nil
}

func (r *ReleaseNoteRepository) FindAll(ctx context.Context) ([]domain.ReleaseNote, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var notes []domain.ReleaseNote
	if err := r.DB.WithContext(ctx).Order("published_at DESC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("failed to find release notes: %w", err)
	}

	return notes, nil
}

func (r *ReleaseNoteRepository) FindLatest(ctx context.Context) (domain.ReleaseNote, error) {
	if err := ctx.Err(); err != nil {
		return domain.ReleaseNote{}, fmt.Errorf("context error: %w", err)
	}

	var note domain.ReleaseNote
	err := r.DB.WithContext(ctx).Order("published_at DESC").First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReleaseNote{}, errors.New("release note not found")
		}
		return domain.ReleaseNote{}, fmt.Errorf("failed to find release note: %w", err)
	}

	return note, nil
}

func (r *ReleaseNoteRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.ReleaseNote{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete release note: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("release note not found")
	}

	return nil
}

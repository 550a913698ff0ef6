package releasenote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"myMealPlanner/domain"
	"myMealPlanner/pkg/logger"
)

// NoteRepository contract interface
type NoteRepository interface {
	Create(ctx context.Context, note *domain.ReleaseNote) error
	FindAll(ctx context.Context) ([]domain.ReleaseNote, error)
	FindLatest(ctx context.Context) (domain.ReleaseNote, error)
	Delete(ctx context.Context, id uint64) error
}

type releaseNoteService struct {
	noteRepo NoteRepository
}

func NewReleaseNoteService(noteRepo NoteRepository) *releaseNoteService {
	return &releaseNoteService{
		noteRepo: noteRepo,
	}
}

func (s *releaseNoteService) GetAllNotes(ctx context.Context) ([]domain.ReleaseNote, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all release notes")
		return nil, fmt.Errorf("context error: %w", err)
	}

	notes, err := s.noteRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all release notes", err)
		return nil, err
	}

	return notes, nil
}

func (s *releaseNoteService) GetLatestNote(ctx context.Context) (domain.ReleaseNote, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get latest release note")
		return domain.ReleaseNote{}, fmt.Errorf("context error: %w", err)
	}

	note, err := s.noteRepo.FindLatest(ctx)
	if err != nil {
		logger.Error("Failed to find latest release note", err)
		return domain.ReleaseNote{}, err
	}

	return note, nil
}

func (s *releaseNoteService) CreateNote(ctx context.Context, note *domain.ReleaseNote) (*domain.ReleaseNote, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create release note")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if note.Version == "" {
		logger.Error("Invalid release note data: version is required")
		return nil, errors.New("version is required")
	}

	if note.Title == "" {
		logger.Error("Invalid release note data: title is required")
		return nil, errors.New("title is required")
	}

	if note.PublishedAt.IsZero() {
		note.PublishedAt = time.Now()
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("failed to create new release note", err)
		return nil, fmt.Errorf("failed to create release note: %w", err)
	}

	logger.Info("release note created successfully", "version", note.Version)

	return note, nil
}

func (s *releaseNoteService) DeleteNote(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid release note id when deleting")
		return errors.New("invalid release note id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting release note")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.noteRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete release note", err)
		return fmt.Errorf("failed to delete release note: %w", err)
	}

	logger.Info("release note deleted successfully")

	return nil
}

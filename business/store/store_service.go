package store

import (
	"context"
	"errors"
	"fmt"

	"myMealPlanner/domain"
	"myMealPlanner/pkg/logger"
)

// StoreRepository contract interface
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) error
	FindByID(ctx context.Context, id uint64) (domain.Store, error)
	FindAll(ctx context.Context) ([]domain.Store, error)
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id uint64) error
}

type storeService struct {
	storeRepo StoreRepository
}

func NewStoreService(storeRepo StoreRepository) *storeService {
	return &storeService{
		storeRepo: storeRepo,
	}
}

func (s *storeService) GetAllStores(ctx context.Context) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all stores")
		return nil, fmt.Errorf("context error: %w", err)
	}

	stores, err := s.storeRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all stores", err)
		return nil, err
	}

	return stores, nil
}

func (s *storeService) GetStoreByID(ctx context.Context, id uint64) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get store by id")
		return domain.Store{}, fmt.Errorf("context error: %w", err)
	}

	if id == 0 {
		logger.Error("Invalid store id")
		return domain.Store{}, errors.New("invalid store id")
	}

	store, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find store", err)
		return domain.Store{}, err
	}

	return store, nil
}

func (s *storeService) CreateStore(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create store")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if store.StoreName == "" {
		logger.Error("Invalid store data: store name is required")
		return nil, errors.New("store name is required")
	}

	if err := s.storeRepo.Create(ctx, store); err != nil {
		logger.Error("failed to create new store", err)
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	logger.Info("store created successfully")

	return store, nil
}

func (s *storeService) UpdateStore(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating store")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if store.ID == 0 {
		logger.Error("Invalid store data: ID is required")
		return nil, errors.New("store ID is required")
	}

	if store.StoreName == "" {
		logger.Error("Invalid store data: store name is required")
		return nil, errors.New("store name is required")
	}

	// Verify store exists
	_, err := s.storeRepo.FindByID(ctx, store.ID)
	if err != nil {
		logger.Error("store not found", err)
		return nil, errors.New("store not found")
	}

	if err := s.storeRepo.Update(ctx, store); err != nil {
		logger.Error("failed to update store", err)
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	updatedStore, err := s.storeRepo.FindByID(ctx, store.ID)
	if err != nil {
		logger.Error("failed to fetch updated store", err)
		return nil, fmt.Errorf("failed to fetch updated store: %w", err)
	}

	logger.Info("store updated successfully")

	return &updatedStore, nil
}

func (s *storeService) DeleteStore(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid store id when deleting store")
		return errors.New("invalid store id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting store")
		return fmt.Errorf("context error: %w", err)
	}

	// Verify store exists
	_, err := s.storeRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("store not found", err)
		return errors.New("store not found")
	}

	if err := s.storeRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete store", err)
		return fmt.Errorf("failed to delete store: %w", err)
	}

	logger.Info("store deleted successfully")

	return nil
}

package service

import (
	"context"
	"fmt"

	"canteen/internal/errors"
	"canteen/internal/model"
	"canteen/internal/repository"
)

// SettingsService reads and updates the singleton scheduling configuration.
// Writes are last-writer-wins; the row identity is fixed, so any sequence of
// updates leaves exactly one persisted row.
type SettingsService interface {
	Get(ctx context.Context) (*model.Settings, error)
	Update(ctx context.Context, orderCutoff, menuVisibility string) (*model.Settings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

// Get returns the current settings, creating defaults on first read.
func (s *settingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// Update replaces both times after validating their "HH:MM" format.
func (s *settingsService) Update(ctx context.Context, orderCutoff, menuVisibility string) (*model.Settings, error) {
	settings := &model.Settings{
		ID:             model.SettingsID,
		OrderCutoff:    orderCutoff,
		MenuVisibility: menuVisibility,
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidClock, err)
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"canteen/internal/model"
)

// SettingsRepository defines persistence for the singleton settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, settings *model.Settings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the settings row, creating it with column defaults if missing.
func (r *settingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	settings := model.Settings{ID: model.SettingsID}
	err := r.db.WithContext(ctx).
		Where("id = ?", model.SettingsID).
		Attrs(model.Settings{OrderCutoff: "20:00", MenuVisibility: "06:00"}).
		FirstOrCreate(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save writes the settings row. The model's BeforeSave hook coerces the
// primary key, so every write lands on the same identity.
func (r *settingsRepository) Save(ctx context.Context, settings *model.Settings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"canteen/internal/model"
)

// FailedLoginRepository defines the append-only failed login log. There are
// deliberately no update or delete operations.
type FailedLoginRepository interface {
	Create(ctx context.Context, entry *model.FailedLogin) error
	ListRecent(ctx context.Context, limit int) ([]model.FailedLogin, error)
}

type failedLoginRepository struct {
	db *gorm.DB
}

// NewFailedLoginRepository creates a new failed login repository.
func NewFailedLoginRepository(db *gorm.DB) FailedLoginRepository {
	return &failedLoginRepository{db: db}
}

// Create appends a failed login entry.
func (r *failedLoginRepository) Create(ctx context.Context, entry *model.FailedLogin) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListRecent returns the most recent entries, newest first.
func (r *failedLoginRepository) ListRecent(ctx context.Context, limit int) ([]model.FailedLogin, error) {
	var entries []model.FailedLogin
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"canteen/internal/model"
)

// MenuRepository defines daily menu persistence operations.
type MenuRepository interface {
	Create(ctx context.Context, menu *model.DailyMenu) error
	Update(ctx context.Context, menu *model.DailyMenu) error
	ReplaceDishes(ctx context.Context, menu *model.DailyMenu, dishes []model.Dish) error
	FindByDate(ctx context.Context, date time.Time) (*model.DailyMenu, error)
	ListFrom(ctx context.Context, from time.Time) ([]model.DailyMenu, error)
}

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository.
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// Create creates a new daily menu with its dish set.
func (r *menuRepository) Create(ctx context.Context, menu *model.DailyMenu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

// Update saves menu fields without touching the dish association.
func (r *menuRepository) Update(ctx context.Context, menu *model.DailyMenu) error {
	return r.db.WithContext(ctx).Omit("Dishes").Save(menu).Error
}

// ReplaceDishes replaces the menu's dish set.
func (r *menuRepository) ReplaceDishes(ctx context.Context, menu *model.DailyMenu, dishes []model.Dish) error {
	return r.db.WithContext(ctx).Model(menu).Association("Dishes").Replace(dishes)
}

// FindByDate finds the menu for a calendar date with dishes and their
// categories loaded.
func (r *menuRepository) FindByDate(ctx context.Context, date time.Time) (*model.DailyMenu, error) {
	var menu model.DailyMenu
	err := r.db.WithContext(ctx).
		Preload("Dishes").Preload("Dishes.Category").
		Where("date = ?", model.DateOnly(date)).
		First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// ListFrom lists menus for dates at or after from, oldest first.
func (r *menuRepository) ListFrom(ctx context.Context, from time.Time) ([]model.DailyMenu, error) {
	var menus []model.DailyMenu
	err := r.db.WithContext(ctx).
		Preload("Dishes").Preload("Dishes.Category").
		Where("date >= ?", model.DateOnly(from)).
		Order("date").
		Find(&menus).Error
	if err != nil {
		return nil, err
	}
	return menus, nil
}

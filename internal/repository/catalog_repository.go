package repository

import (
	"context"

	"gorm.io/gorm"

	"canteen/internal/model"
)

// CategoryRepository defines category persistence operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	CountDishes(ctx context.Context, id uint) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create creates a new category.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// Update updates an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a category. Callers must check CountDishes first; the foreign
// key RESTRICT constraint is the storage-level backstop.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

// FindByID finds a category by ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List lists all categories ordered by name.
func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CountDishes counts the dishes referencing a category.
func (r *categoryRepository) CountDishes(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Dish{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// DishRepository defines dish persistence operations.
type DishRepository interface {
	Create(ctx context.Context, dish *model.Dish) error
	Update(ctx context.Context, dish *model.Dish) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Dish, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Dish, error)
	List(ctx context.Context, activeOnly bool) ([]model.Dish, error)
	CountOrderLines(ctx context.Context, id uint) (int64, error)
}

type dishRepository struct {
	db *gorm.DB
}

// NewDishRepository creates a new dish repository.
func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

// Create creates a new dish.
func (r *dishRepository) Create(ctx context.Context, dish *model.Dish) error {
	return r.db.WithContext(ctx).Create(dish).Error
}

// Update updates an existing dish.
func (r *dishRepository) Update(ctx context.Context, dish *model.Dish) error {
	return r.db.WithContext(ctx).Save(dish).Error
}

// Delete removes a dish. Callers must check CountOrderLines first.
func (r *dishRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Dish{}, id).Error
}

// FindByID finds a dish by ID with its category loaded, so the effective
// price is always resolvable.
func (r *dishRepository) FindByID(ctx context.Context, id uint) (*model.Dish, error) {
	var dish model.Dish
	if err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&dish).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

// FindByIDs finds dishes by IDs with categories loaded.
func (r *dishRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Dish, error) {
	var dishes []model.Dish
	if err := r.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// List lists dishes, optionally only active ones.
func (r *dishRepository) List(ctx context.Context, activeOnly bool) ([]model.Dish, error) {
	q := r.db.WithContext(ctx).Preload("Category").Order("name")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var dishes []model.Dish
	if err := q.Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// CountOrderLines counts historical order lines referencing a dish.
func (r *dishRepository) CountOrderLines(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrderLine{}).Where("dish_id = ?", id).Count(&count).Error
	return count, err
}

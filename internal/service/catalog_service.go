package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"canteen/internal/errors"
	"canteen/internal/model"
	"canteen/internal/repository"
)

// CatalogService handles supplier-side category and dish management. Prices
// live on categories; dishes inherit them. Deleting a category or dish that
// order history references is rejected, so price snapshots always point at a
// real row; dishes are deactivated instead.
type CatalogService interface {
	CreateCategory(ctx context.Context, name string, unitPrice decimal.Decimal) (*model.Category, error)
	UpdateCategory(ctx context.Context, id uint, name string, unitPrice decimal.Decimal) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateDish(ctx context.Context, categoryID uint, name, description string) (*model.Dish, error)
	UpdateDish(ctx context.Context, id uint, name, description string, active bool) (*model.Dish, error)
	DeleteDish(ctx context.Context, id uint) error
	ListDishes(ctx context.Context, activeOnly bool) ([]model.Dish, error)
	EffectivePrice(ctx context.Context, dishID uint) (decimal.Decimal, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	dishRepo     repository.DishRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(categoryRepo repository.CategoryRepository, dishRepo repository.DishRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		dishRepo:     dishRepo,
	}
}

// CreateCategory creates a pricing category.
func (s *catalogService) CreateCategory(ctx context.Context, name string, unitPrice decimal.Decimal) (*model.Category, error) {
	if unitPrice.IsNegative() {
		return nil, errors.ErrNegativePrice
	}
	category := &model.Category{Name: name, UnitPrice: unitPrice}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// UpdateCategory updates a category's name and unit price. Changing the price
// never touches historical order lines: those carry their own snapshot.
func (s *catalogService) UpdateCategory(ctx context.Context, id uint, name string, unitPrice decimal.Decimal) (*model.Category, error) {
	if unitPrice.IsNegative() {
		return nil, errors.ErrNegativePrice
	}
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	category.Name = name
	category.UnitPrice = unitPrice
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category that no dish references.
func (s *catalogService) DeleteCategory(ctx context.Context, id uint) error {
	count, err := s.categoryRepo.CountDishes(ctx, id)
	if err != nil {
		return fmt.Errorf("count dishes: %w", err)
	}
	if count > 0 {
		return errors.ErrCategoryInUse
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListCategories lists all categories.
func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateDish creates a dish in a category.
func (s *catalogService) CreateDish(ctx context.Context, categoryID uint, name, description string) (*model.Dish, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	dish := &model.Dish{CategoryID: categoryID, Name: name, Description: description, Active: true}
	if err := s.dishRepo.Create(ctx, dish); err != nil {
		return nil, fmt.Errorf("create dish: %w", err)
	}
	return s.dishRepo.FindByID(ctx, dish.ID)
}

// UpdateDish updates a dish's name, description and active flag.
func (s *catalogService) UpdateDish(ctx context.Context, id uint, name, description string, active bool) (*model.Dish, error) {
	dish, err := s.dishRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrDishNotFound
		}
		return nil, fmt.Errorf("find dish: %w", err)
	}
	dish.Name = name
	dish.Description = description
	dish.Active = active
	if err := s.dishRepo.Update(ctx, dish); err != nil {
		return nil, fmt.Errorf("update dish: %w", err)
	}
	return dish, nil
}

// DeleteDish removes a dish that no order line references. Dishes with order
// history must be deactivated through UpdateDish instead.
func (s *catalogService) DeleteDish(ctx context.Context, id uint) error {
	count, err := s.dishRepo.CountOrderLines(ctx, id)
	if err != nil {
		return fmt.Errorf("count order lines: %w", err)
	}
	if count > 0 {
		return errors.ErrDishInUse
	}
	if err := s.dishRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete dish: %w", err)
	}
	return nil
}

// ListDishes lists dishes, optionally only active ones.
func (s *catalogService) ListDishes(ctx context.Context, activeOnly bool) ([]model.Dish, error) {
	return s.dishRepo.List(ctx, activeOnly)
}

// EffectivePrice resolves a dish's current price from its owning category.
func (s *catalogService) EffectivePrice(ctx context.Context, dishID uint) (decimal.Decimal, error) {
	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return decimal.Zero, errors.ErrDishNotFound
		}
		return decimal.Zero, fmt.Errorf("find dish: %w", err)
	}
	return dish.EffectivePrice(), nil
}

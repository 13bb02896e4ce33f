package repository

import (
	"context"
	"errors"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "canteen/internal/errors"
	"canteen/internal/model"
)

// OrderRepository defines order and order line persistence operations.
// Create and CreateLine translate duplicate-key failures to
// apperrors.ErrDuplicateOrder, so uniqueness races surface as conflicts.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByUserAndDate(ctx context.Context, userID uint, mealDate time.Time) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	ListByDate(ctx context.Context, mealDate time.Time) ([]model.Order, error)
	CreateLine(ctx context.Context, line *model.OrderLine) error
	UpdateLine(ctx context.Context, line *model.OrderLine) error
	DeleteLine(ctx context.Context, id uint) error
	FindLine(ctx context.Context, orderID uuid.UUID, dishID uint) (*model.OrderLine, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// translateDuplicate maps duplicate-key errors from the unique indexes on
// (user_id, meal_date) and (order_id, dish_id) to the domain conflict error.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *mysqldrv.MySQLError
	if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &mysqlErr) && mysqlErr.Number == 1062) {
		return apperrors.ErrDuplicateOrder
	}
	return err
}

// Create creates a new order.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(order).Error)
}

// FindByID finds an order by ID with lines and dishes loaded.
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").Preload("Lines.Dish").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUserAndDate finds a user's order for a meal date with lines loaded.
func (r *orderRepository) FindByUserAndDate(ctx context.Context, userID uint, mealDate time.Time) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").Preload("Lines.Dish").
		Where("user_id = ? AND meal_date = ?", userID, model.DateOnly(mealDate)).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser lists a user's orders, newest meal date first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").Preload("Lines.Dish").
		Where("user_id = ?", userID).
		Order("meal_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByDate lists all orders for a meal date with lines and dishes loaded.
func (r *orderRepository) ListByDate(ctx context.Context, mealDate time.Time) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines").Preload("Lines.Dish").
		Where("meal_date = ?", model.DateOnly(mealDate)).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateLine creates a new order line.
func (r *orderRepository) CreateLine(ctx context.Context, line *model.OrderLine) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(line).Error)
}

// UpdateLine updates an existing order line.
func (r *orderRepository) UpdateLine(ctx context.Context, line *model.OrderLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// DeleteLine removes an order line.
func (r *orderRepository) DeleteLine(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.OrderLine{}, id).Error
}

// FindLine finds the line for (order, dish).
func (r *orderRepository) FindLine(ctx context.Context, orderID uuid.UUID, dishID uint) (*model.OrderLine, error) {
	var line model.OrderLine
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND dish_id = ?", orderID, dishID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// WithTransaction executes a function within a database transaction.
func (r *orderRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &orderRepository{db: tx})
	})
}

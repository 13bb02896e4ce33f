package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"canteen/internal/errors"
	"canteen/internal/model"
	"canteen/internal/repository"
)

// OrderService handles order placement and retrieval.
type OrderService interface {
	// PlaceOrUpdate applies a quantity delta for one dish to the user's order
	// for mealDate, creating the order and the line as needed. The dish price
	// is snapshotted when the line is first created and never recomputed.
	PlaceOrUpdate(ctx context.Context, userID uint, mealDate time.Time, dishID uint, quantityDelta int) (*model.Order, error)
	GetForDate(ctx context.Context, userID uint, mealDate time.Time) (*model.Order, error)
	History(ctx context.Context, userID uint) ([]model.Order, error)
}

type orderService struct {
	orderRepo    repository.OrderRepository
	menuRepo     repository.MenuRepository
	dishRepo     repository.DishRepository
	settingsRepo repository.SettingsRepository
	now          func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	dishRepo repository.DishRepository,
	settingsRepo repository.SettingsRepository,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		menuRepo:     menuRepo,
		dishRepo:     dishRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

// PlaceOrUpdate places or modifies the user's order for a meal date.
//
// Preconditions: now is strictly before the cutoff time on the day before
// mealDate, the menu for mealDate is visible, and the dish is on it. The
// resulting line quantity must stay within [1,3]; lowering an existing line
// below 1 removes the line. The mutation runs in one transaction, and the
// storage-level unique indexes turn concurrent first-insert races into
// ErrDuplicateOrder for the losing writer.
func (s *orderService) PlaceOrUpdate(ctx context.Context, userID uint, mealDate time.Time, dishID uint, quantityDelta int) (*model.Order, error) {
	now := s.now()

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	cutoff, err := settings.CutoffInstant(mealDate, now.Location())
	if err != nil {
		return nil, fmt.Errorf("resolve cutoff: %w", err)
	}
	if !now.Before(cutoff) {
		return nil, errors.ErrCutoffExceeded
	}

	menu, err := s.menuRepo.FindByDate(ctx, mealDate)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// No menu for the date: nothing is visible to order from.
			return nil, errors.ErrMenuNotVisible
		}
		return nil, fmt.Errorf("find menu: %w", err)
	}
	if !MenuVisibleAt(menu, settings, now) {
		return nil, errors.ErrMenuNotVisible
	}
	if !menu.ContainsDish(dishID) {
		return nil, errors.ErrDishNotInMenu
	}

	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrDishNotFound
		}
		return nil, fmt.Errorf("find dish: %w", err)
	}

	err = s.orderRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.OrderRepository) error {
		order, err := txRepo.FindByUserAndDate(ctx, userID, mealDate)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return fmt.Errorf("find order: %w", err)
			}
			order = &model.Order{UserID: userID, MealDate: model.DateOnly(mealDate)}
			if err := txRepo.Create(ctx, order); err != nil {
				return err
			}
		}

		line, err := txRepo.FindLine(ctx, order.ID, dishID)
		if err != nil {
			if err != gorm.ErrRecordNotFound {
				return fmt.Errorf("find order line: %w", err)
			}
			if quantityDelta < model.MinLineQuantity || quantityDelta > model.MaxLineQuantity {
				return errors.ErrQuantityOutOfRange
			}
			line = &model.OrderLine{
				OrderID:      order.ID,
				DishID:       dishID,
				Quantity:     quantityDelta,
				PriceAtOrder: dish.EffectivePrice(),
			}
			return txRepo.CreateLine(ctx, line)
		}

		newQuantity := line.Quantity + quantityDelta
		switch {
		case newQuantity > model.MaxLineQuantity:
			return errors.ErrQuantityOutOfRange
		case newQuantity < model.MinLineQuantity:
			return txRepo.DeleteLine(ctx, line.ID)
		default:
			line.Quantity = newQuantity
			return txRepo.UpdateLine(ctx, line)
		}
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByUserAndDate(ctx, userID, mealDate)
}

// GetForDate returns the user's order for a meal date with its lines.
func (s *orderService) GetForDate(ctx context.Context, userID uint, mealDate time.Time) (*model.Order, error) {
	order, err := s.orderRepo.FindByUserAndDate(ctx, userID, mealDate)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

// History returns the user's orders, newest meal date first.
func (s *orderService) History(ctx context.Context, userID uint) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

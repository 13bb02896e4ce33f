package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"canteen/internal/cache"
	"canteen/internal/errors"
	"canteen/internal/model"
	"canteen/internal/repository"
)

const menuCacheTTL = time.Minute

// MenuVisibleAt reports whether menu is visible at now. A menu is visible iff
// it is confirmed and now is at or after the configured visibility time on the
// day before the menu's date. The predicate is pure: a menu confirmed after
// its visibility time has passed becomes visible at the next evaluation.
func MenuVisibleAt(menu *model.DailyMenu, settings *model.Settings, now time.Time) bool {
	if !menu.Confirmed {
		return false
	}
	unlock, err := settings.VisibilityInstant(menu.Date, now.Location())
	if err != nil {
		return false
	}
	return !now.Before(unlock)
}

// MenuService handles daily menu operations for both the user-facing read
// path and the supplier's management path.
type MenuService interface {
	GetVisible(ctx context.Context, date time.Time) (*model.DailyMenu, error)
	ListVisible(ctx context.Context) ([]model.DailyMenu, error)
	Upsert(ctx context.Context, date time.Time, dishIDs []uint) (*model.DailyMenu, error)
	Confirm(ctx context.Context, date time.Time) (*model.DailyMenu, error)
}

type menuService struct {
	menuRepo     repository.MenuRepository
	dishRepo     repository.DishRepository
	settingsRepo repository.SettingsRepository
	cache        *cache.Client
	now          func() time.Time
}

// NewMenuService creates a new menu service.
func NewMenuService(
	menuRepo repository.MenuRepository,
	dishRepo repository.DishRepository,
	settingsRepo repository.SettingsRepository,
	cache *cache.Client,
) MenuService {
	return &menuService{
		menuRepo:     menuRepo,
		dishRepo:     dishRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		now:          time.Now,
	}
}

func menuCacheKey(date time.Time) string {
	return fmt.Sprintf("menu:%s", model.DateOnly(date).Format("2006-01-02"))
}

// GetVisible returns the menu for date if it is visible at the current time.
func (s *menuService) GetVisible(ctx context.Context, date time.Time) (*model.DailyMenu, error) {
	if data, _ := s.cache.Get(ctx, menuCacheKey(date)); data != nil {
		var cached model.DailyMenu
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	menu, err := s.menuRepo.FindByDate(ctx, date)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMenuNotFound
		}
		return nil, fmt.Errorf("find menu: %w", err)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if !MenuVisibleAt(menu, settings, s.now()) {
		return nil, errors.ErrMenuNotVisible
	}

	// Only visible menus are cached, so a stale entry can never leak an
	// unconfirmed menu. The short TTL covers configuration changes.
	if payload, err := json.Marshal(menu); err == nil {
		_ = s.cache.Set(ctx, menuCacheKey(date), payload, menuCacheTTL)
	}

	return menu, nil
}

// ListVisible lists menus from today onward that are visible now.
func (s *menuService) ListVisible(ctx context.Context) ([]model.DailyMenu, error) {
	now := s.now()
	menus, err := s.menuRepo.ListFrom(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	visible := make([]model.DailyMenu, 0, len(menus))
	for i := range menus {
		if MenuVisibleAt(&menus[i], settings, now) {
			visible = append(visible, menus[i])
		}
	}
	return visible, nil
}

// Upsert creates the menu for date or replaces its dish set. All dishes must
// exist and be active. The confirmed flag is left untouched.
func (s *menuService) Upsert(ctx context.Context, date time.Time, dishIDs []uint) (*model.DailyMenu, error) {
	dishes, err := s.dishRepo.FindByIDs(ctx, dishIDs)
	if err != nil {
		return nil, fmt.Errorf("find dishes: %w", err)
	}
	if len(dishes) != len(dishIDs) {
		return nil, errors.ErrDishNotFound
	}
	for _, d := range dishes {
		if !d.Active {
			return nil, errors.ErrDishInactive
		}
	}

	menu, err := s.menuRepo.FindByDate(ctx, date)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("find menu: %w", err)
		}
		menu = &model.DailyMenu{Date: model.DateOnly(date), Dishes: dishes}
		if err := s.menuRepo.Create(ctx, menu); err != nil {
			return nil, fmt.Errorf("create menu: %w", err)
		}
	} else {
		if err := s.menuRepo.ReplaceDishes(ctx, menu, dishes); err != nil {
			return nil, fmt.Errorf("replace menu dishes: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, menuCacheKey(date))
	return s.menuRepo.FindByDate(ctx, date)
}

// Confirm marks the menu for date as confirmed.
func (s *menuService) Confirm(ctx context.Context, date time.Time) (*model.DailyMenu, error) {
	menu, err := s.menuRepo.FindByDate(ctx, date)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrMenuNotFound
		}
		return nil, fmt.Errorf("find menu: %w", err)
	}

	if !menu.Confirmed {
		menu.Confirmed = true
		if err := s.menuRepo.Update(ctx, menu); err != nil {
			return nil, fmt.Errorf("confirm menu: %w", err)
		}
	}

	_ = s.cache.Delete(ctx, menuCacheKey(date))
	return menu, nil
}

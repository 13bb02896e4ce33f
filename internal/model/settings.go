package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// SettingsID is the fixed primary key of the single settings row.
const SettingsID = 1

const clockLayout = "15:04"

// Settings holds the process-wide ordering schedule. Exactly one row exists:
// BeforeSave coerces every write to the canonical identity, so any sequence of
// writes converges on a single persisted row.
type Settings struct {
	ID uint `json:"-" gorm:"primaryKey"`
	// OrderCutoff is the last moment ("HH:MM", on the day before the meal
	// date) a user may place or modify an order.
	OrderCutoff string `json:"order_cutoff" gorm:"size:5;not null;default:'20:00'"`
	// MenuVisibility is the time of day ("HH:MM", on the day before the menu
	// date) a confirmed menu becomes visible.
	MenuVisibility string    `json:"menu_visibility" gorm:"size:5;not null;default:'06:00'"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeSave forces the singleton identity.
func (s *Settings) BeforeSave(tx *gorm.DB) error {
	s.ID = SettingsID
	return nil
}

// Validate checks both clock fields parse as "HH:MM".
func (s *Settings) Validate() error {
	if _, err := time.Parse(clockLayout, s.OrderCutoff); err != nil {
		return fmt.Errorf("order_cutoff %q: %w", s.OrderCutoff, err)
	}
	if _, err := time.Parse(clockLayout, s.MenuVisibility); err != nil {
		return fmt.Errorf("menu_visibility %q: %w", s.MenuVisibility, err)
	}
	return nil
}

// VisibilityInstant returns the moment the menu for menuDate becomes visible:
// the configured visibility time on the day before menuDate, in loc.
func (s *Settings) VisibilityInstant(menuDate time.Time, loc *time.Location) (time.Time, error) {
	return dayBeforeAt(s.MenuVisibility, menuDate, loc)
}

// CutoffInstant returns the ordering deadline for mealDate: the configured
// cutoff time on the day before mealDate, in loc.
func (s *Settings) CutoffInstant(mealDate time.Time, loc *time.Location) (time.Time, error) {
	return dayBeforeAt(s.OrderCutoff, mealDate, loc)
}

func dayBeforeAt(clock string, date time.Time, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock %q: %w", clock, err)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc).AddDate(0, 0, -1), nil
}

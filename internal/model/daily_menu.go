package model

import "time"

// DailyMenu is the set of dishes the supplier selected for one calendar date.
// There is at most one menu per date. Visibility is not stored: it is derived
// at read time from the confirmed flag and the configured visibility time
// (see service.MenuVisibleAt), so it can never drift from configuration.
type DailyMenu struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      time.Time `json:"date" gorm:"type:date;uniqueIndex;not null"`
	Confirmed bool      `json:"confirmed" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Dishes []Dish `json:"dishes,omitempty" gorm:"many2many:daily_menu_dishes"`
}

// ContainsDish reports whether the menu offers the given dish.
// The Dishes relation must be loaded.
func (m *DailyMenu) ContainsDish(dishID uint) bool {
	for _, d := range m.Dishes {
		if d.ID == dishID {
			return true
		}
	}
	return false
}

// DateOnly truncates t to its calendar date at midnight UTC. Meal and menu
// dates are stored this way so composite unique indexes compare equal dates
// regardless of the wall clock they were created at.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

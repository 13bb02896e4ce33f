package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a pricing group for dishes (e.g. starter, first course, dessert).
// The unit price is defined at category level: every dish in the category costs
// the same.
type Category struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"uniqueIndex;size:100;not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(6,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	// Relations
	Dishes []Dish `json:"dishes,omitempty" gorm:"foreignKey:CategoryID"`
}

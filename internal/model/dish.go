package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dish is a catalog entry, past and present. A dish belongs to exactly one
// Category and inherits its price from it. Dishes are never hard-deleted once
// referenced by order history; they are deactivated instead.
type Dish struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CategoryID  uint      `json:"category_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Active      bool      `json:"active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// EffectivePrice returns the dish's current price, inherited from its category.
// The Category relation must be loaded.
func (d *Dish) EffectivePrice() decimal.Decimal {
	return d.Category.UnitPrice
}

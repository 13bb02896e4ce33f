package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// MinLineQuantity is the smallest quantity an order line may hold.
	MinLineQuantity = 1
	// MaxLineQuantity is the per-dish cap for a single order.
	MaxLineQuantity = 3
)

// Order is one user's meal selection for one date. The composite unique index
// guarantees at most one order per (user, meal date) at the storage layer;
// concurrent duplicate inserts fail with a duplicate-key error rather than
// producing a second row.
type Order struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_orders_user_meal_date"`
	MealDate  time.Time `json:"meal_date" gorm:"type:date;not null;uniqueIndex:idx_orders_user_meal_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User  User        `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Lines []OrderLine `json:"lines,omitempty" gorm:"foreignKey:OrderID"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Total sums quantity * price_at_order over all loaded lines. Because line
// prices are snapshots, the total is stable under later category price changes.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

// OrderLine is a (dish, quantity, snapshotted price) entry within an order.
// A dish appears at most once per order; repeated selection adjusts the
// quantity of the existing line.
type OrderLine struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	OrderID      uuid.UUID       `json:"order_id" gorm:"type:char(36);not null;uniqueIndex:idx_order_lines_order_dish"`
	DishID       uint            `json:"dish_id" gorm:"not null;uniqueIndex:idx_order_lines_order_dish"`
	Quantity     int             `json:"quantity" gorm:"not null"`
	PriceAtOrder decimal.Decimal `json:"price_at_order" gorm:"type:decimal(6,2);not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Dish Dish `json:"dish,omitempty" gorm:"foreignKey:DishID;constraint:OnDelete:RESTRICT"`
}

// LineTotal returns quantity * price_at_order.
func (l *OrderLine) LineTotal() decimal.Decimal {
	return l.PriceAtOrder.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

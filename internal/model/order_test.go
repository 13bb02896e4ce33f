package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderLine_LineTotal(t *testing.T) {
	line := &OrderLine{Quantity: 3, PriceAtOrder: decimal.RequireFromString("5.00")}
	assert.Equal(t, "15.00", line.LineTotal().StringFixed(2))
}

func TestOrder_Total(t *testing.T) {
	t.Run("sums all lines", func(t *testing.T) {
		order := &Order{
			Lines: []OrderLine{
				{Quantity: 2, PriceAtOrder: decimal.RequireFromString("5.00")},
				{Quantity: 1, PriceAtOrder: decimal.RequireFromString("2.50")},
				{Quantity: 3, PriceAtOrder: decimal.RequireFromString("3.00")},
			},
		}
		assert.Equal(t, "21.50", order.Total().StringFixed(2))
	})

	t.Run("no lines", func(t *testing.T) {
		order := &Order{}
		assert.True(t, order.Total().IsZero())
	})

	t.Run("snapshot keeps the total stable under price changes", func(t *testing.T) {
		dish := Dish{
			ID:       1,
			Category: Category{ID: 1, UnitPrice: decimal.RequireFromString("5.00")},
		}
		order := &Order{
			Lines: []OrderLine{
				{DishID: dish.ID, Quantity: 2, PriceAtOrder: dish.EffectivePrice()},
			},
		}
		assert.Equal(t, "10.00", order.Total().StringFixed(2))

		// The category price moves after the order was placed.
		dish.Category.UnitPrice = decimal.RequireFromString("9.99")
		assert.Equal(t, "10.00", order.Total().StringFixed(2))
	})
}

func TestOrder_BeforeCreate(t *testing.T) {
	order := &Order{}
	assert.NoError(t, order.BeforeCreate(nil))
	assert.NotEqual(t, order.ID.String(), "00000000-0000-0000-0000-000000000000")

	// An explicitly assigned ID survives.
	fixed := order.ID
	assert.NoError(t, order.BeforeCreate(nil))
	assert.Equal(t, fixed, order.ID)
}

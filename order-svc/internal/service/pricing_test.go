package service

import (
	"testing"

	"overcooked-orders/order-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	prices := map[int]decimal.Decimal{
		1: decimal.NewFromInt(10),
		2: decimal.NewFromInt(5),
		3: decimal.RequireFromString("4.50"),
	}
	lookup := func(dishID int) (decimal.Decimal, bool) {
		price, ok := prices[dishID]
		return price, ok
	}

	tests := []struct {
		name           string
		items          []domain.LineItem
		selfCollection bool
		want           string
	}{
		{
			name:           "self collection",
			items:          []domain.LineItem{{DishID: 1, Quantity: 2}, {DishID: 2, Quantity: 1}},
			selfCollection: true,
			want:           "25",
		},
		{
			name:           "delivery adds surcharge",
			items:          []domain.LineItem{{DishID: 1, Quantity: 2}, {DishID: 2, Quantity: 1}},
			selfCollection: false,
			want:           "55",
		},
		{
			name:           "fractional prices stay exact",
			items:          []domain.LineItem{{DishID: 3, Quantity: 3}},
			selfCollection: false,
			want:           "43.5",
		},
	}

	pricer := NewPricer(DefaultDeliverySurcharge)
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := pricer.ComputeTotal(testCase.items, lookup, testCase.selfCollection)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(testCase.want).Equal(got), "got %s", got)

			again, err := pricer.ComputeTotal(testCase.items, lookup, testCase.selfCollection)
			require.NoError(t, err)
			assert.True(t, got.Equal(again))
		})
	}
}

func TestComputeTotalUnknownDish(t *testing.T) {
	pricer := NewPricer(DefaultDeliverySurcharge)
	lookup := func(int) (decimal.Decimal, bool) { return decimal.Zero, false }

	_, err := pricer.ComputeTotal([]domain.LineItem{{DishID: 9, Quantity: 1}}, lookup, true)
	assert.ErrorIs(t, err, domain.ErrDishNotFound)

	dishID, ok := domain.RejectedDishID(err)
	assert.True(t, ok)
	assert.Equal(t, 9, dishID)
}

func TestReservedPrices(t *testing.T) {
	lookup := ReservedPrices([]domain.ReservedItem{
		{DishID: 1, Price: decimal.NewFromInt(10), Quantity: 2},
	})

	price, ok := lookup(1)
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(10).Equal(price))

	_, ok = lookup(2)
	assert.False(t, ok)
}

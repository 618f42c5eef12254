package service

import (
	"overcooked-orders/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

var DefaultDeliverySurcharge = decimal.NewFromInt(30)

type PriceLookup func(dishID int) (decimal.Decimal, bool)

type Pricer struct {
	Surcharge decimal.Decimal
}

func NewPricer(surcharge decimal.Decimal) Pricer {
	return Pricer{Surcharge: surcharge}
}

// ComputeTotal sums price*quantity per line item and adds the delivery
// surcharge unless the order is collected by the customer. Decimal arithmetic
// is exact, so no rounding happens here.
func (p Pricer) ComputeTotal(items []domain.LineItem, lookup PriceLookup, selfCollection bool) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		price, ok := lookup(item.DishID)
		if !ok {
			return decimal.Zero, &domain.StockError{DishID: item.DishID, Err: domain.ErrDishNotFound}
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if !selfCollection {
		total = total.Add(p.Surcharge)
	}

	return total, nil
}

// ReservedPrices resolves prices from reservation snapshots so pricing never
// reads the catalog a second time.
func ReservedPrices(reserved []domain.ReservedItem) PriceLookup {
	prices := make(map[int]decimal.Decimal, len(reserved))
	for _, item := range reserved {
		prices[item.DishID] = item.Price
	}
	return func(dishID int) (decimal.Decimal, bool) {
		price, ok := prices[dishID]
		return price, ok
	}
}

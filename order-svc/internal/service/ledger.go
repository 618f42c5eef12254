package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"overcooked-orders/order-svc/internal/domain"
)

// Ledger reserves and releases dish inventory. Atomicity per dish comes from
// the StockStore; the ledger adds all-or-nothing semantics across line items.
type Ledger struct {
	store StockStore
}

func NewLedger(store StockStore) *Ledger {
	return &Ledger{store: store}
}

func (l *Ledger) Reserve(ctx context.Context, dishID, quantity int) (domain.ReservedItem, error) {
	if quantity <= 0 || quantity > MaxLineQuantity {
		return domain.ReservedItem{}, fmt.Errorf("%w: quantity must be in [1, %d], got %d", domain.ErrValidation, MaxLineQuantity, quantity)
	}
	if err := ctx.Err(); err != nil {
		return domain.ReservedItem{}, err
	}

	// Once issued, the decrement may commit even if the caller goes away, and a
	// lost reply would leave stock that nobody releases.
	dish, err := l.store.Reserve(context.WithoutCancel(ctx), dishID, quantity)
	if err != nil {
		return domain.ReservedItem{}, asStockError(dishID, err)
	}

	return domain.ReservedItem{
		DishID:   dishID,
		Name:     dish.Name,
		Price:    dish.Price,
		Quantity: quantity,
	}, nil
}

func (l *Ledger) Release(ctx context.Context, dishID, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrValidation, quantity)
	}
	if err := l.store.Release(ctx, dishID, quantity); err != nil {
		return asStockError(dishID, err)
	}
	return nil
}

// ReserveMany reserves items one by one in the given order. On the first
// failure every reservation already granted is released, newest first, before
// a *domain.ReservationError is returned.
func (l *Ledger) ReserveMany(ctx context.Context, items []domain.LineItem) ([]domain.ReservedItem, error) {
	reserved := make([]domain.ReservedItem, 0, len(items))

	for _, item := range items {
		granted, err := l.Reserve(ctx, item.DishID, item.Quantity)
		if err != nil {
			if releaseErr := l.ReleaseAll(ctx, reserved); releaseErr != nil {
				err = errors.Join(err, releaseErr)
			}
			return nil, &domain.ReservationError{
				DishID:        item.DishID,
				Err:           err,
				ReservedSoFar: reserved,
			}
		}
		reserved = append(reserved, granted)
	}

	return reserved, nil
}

// ReleaseAll undoes reservations in reverse acquisition order. It keeps going
// after a failed release so one bad dish does not strand the others.
func (l *Ledger) ReleaseAll(ctx context.Context, reserved []domain.ReservedItem) error {
	// Compensation must finish even if the caller's request was cancelled.
	ctx = context.WithoutCancel(ctx)

	var errs []error
	for i := len(reserved) - 1; i >= 0; i-- {
		item := reserved[i]
		if err := l.Release(ctx, item.DishID, item.Quantity); err != nil {
			log.Printf("[order-svc] compensation failed: release dish %d qty %d: %v", item.DishID, item.Quantity, err)
			errs = append(errs, err)
			continue
		}
		log.Printf("[order-svc] released dish %d qty %d", item.DishID, item.Quantity)
	}
	return errors.Join(errs...)
}

func asStockError(dishID int, err error) error {
	var stockErr *domain.StockError
	if errors.As(err, &stockErr) {
		return err
	}
	return &domain.StockError{DishID: dishID, Err: err}
}

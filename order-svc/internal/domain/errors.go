package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation            = errors.New("invalid order request")
	ErrInvalidDeliveryTarget = fmt.Errorf("%w: exactly one of self-collection or location with coordinates and address is required", ErrValidation)
	ErrScheduleOutOfWindow   = errors.New("scheduled delivery is outside the eligibility window")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrDishNotFound          = errors.New("dish not found")
	ErrPersistence           = errors.New("failed to persist order")
	ErrOrderNotFound         = errors.New("order not found")
	ErrUserNotFound          = errors.New("user not found")
)

// StockError reports a reservation or release failure for one dish.
type StockError struct {
	DishID int
	Err    error
}

func (e *StockError) Error() string {
	return fmt.Sprintf("dish %d: %v", e.DishID, e.Err)
}

func (e *StockError) Unwrap() error { return e.Err }

// ReservationError is returned by a failed multi-item reservation. Every entry
// in ReservedSoFar has already been released when the caller receives it.
type ReservationError struct {
	DishID        int
	Err           error
	ReservedSoFar []ReservedItem
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("reserve dish %d: %v (released %d prior reservations)", e.DishID, e.Err, len(e.ReservedSoFar))
}

func (e *ReservationError) Unwrap() error { return e.Err }

type Stage string

const (
	StageValidating Stage = "validating"
	StageReserving  Stage = "reserving"
	StagePricing    Stage = "pricing"
	StagePersisting Stage = "persisting"
	StageCommitted  Stage = "committed"
)

// PlacementError is the rejection of one order placement attempt.
type PlacementError struct {
	Stage Stage
	Err   error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("order rejected while %s: %v", e.Stage, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// Retryable reports whether resubmitting the same request may succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrPersistence)
}

// RejectedDishID returns the dish that caused a stock rejection, if any.
func RejectedDishID(err error) (int, bool) {
	var stockErr *StockError
	if errors.As(err, &stockErr) {
		return stockErr.DishID, true
	}
	var reservationErr *ReservationError
	if errors.As(err, &reservationErr) {
		return reservationErr.DishID, true
	}
	return 0, false
}

package service

import (
	"fmt"
	"time"

	"overcooked-orders/order-svc/internal/domain"
)

const (
	EarliestDeliveryOffset = time.Hour
	LatestDeliveryOffset   = 6 * time.Hour
	DefaultDeliveryOffset  = time.Hour + time.Minute
)

// DeliveryWindow is the rolling range of acceptable scheduled-delivery times,
// expressed as offsets from the moment an order attempt starts.
type DeliveryWindow struct {
	Earliest time.Duration
	Latest   time.Duration
	Default  time.Duration
}

func DefaultDeliveryWindow() DeliveryWindow {
	return DeliveryWindow{
		Earliest: EarliestDeliveryOffset,
		Latest:   LatestDeliveryOffset,
		Default:  DefaultDeliveryOffset,
	}
}

// Validate accepts scheduled iff now+Earliest <= scheduled <= now+Latest.
func (w DeliveryWindow) Validate(scheduled, now time.Time) error {
	earliest := now.Add(w.Earliest)
	latest := now.Add(w.Latest)
	if scheduled.Before(earliest) || scheduled.After(latest) {
		return fmt.Errorf("%w: %s not in [%s, %s]", domain.ErrScheduleOutOfWindow,
			scheduled.UTC().Format(time.RFC3339), earliest.UTC().Format(time.RFC3339), latest.UTC().Format(time.RFC3339))
	}
	return nil
}

// Resolve returns the schedule to store for an attempt. An omitted request is
// assigned now+Default rather than rejected.
func (w DeliveryWindow) Resolve(requested *time.Time, now time.Time) (time.Time, error) {
	if requested == nil || requested.IsZero() {
		return now.Add(w.Default), nil
	}
	if err := w.Validate(*requested, now); err != nil {
		return time.Time{}, err
	}
	return *requested, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"overcooked-orders/order-svc/internal/domain"

	"github.com/google/uuid"
)

const publishTimeout = 5 * time.Second

// MaxLineQuantity bounds a single merged line item. It matches the width of the
// inventory column, so any larger request could never be granted.
const MaxLineQuantity = math.MaxInt32

type PlaceOrderRequest struct {
	UserID            int
	Items             []domain.LineItem
	ScheduledDelivery *time.Time
	Target            domain.DeliveryTarget
}

type OrderService struct {
	ledger    *Ledger
	orders    OrderRepository
	pricer    Pricer
	window    DeliveryWindow
	publisher OrderEventPublisher
	cache     OrderViewCache
	now       Clock
	newID     func() string

	inflight sync.WaitGroup
}

type OrderServiceOption func(*OrderService)

func WithPricer(p Pricer) OrderServiceOption {
	return func(s *OrderService) { s.pricer = p }
}

func WithDeliveryWindow(w DeliveryWindow) OrderServiceOption {
	return func(s *OrderService) { s.window = w }
}

func WithPublisher(p OrderEventPublisher) OrderServiceOption {
	return func(s *OrderService) { s.publisher = p }
}

func WithViewCache(c OrderViewCache) OrderServiceOption {
	return func(s *OrderService) { s.cache = c }
}

func WithClock(c Clock) OrderServiceOption {
	return func(s *OrderService) { s.now = c }
}

func WithIDGenerator(gen func() string) OrderServiceOption {
	return func(s *OrderService) { s.newID = gen }
}

func NewOrderService(ledger *Ledger, orders OrderRepository, opts ...OrderServiceOption) *OrderService {
	s := &OrderService{
		ledger: ledger,
		orders: orders,
		pricer: NewPricer(DefaultDeliverySurcharge),
		window: DefaultDeliveryWindow(),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder runs one placement attempt: validate, reserve, price, persist.
// Any failure after reservation releases the granted stock before returning,
// so a rejected attempt leaves no inventory decremented.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.OrderReceipt, error) {
	now := s.now()

	if req.UserID <= 0 {
		return nil, s.reject(req, domain.StageValidating, fmt.Errorf("%w: missing user", domain.ErrValidation))
	}

	items, err := MergeLineItems(req.Items)
	if err != nil {
		return nil, s.reject(req, domain.StageValidating, err)
	}

	scheduled, err := s.window.Resolve(req.ScheduledDelivery, now)
	if err != nil {
		return nil, s.reject(req, domain.StageValidating, err)
	}

	if err := ValidateDeliveryTarget(req.Target); err != nil {
		return nil, s.reject(req, domain.StageValidating, err)
	}

	reserved, err := s.ledger.ReserveMany(ctx, items)
	if err != nil {
		return nil, s.reject(req, domain.StageReserving, err)
	}

	total, err := s.pricer.ComputeTotal(items, ReservedPrices(reserved), req.Target.SelfCollection)
	if err != nil {
		return nil, s.reject(req, domain.StagePricing, s.compensate(ctx, reserved, err))
	}

	order := &domain.Order{
		ID:                s.newID(),
		UserID:            req.UserID,
		Items:             items,
		SubmittedAt:       now,
		ScheduledDelivery: scheduled,
		IsSelfCollection:  req.Target.SelfCollection,
		TotalPrice:        total,
	}
	if !req.Target.SelfCollection {
		order.Location = copyLocation(req.Target.Location)
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		persistErr := fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		return nil, s.reject(req, domain.StagePersisting, s.compensate(ctx, reserved, persistErr))
	}

	log.Printf("[order-svc] order %s %s for user %d: %d items, total %s, delivery %s",
		order.ID, domain.StageCommitted, order.UserID, len(order.Items), order.TotalPrice,
		order.ScheduledDelivery.UTC().Format(time.RFC3339))

	s.publishPlaced(ctx, order)

	return &domain.OrderReceipt{
		ID:                order.ID,
		TotalPrice:        order.TotalPrice,
		CreatedAt:         order.CreatedAt,
		ScheduledDelivery: order.ScheduledDelivery,
		IsSelfCollection:  order.IsSelfCollection,
		Location:          order.Location,
		Items:             reserved,
	}, nil
}

// SetCompleted is the only mutation allowed on a placed order.
func (s *OrderService) SetCompleted(ctx context.Context, orderID string, completed bool) error {
	if err := s.orders.SetCompleted(ctx, orderID, completed); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, orderID); err != nil {
			log.Printf("[order-svc] WARNING: failed to invalidate cached order %s: %v", orderID, err)
		}
	}
	log.Printf("[order-svc] order %s completed=%t", orderID, completed)
	return nil
}

// Wait blocks until in-flight event publications have finished.
func (s *OrderService) Wait() {
	s.inflight.Wait()
}

func (s *OrderService) compensate(ctx context.Context, reserved []domain.ReservedItem, cause error) error {
	if err := s.ledger.ReleaseAll(ctx, reserved); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (s *OrderService) reject(req PlaceOrderRequest, stage domain.Stage, err error) error {
	log.Printf("[order-svc] order rejected for user %d while %s: %v", req.UserID, stage, err)
	return &domain.PlacementError{Stage: stage, Err: err}
}

func (s *OrderService) publishPlaced(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}

	event := domain.OrderEvent{
		Type:              domain.OrderPlacedEvent,
		OrderID:           order.ID,
		UserID:            order.UserID,
		TotalPrice:        order.TotalPrice,
		ScheduledDelivery: order.ScheduledDelivery,
		IsSelfCollection:  order.IsSelfCollection,
		Timestamp:         s.now(),
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := s.publisher.PublishOrderPlaced(pubCtx, event); err != nil {
			log.Printf("[order-svc] WARNING: failed to publish %s for order %s: %v", event.Type, event.OrderID, err)
		}
	}()
}

// MergeLineItems rejects empty requests and non-positive quantities, then
// folds repeated dish ids into one item so a dish is reserved once per order.
// First-occurrence order is preserved.
func MergeLineItems(items []domain.LineItem) ([]domain.LineItem, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", domain.ErrValidation)
	}

	merged := make([]domain.LineItem, 0, len(items))
	index := make(map[int]int, len(items))
	for i, item := range items {
		if item.DishID <= 0 {
			return nil, fmt.Errorf("%w: item %d: invalid dish id %d", domain.ErrValidation, i+1, item.DishID)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d: quantity must be positive, got %d", domain.ErrValidation, i+1, item.Quantity)
		}
		if item.Quantity > MaxLineQuantity {
			return nil, fmt.Errorf("%w: item %d: quantity %d exceeds %d", domain.ErrValidation, i+1, item.Quantity, MaxLineQuantity)
		}
		if pos, ok := index[item.DishID]; ok {
			// both operands are at most MaxInt32, so the sum cannot wrap
			if merged[pos].Quantity > MaxLineQuantity-item.Quantity {
				return nil, fmt.Errorf("%w: dish %d: total quantity exceeds %d", domain.ErrValidation, item.DishID, MaxLineQuantity)
			}
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.DishID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}

func ValidateDeliveryTarget(target domain.DeliveryTarget) error {
	if target.SelfCollection {
		if target.Location != nil {
			return fmt.Errorf("%w: self-collection orders must not carry a location", domain.ErrInvalidDeliveryTarget)
		}
		return nil
	}

	loc := target.Location
	if loc == nil {
		return fmt.Errorf("%w: delivery orders need a location", domain.ErrInvalidDeliveryTarget)
	}
	if len(loc.Coordinates) != 2 {
		return fmt.Errorf("%w: coordinates must be [longitude, latitude]", domain.ErrInvalidDeliveryTarget)
	}
	lng, lat := loc.Coordinates[0], loc.Coordinates[1]
	if math.IsNaN(lng) || math.IsNaN(lat) || lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidDeliveryTarget)
	}
	if strings.TrimSpace(loc.Address) == "" {
		return fmt.Errorf("%w: address is required", domain.ErrInvalidDeliveryTarget)
	}
	return nil
}

func copyLocation(loc *domain.Location) *domain.Location {
	if loc == nil {
		return nil
	}
	return &domain.Location{
		Coordinates: append([]float64(nil), loc.Coordinates...),
		Address:     strings.TrimSpace(loc.Address),
	}
}

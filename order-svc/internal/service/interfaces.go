package service

import (
	"context"
	"time"

	"overcooked-orders/order-svc/internal/domain"
)

// StockStore is the storage primitive behind the inventory ledger. Reserve
// must check and decrement as one indivisible operation per dish.
type StockStore interface {
	Reserve(ctx context.Context, dishID, quantity int) (*domain.Dish, error)
	Release(ctx context.Context, dishID, quantity int) error
}

type DishCatalog interface {
	GetDish(ctx context.Context, dishID int) (*domain.Dish, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID int) ([]domain.Order, error)
	SetCompleted(ctx context.Context, orderID string, completed bool) error
}

type UserDirectory interface {
	ResolveUser(ctx context.Context, userID int) (*domain.User, error)
}

// OrderViewCache stores populated views. A reader takes Generation before
// loading the order and hands it to SetView, which drops the view if an
// Invalidate happened in between.
type OrderViewCache interface {
	GetView(ctx context.Context, orderID string) (*domain.OrderView, error)
	Generation(ctx context.Context, orderID string) (int64, error)
	SetView(ctx context.Context, view *domain.OrderView, generation int64) error
	Invalidate(ctx context.Context, orderID string) error
}

type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event domain.OrderEvent) error
}

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.OrderReceipt, error)
	SetCompleted(ctx context.Context, orderID string, completed bool) error
}

type OrderQueryInterface interface {
	GetByID(ctx context.Context, orderID string) (*domain.OrderView, error)
	ListByUser(ctx context.Context, userID int) ([]domain.Order, error)
	QRCode(ctx context.Context, orderID string, userID int) ([]byte, error)
}

type Clock func() time.Time

var (
	_ OrderServiceInterface = (*OrderService)(nil)
	_ OrderQueryInterface   = (*OrderQueryService)(nil)
)

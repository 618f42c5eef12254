package service

import (
	"context"
	"errors"
	"log"

	"overcooked-orders/order-svc/internal/domain"

	"golang.org/x/sync/errgroup"
)

type OrderQueryService struct {
	orders OrderRepository
	users  UserDirectory
	dishes DishCatalog
	cache  OrderViewCache
	qr     QRGenerator
}

func NewOrderQueryService(orders OrderRepository, users UserDirectory, dishes DishCatalog, cache OrderViewCache, qr QRGenerator) *OrderQueryService {
	return &OrderQueryService{
		orders: orders,
		users:  users,
		dishes: dishes,
		cache:  cache,
		qr:     qr,
	}
}

// GetByID returns the order with its user and dishes populated. User
// credentials are never part of the view. A dish or user that has since
// disappeared from the catalog is left unpopulated rather than failing the read.
func (q *OrderQueryService) GetByID(ctx context.Context, orderID string) (*domain.OrderView, error) {
	var generation int64
	cacheable := false
	if q.cache != nil {
		if view, err := q.cache.GetView(ctx, orderID); err != nil {
			log.Printf("[order-svc] WARNING: order cache read failed for %s: %v", orderID, err)
		} else if view != nil {
			return view, nil
		}

		gen, err := q.cache.Generation(ctx, orderID)
		if err != nil {
			log.Printf("[order-svc] WARNING: order cache generation read failed for %s: %v", orderID, err)
		} else {
			generation, cacheable = gen, true
		}
	}

	order, err := q.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	view := &domain.OrderView{
		ID:                order.ID,
		UserID:            order.UserID,
		Items:             make([]domain.OrderItemView, len(order.Items)),
		CreatedAt:         order.CreatedAt,
		ScheduledDelivery: order.ScheduledDelivery,
		IsSelfCollection:  order.IsSelfCollection,
		Location:          order.Location,
		TotalPrice:        order.TotalPrice,
		Completed:         order.Completed,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := q.users.ResolveUser(gctx, order.UserID)
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		summary := user.Summary()
		view.User = &summary
		return nil
	})

	for i, item := range order.Items {
		i, item := i, item
		view.Items[i] = domain.OrderItemView{DishID: item.DishID, Quantity: item.Quantity}
		g.Go(func() error {
			dish, err := q.dishes.GetDish(gctx, item.DishID)
			if errors.Is(err, domain.ErrDishNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			price := dish.Price
			view.Items[i].DishName = dish.Name
			view.Items[i].Price = &price
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if cacheable {
		if err := q.cache.SetView(ctx, view, generation); err != nil {
			log.Printf("[order-svc] WARNING: failed to cache order %s: %v", orderID, err)
		}
	}

	return view, nil
}

func (q *OrderQueryService) ListByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return q.orders.ListOrdersByUser(ctx, userID)
}

// QRCode reports another user's order as not found.
func (q *OrderQueryService) QRCode(ctx context.Context, orderID string, userID int) ([]byte, error) {
	order, err := q.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return q.qr.Generate(orderID)
}

package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"overcooked-orders/order-svc/internal/domain"
)

type dishEntry struct {
	mu   sync.Mutex
	dish domain.Dish
}

// MemoryStore keeps dishes, users and orders in process. Each dish has its own
// mutex, so reservations of different dishes never contend.
type MemoryStore struct {
	mu     sync.RWMutex
	dishes map[int]*dishEntry
	users  map[int]domain.User
	orders map[string]*domain.Order
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		dishes: make(map[int]*dishEntry),
		users:  make(map[int]domain.User),
		orders: make(map[string]*domain.Order),
		now:    time.Now,
	}
}

func (m *MemoryStore) PutDish(dish domain.Dish) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.dishes[dish.ID]; ok {
		entry.mu.Lock()
		entry.dish = dish
		entry.mu.Unlock()
		return
	}
	m.dishes[dish.ID] = &dishEntry{dish: dish}
}

func (m *MemoryStore) PutUser(user domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MemoryStore) entry(dishID int) (*dishEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.dishes[dishID]
	return entry, ok
}

func (m *MemoryStore) GetDish(_ context.Context, dishID int) (*domain.Dish, error) {
	entry, ok := m.entry(dishID)
	if !ok {
		return nil, domain.ErrDishNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	dish := entry.dish
	return &dish, nil
}

func (m *MemoryStore) Reserve(ctx context.Context, dishID, quantity int) (*domain.Dish, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entry, ok := m.entry(dishID)
	if !ok {
		return nil, &domain.StockError{DishID: dishID, Err: domain.ErrDishNotFound}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.dish.Inventory < quantity {
		return nil, &domain.StockError{DishID: dishID, Err: domain.ErrInsufficientStock}
	}
	entry.dish.Inventory -= quantity
	dish := entry.dish
	return &dish, nil
}

func (m *MemoryStore) Release(_ context.Context, dishID, quantity int) error {
	entry, ok := m.entry(dishID)
	if !ok {
		return &domain.StockError{DishID: dishID, Err: domain.ErrDishNotFound}
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.dish.Inventory += quantity
	return nil
}

func (m *MemoryStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	order.CreatedAt = m.now()
	m.orders[order.ID] = cloneOrder(order)
	return nil
}

func (m *MemoryStore) GetOrder(_ context.Context, orderID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (m *MemoryStore) ListOrdersByUser(_ context.Context, userID int) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := []domain.Order{}
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, *cloneOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (m *MemoryStore) SetCompleted(_ context.Context, orderID string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Completed = completed
	return nil
}

func (m *MemoryStore) ResolveUser(_ context.Context, userID int) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	c := *order
	c.Items = append([]domain.LineItem(nil), order.Items...)
	if order.Location != nil {
		loc := *order.Location
		loc.Coordinates = append([]float64(nil), order.Location.Coordinates...)
		c.Location = &loc
	}
	return &c
}

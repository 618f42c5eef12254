package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"overcooked-orders/order-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	// check_violation, raised by the inventory >= 0 constraint.
	pqCheckViolation = "23514"
	// numeric_value_out_of_range, raised when a quantity does not fit the column.
	pqNumericOutOfRange = "22003"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) GetDish(ctx context.Context, dishID int) (*domain.Dish, error) {
	var dish domain.Dish
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, price, inventory FROM dishes WHERE id = $1", dishID).
		Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Inventory)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

// Reserve decrements stock with a single conditional UPDATE so the check and
// the write cannot interleave with another reservation of the same dish. The
// returned dish carries the name and price read by that same statement.
func (r *PostgresRepository) Reserve(ctx context.Context, dishID, quantity int) (*domain.Dish, error) {
	var dish domain.Dish
	err := r.DB.QueryRowContext(ctx, `
		UPDATE dishes
		SET inventory = inventory - $1
		WHERE id = $2 AND inventory >= $1
		RETURNING id, name, price, inventory
	`, quantity, dishID).Scan(&dish.ID, &dish.Name, &dish.Price, &dish.Inventory)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.reserveMiss(ctx, dishID)
	}
	if err != nil {
		return nil, mapStockError(dishID, err)
	}
	return &dish, nil
}

func (r *PostgresRepository) reserveMiss(ctx context.Context, dishID int) error {
	var exists bool
	if err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM dishes WHERE id = $1)", dishID).Scan(&exists); err != nil {
		return fmt.Errorf("check dish %d: %w", dishID, err)
	}
	if !exists {
		return &domain.StockError{DishID: dishID, Err: domain.ErrDishNotFound}
	}
	return &domain.StockError{DishID: dishID, Err: domain.ErrInsufficientStock}
}

func (r *PostgresRepository) Release(ctx context.Context, dishID, quantity int) error {
	result, err := r.DB.ExecContext(ctx,
		"UPDATE dishes SET inventory = inventory + $1 WHERE id = $2", quantity, dishID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return &domain.StockError{DishID: dishID, Err: domain.ErrDishNotFound}
	}
	return nil
}

func mapStockError(dishID int, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqCheckViolation:
			return &domain.StockError{DishID: dishID, Err: domain.ErrInsufficientStock}
		case pqNumericOutOfRange:
			return &domain.StockError{DishID: dishID, Err: fmt.Errorf("%w: quantity out of range", domain.ErrValidation)}
		}
	}
	return err
}

// CreateOrder stores the order and its line-item quantities in one
// transaction. created_at is assigned by the database at insert time.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var lng, lat sql.NullFloat64
	var address sql.NullString
	if order.Location != nil {
		lng = sql.NullFloat64{Float64: order.Location.Coordinates[0], Valid: true}
		lat = sql.NullFloat64{Float64: order.Location.Coordinates[1], Valid: true}
		address = sql.NullString{String: order.Location.Address, Valid: true}
	}

	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, user_id, submitted_at, scheduled_delivery, is_self_collection,
			longitude, latitude, address, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, order.ID, order.UserID, order.SubmittedAt, order.ScheduledDelivery, order.IsSelfCollection,
		lng, lat, address, order.TotalPrice).Scan(&order.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	positions := make([]int64, len(order.Items))
	dishIDs := make([]int64, len(order.Items))
	quantities := make([]int64, len(order.Items))
	for i, item := range order.Items {
		positions[i] = int64(i)
		dishIDs[i] = int64(item.DishID)
		quantities[i] = int64(item.Quantity)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO order_items (order_id, position, dish_id, quantity)
		SELECT $1, t.position, t.dish_id, t.quantity
		FROM unnest($2::int[], $3::int[], $4::int[]) AS t(position, dish_id, quantity)
	`, order.ID, pq.Array(positions), pq.Array(dishIDs), pq.Array(quantities)); err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}

	return tx.Commit()
}

const orderColumns = `id, user_id, submitted_at, created_at, scheduled_delivery, is_self_collection,
	longitude, latitude, address, total_price, completed`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var lng, lat sql.NullFloat64
	var address sql.NullString
	if err := row.Scan(&order.ID, &order.UserID, &order.SubmittedAt, &order.CreatedAt, &order.ScheduledDelivery,
		&order.IsSelfCollection, &lng, &lat, &address, &order.TotalPrice, &order.Completed); err != nil {
		return nil, err
	}
	if lng.Valid && lat.Valid {
		order.Location = &domain.Location{
			Coordinates: []float64{lng.Float64, lat.Float64},
			Address:     address.String,
		}
	}
	return &order, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, domain.ErrOrderNotFound
	}

	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *PostgresRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.LineItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, dish_id, quantity
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY order_id, position
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[string][]domain.LineItem, len(orderIDs))
	for rows.Next() {
		var orderID string
		var item domain.LineItem
		if err := rows.Scan(&orderID, &item.DishID, &item.Quantity); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) SetCompleted(ctx context.Context, orderID string, completed bool) error {
	if _, err := uuid.Parse(orderID); err != nil {
		return domain.ErrOrderNotFound
	}
	result, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET completed = $1 WHERE id = $2", completed, orderID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *PostgresRepository) ResolveUser(ctx context.Context, userID int) (*domain.User, error) {
	var user domain.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, role, password_hash, COALESCE(password_reset_token, '')
		FROM users WHERE id = $1
	`, userID).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.PasswordHash, &user.PasswordResetToken)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL DEFAULT 'user',
			password_hash TEXT NOT NULL,
			password_reset_token TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS dishes (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
			inventory INTEGER NOT NULL DEFAULT 0 CHECK (inventory >= 0)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			submitted_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			scheduled_delivery TIMESTAMPTZ NOT NULL,
			is_self_collection BOOLEAN NOT NULL,
			longitude DOUBLE PRECISION,
			latitude DOUBLE PRECISION,
			address TEXT,
			total_price NUMERIC(10, 2) NOT NULL CHECK (total_price >= 0),
			completed BOOLEAN NOT NULL DEFAULT false,
			CHECK (is_self_collection = (address IS NULL AND longitude IS NULL AND latitude IS NULL))
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			dish_id INTEGER NOT NULL REFERENCES dishes(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			PRIMARY KEY (order_id, position)
		)`,
		"CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id, created_at DESC)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"overcooked-orders/order-svc/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrderID = "3f1c9a52-7c1e-4a55-9d43-0b6f8f2a1e10"

func newMockRepository(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresReserve(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "granted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE dishes SET inventory = inventory - \$1 WHERE id = \$2 AND inventory >= \$1`).
					WithArgs(3, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "inventory"}).AddRow(1, "Pizza", "10.00", 7))
			},
		},
		{
			name: "insufficient stock",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE dishes SET inventory = inventory - \$1`).
					WithArgs(3, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "inventory"}))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: domain.ErrInsufficientStock,
		},
		{
			name: "unknown dish",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE dishes SET inventory = inventory - \$1`).
					WithArgs(3, 1).
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "inventory"}))
				mock.ExpectQuery(`SELECT EXISTS`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: domain.ErrDishNotFound,
		},
		{
			name: "quantity out of column range",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE dishes SET inventory = inventory - \$1`).
					WithArgs(3, 1).
					WillReturnError(&pq.Error{Code: pqNumericOutOfRange})
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "check constraint",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE dishes SET inventory = inventory - \$1`).
					WithArgs(3, 1).
					WillReturnError(&pq.Error{Code: pqCheckViolation})
			},
			wantErr: domain.ErrInsufficientStock,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			testCase.setup(mock)

			dish, err := repo.Reserve(context.Background(), 1, 3)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				dishID, ok := domain.RejectedDishID(err)
				assert.True(t, ok)
				assert.Equal(t, 1, dishID)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Pizza", dish.Name)
				assert.True(t, decimal.NewFromInt(10).Equal(dish.Price))
				assert.Equal(t, 7, dish.Inventory)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRelease(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE dishes SET inventory = inventory \+ \$1 WHERE id = \$2`).
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE dishes SET inventory = inventory \+ \$1 WHERE id = \$2`).
		WithArgs(2, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Release(context.Background(), 1, 2))
	assert.ErrorIs(t, repo.Release(context.Background(), 99, 2), domain.ErrDishNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetDish(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT id, name, price, inventory FROM dishes WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "inventory"}).AddRow(1, "Pizza", "10.50", 4))
	mock.ExpectQuery(`SELECT id, name, price, inventory FROM dishes WHERE id = \$1`).
		WithArgs(2).
		WillReturnError(sql.ErrNoRows)

	dish, err := repo.GetDish(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("10.5").Equal(dish.Price))

	_, err = repo.GetDish(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrDishNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateOrder(t *testing.T) {
	repo, mock := newMockRepository(t)
	createdAt := time.Date(2024, time.March, 1, 12, 0, 1, 0, time.UTC)

	order := &domain.Order{
		ID:                testOrderID,
		UserID:            7,
		Items:             []domain.LineItem{{DishID: 1, Quantity: 2}, {DishID: 2, Quantity: 1}},
		SubmittedAt:       createdAt.Add(-time.Second),
		ScheduledDelivery: createdAt.Add(time.Hour),
		Location:          &domain.Location{Coordinates: []float64{13.4, 52.52}, Address: "1 Main St"},
		TotalPrice:        decimal.NewFromInt(55),
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(testOrderID, 7, sqlmock.AnyArg(), sqlmock.AnyArg(), false, 13.4, 52.52, "1 Main St", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(testOrderID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateOrder(context.Background(), order))
	assert.Equal(t, createdAt, order.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateOrderRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.CreateOrder(context.Background(), &domain.Order{
		ID:               testOrderID,
		UserID:           7,
		Items:            []domain.LineItem{{DishID: 1, Quantity: 1}},
		IsSelfCollection: true,
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetOrder(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "user_id", "submitted_at", "created_at", "scheduled_delivery", "is_self_collection",
		"longitude", "latitude", "address", "total_price", "completed"}

	tests := []struct {
		name    string
		orderID string
		setup   func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:    "found",
			orderID: testOrderID,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM orders WHERE id = \$1`).
					WithArgs(testOrderID).
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow(testOrderID, 7, now, now, now.Add(2*time.Hour), false, 13.4, 52.52, "1 Main St", "55", true))
				mock.ExpectQuery(`FROM order_items`).
					WithArgs(sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"order_id", "dish_id", "quantity"}).
						AddRow(testOrderID, 1, 2).
						AddRow(testOrderID, 2, 1))
			},
		},
		{
			name:    "missing",
			orderID: testOrderID,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM orders WHERE id = \$1`).
					WithArgs(testOrderID).
					WillReturnRows(sqlmock.NewRows(columns))
			},
			wantErr: domain.ErrOrderNotFound,
		},
		{
			name:    "malformed id",
			orderID: "not-a-uuid",
			setup:   func(sqlmock.Sqlmock) {},
			wantErr: domain.ErrOrderNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			testCase.setup(mock)

			order, err := repo.GetOrder(context.Background(), testCase.orderID)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 7, order.UserID)
				assert.True(t, order.Completed)
				assert.True(t, decimal.NewFromInt(55).Equal(order.TotalPrice))
				require.NotNil(t, order.Location)
				assert.Equal(t, []float64{13.4, 52.52}, order.Location.Coordinates)
				assert.Equal(t, []domain.LineItem{{DishID: 1, Quantity: 2}, {DishID: 2, Quantity: 1}}, order.Items)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresListOrdersByUser(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "user_id", "submitted_at", "created_at", "scheduled_delivery", "is_self_collection",
		"longitude", "latitude", "address", "total_price", "completed"}

	mock.ExpectQuery(`FROM orders WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(testOrderID, 7, now, now, now.Add(time.Hour), true, nil, nil, nil, "25", false))
	mock.ExpectQuery(`FROM order_items`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "dish_id", "quantity"}).AddRow(testOrderID, 1, 2))
	mock.ExpectQuery(`FROM orders WHERE user_id = \$1`).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows(columns))

	orders, err := repo.ListOrdersByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Nil(t, orders[0].Location)
	assert.True(t, orders[0].IsSelfCollection)
	assert.Len(t, orders[0].Items, 1)

	orders, err = repo.ListOrdersByUser(context.Background(), 8)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSetCompleted(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE orders SET completed = \$1 WHERE id = \$2`).
		WithArgs(true, testOrderID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE orders SET completed = \$1 WHERE id = \$2`).
		WithArgs(false, testOrderID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.SetCompleted(context.Background(), testOrderID, true))
	assert.ErrorIs(t, repo.SetCompleted(context.Background(), testOrderID, false), domain.ErrOrderNotFound)
	assert.ErrorIs(t, repo.SetCompleted(context.Background(), "42", true), domain.ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresResolveUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role", "password_hash", "password_reset_token"}).
			AddRow(7, "Ann", "ann@example.com", "user", "hash", ""))
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(8).
		WillReturnError(sql.ErrNoRows)

	user, err := repo.ResolveUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, domain.UserSummary{ID: 7, Name: "Ann", Email: "ann@example.com"}, user.Summary())

	_, err = repo.ResolveUser(context.Background(), 8)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEnsureSchema(t *testing.T) {
	repo, mock := newMockRepository(t)

	for _, table := range []string{"users", "dishes", "orders", "order_items"} {
		mock.ExpectExec(`CREATE TABLE IF NOT EXISTS ` + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS orders_user_id_idx`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

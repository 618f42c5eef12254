package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Dish struct {
	ID        int             `json:"dish_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Inventory int             `json:"inventory"`
}

type LineItem struct {
	DishID   int `json:"dish_id"`
	Quantity int `json:"quantity"`
}

// ReservedItem is a granted reservation together with the dish snapshot read
// in the same storage operation.
type ReservedItem struct {
	DishID   int             `json:"dish_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (r ReservedItem) LineItem() LineItem {
	return LineItem{DishID: r.DishID, Quantity: r.Quantity}
}

// Location is a GeoJSON-style point: Coordinates holds [longitude, latitude].
type Location struct {
	Coordinates []float64 `json:"coordinates"`
	Address     string    `json:"address"`
}

type DeliveryTarget struct {
	SelfCollection bool      `json:"is_self_collection"`
	Location       *Location `json:"location,omitempty"`
}

type Order struct {
	ID                string          `json:"id"`
	UserID            int             `json:"user_id"`
	Items             []LineItem      `json:"items"`
	SubmittedAt       time.Time       `json:"-"`
	CreatedAt         time.Time       `json:"created_at"`
	ScheduledDelivery time.Time       `json:"scheduled_delivery"`
	IsSelfCollection  bool            `json:"is_self_collection"`
	Location          *Location       `json:"location,omitempty"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	Completed         bool            `json:"completed"`
}

// OrderReceipt is returned to the caller of a successful placement.
type OrderReceipt struct {
	ID                string          `json:"id"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	CreatedAt         time.Time       `json:"created_at"`
	ScheduledDelivery time.Time       `json:"scheduled_delivery"`
	IsSelfCollection  bool            `json:"is_self_collection"`
	Location          *Location       `json:"location,omitempty"`
	Items             []ReservedItem  `json:"items"`
}

// User is owned by the identity collaborator. Credential fields never leave
// this process; use Summary for anything returned to callers.
type User struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"-"`
	PasswordHash       string `json:"-"`
	PasswordResetToken string `json:"-"`
}

type UserSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

type OrderItemView struct {
	DishID   int              `json:"dish_id"`
	DishName string           `json:"dish_name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity int              `json:"quantity"`
}

// OrderView is the read-side projection served by the query gateway.
type OrderView struct {
	ID                string          `json:"id"`
	UserID            int             `json:"user_id"`
	User              *UserSummary    `json:"user"`
	Items             []OrderItemView `json:"items"`
	CreatedAt         time.Time       `json:"created_at"`
	ScheduledDelivery time.Time       `json:"scheduled_delivery"`
	IsSelfCollection  bool            `json:"is_self_collection"`
	Location          *Location       `json:"location,omitempty"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	Completed         bool            `json:"completed"`
}

const OrderPlacedEvent = "order_placed"

type OrderEvent struct {
	Type              string          `json:"type"`
	OrderID           string          `json:"order_id"`
	UserID            int             `json:"user_id"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	ScheduledDelivery time.Time       `json:"scheduled_delivery"`
	IsSelfCollection  bool            `json:"is_self_collection"`
	Timestamp         time.Time       `json:"timestamp"`
}

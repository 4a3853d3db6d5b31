package domain

import "time"

// OrderStatus enumerates order lifecycle states.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Order is one customer purchase. Contact fields are what the messaging
// provider needs to reach the customer.
type Order struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Status        OrderStatus
	TotalCents    int64
	Currency      string
	Locale        string
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem ties a product's chosen layout to the customer photos that
// fill its print slots. SlotImages maps slot id to the storage key of a
// validated upload; slots absent from the map render as bare base.
type OrderItem struct {
	ID             string
	OrderID        string
	ProductID      string
	LayoutID       string
	Quantity       int
	UnitPriceCents int64
	SlotImages     map[string]string
	CreatedAt      time.Time
}

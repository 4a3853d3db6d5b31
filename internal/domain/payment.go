package domain

import "time"

// PaymentStatus enumerates payment lifecycle states as reported by the
// gateway.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
	PaymentStatusExpired PaymentStatus = "EXPIRED"
)

// Payment records one gateway charge attached to an order. Payload keeps
// the raw webhook body for operator debugging; the gateway protocol is
// otherwise opaque to this service.
type Payment struct {
	ID          string
	OrderID     string
	Provider    string
	ProviderRef string
	Status      PaymentStatus
	AmountCents int64
	Currency    string
	Payload     []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

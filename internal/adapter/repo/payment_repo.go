package repo

import (
	"context"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// PaymentRepositoryPG implements domain.PaymentRepository using PostgreSQL.
type PaymentRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewPaymentRepository constructs a new payment repository instance.
func NewPaymentRepository(sql infra.SQLExecutor) *PaymentRepositoryPG {
	return &PaymentRepositoryPG{sql: sql}
}

// Create records a freshly created gateway charge.
func (r *PaymentRepositoryPG) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	payload := payment.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertPayment,
		payment.ID, payment.OrderID, payment.Provider, payment.ProviderRef,
		payment.AmountCents, payment.Currency, payload)
	return err
}

// GetByProviderRef finds the payment a webhook notification refers to.
func (r *PaymentRepositoryPG) GetByProviderRef(ctx context.Context, providerRef string) (*domain.Payment, error) {
	var p domain.Payment
	row := r.sql.QueryRow(ctx, sqlinline.QSelectPaymentByProviderRef, providerRef)
	if err := row.Scan(&p.ID, &p.OrderID, &p.Provider, &p.ProviderRef, &p.Status,
		&p.AmountCents, &p.Currency, &p.Payload, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateStatus records the gateway's verdict along with the raw payload.
func (r *PaymentRepositoryPG) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, payload []byte) error {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	_, err := r.sql.Exec(ctx, sqlinline.QUpdatePaymentStatus, id, string(status), payload)
	return err
}

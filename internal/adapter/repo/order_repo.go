package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// OrderRepositoryPG implements domain.OrderRepository using PostgreSQL.
type OrderRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewOrderRepository constructs a new order repository instance.
func NewOrderRepository(sql infra.SQLExecutor) *OrderRepositoryPG {
	return &OrderRepositoryPG{sql: sql}
}

// Create persists an order and its items.
func (r *OrderRepositoryPG) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if _, err := r.sql.Exec(ctx, sqlinline.QInsertOrder,
		order.ID, order.CustomerName, order.CustomerEmail, order.CustomerPhone,
		order.TotalCents, order.Currency, order.Locale); err != nil {
		return err
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		item.OrderID = order.ID
		slotImages, err := json.Marshal(item.SlotImages)
		if err != nil {
			return fmt.Errorf("encode slot images: %w", err)
		}
		if _, err := r.sql.Exec(ctx, sqlinline.QInsertOrderItem,
			item.ID, order.ID, item.ProductID, item.LayoutID,
			item.Quantity, item.UnitPriceCents, slotImages); err != nil {
			return err
		}
	}
	return nil
}

// GetByID returns one order with its items.
func (r *OrderRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	row := r.sql.QueryRow(ctx, sqlinline.QSelectOrderByID, id)
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.Status, &o.TotalCents, &o.Currency, &o.Locale, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.sql.Query(ctx, sqlinline.QSelectOrderItems, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		var slotImages []byte
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.LayoutID,
			&item.Quantity, &item.UnitPriceCents, &slotImages, &item.CreatedAt); err != nil {
			return nil, err
		}
		if len(slotImages) > 0 {
			if err := json.Unmarshal(slotImages, &item.SlotImages); err != nil {
				return nil, fmt.Errorf("decode slot images for item %s: %w", item.ID, err)
			}
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus transitions an order's lifecycle state.
func (r *OrderRepositoryPG) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	_, err := r.sql.Exec(ctx, sqlinline.QUpdateOrderStatus, orderID, string(status))
	return err
}

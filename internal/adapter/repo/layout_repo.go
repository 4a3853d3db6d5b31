package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// LayoutRepositoryPG implements domain.LayoutRepository using PostgreSQL.
type LayoutRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewLayoutRepository constructs a new layout repository instance.
func NewLayoutRepository(sql infra.SQLExecutor) *LayoutRepositoryPG {
	return &LayoutRepositoryPG{sql: sql}
}

// Create persists a layout after validating its slot geometry. Geometry
// violations surface here, at authoring time, never during composition.
func (r *LayoutRepositoryPG) Create(ctx context.Context, layout *domain.Layout) error {
	slotsJSON, err := domain.EncodeSlots(layout.Slots)
	if err != nil {
		return err
	}
	if layout.ID == "" {
		layout.ID = uuid.NewString()
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertLayout,
		layout.ID, layout.ProductID, layout.Name, layout.BaseImageKey,
		layout.BaseWidth, layout.BaseHeight, slotsJSON)
	return row.Scan(&layout.ID)
}

// GetByID returns one layout with its decoded slots.
func (r *LayoutRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Layout, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectLayoutByID, id)
	layout, err := scanLayout(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return layout, nil
}

// ListByProduct returns the active layouts selectable for a product.
func (r *LayoutRepositoryPG) ListByProduct(ctx context.Context, productID string) ([]domain.Layout, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListLayoutsByProduct, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var layouts []domain.Layout
	for rows.Next() {
		layout, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, *layout)
	}
	return layouts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLayout(row rowScanner) (*domain.Layout, error) {
	var layout domain.Layout
	var slotsJSON []byte
	if err := row.Scan(&layout.ID, &layout.ProductID, &layout.Name, &layout.BaseImageKey,
		&layout.BaseWidth, &layout.BaseHeight, &slotsJSON, &layout.Active,
		&layout.CreatedAt, &layout.UpdatedAt); err != nil {
		return nil, err
	}
	slots, err := domain.DecodeSlots(slotsJSON)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", layout.ID, err)
	}
	layout.Slots = slots
	return &layout, nil
}

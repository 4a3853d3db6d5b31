package repo

import (
	"context"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// ComposedAssetRepositoryPG implements domain.ComposedAssetRepository using PostgreSQL.
type ComposedAssetRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewComposedAssetRepository constructs a new composed asset repository instance.
func NewComposedAssetRepository(sql infra.SQLExecutor) *ComposedAssetRepositoryPG {
	return &ComposedAssetRepositoryPG{sql: sql}
}

// Save records one worker-produced artifact.
func (r *ComposedAssetRepositoryPG) Save(ctx context.Context, asset *domain.ComposedAsset) error {
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	_, err := r.sql.Exec(ctx, sqlinline.QInsertComposedAsset,
		asset.ID, asset.OrderItemID, string(asset.Kind), asset.StorageKey,
		asset.MIME, asset.Bytes, asset.Width, asset.Height)
	return err
}

// ListByOrderItem returns all artifacts rendered for an order item.
func (r *ComposedAssetRepositoryPG) ListByOrderItem(ctx context.Context, orderItemID string) ([]domain.ComposedAsset, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QSelectComposedAssets, orderItemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.ComposedAsset
	for rows.Next() {
		var a domain.ComposedAsset
		if err := rows.Scan(&a.ID, &a.OrderItemID, &a.Kind, &a.StorageKey,
			&a.MIME, &a.Bytes, &a.Width, &a.Height, &a.CreatedAt); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

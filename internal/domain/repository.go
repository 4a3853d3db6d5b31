package domain

import "context"

// ProductRepository defines catalog read access.
type ProductRepository interface {
	ListActive(ctx context.Context, limit, offset int) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// LayoutRepository handles persistence for layouts and their slots.
type LayoutRepository interface {
	Create(ctx context.Context, layout *Layout) error
	GetByID(ctx context.Context, id string) (*Layout, error)
	ListByProduct(ctx context.Context, productID string) ([]Layout, error)
}

// UploadRepository records validated customer uploads.
type UploadRepository interface {
	Create(ctx context.Context, upload *Upload) error
	GetByID(ctx context.Context, id string) (*Upload, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]Upload, error)
}

// OrderRepository handles order and order item persistence.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status OrderStatus) error
}

// PaymentRepository records gateway charges and webhook outcomes.
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByProviderRef(ctx context.Context, providerRef string) (*Payment, error)
	UpdateStatus(ctx context.Context, id string, status PaymentStatus, payload []byte) error
}

// ComposedAssetRepository records artifacts produced by the worker.
type ComposedAssetRepository interface {
	Save(ctx context.Context, asset *ComposedAsset) error
	ListByOrderItem(ctx context.Context, orderItemID string) ([]ComposedAsset, error)
}

package handlers

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"server/internal/compose"
	"server/internal/domain"
	"server/internal/infra"
	"server/internal/storage"
)

type stubLayouts struct {
	layouts map[string]*domain.Layout
	created *domain.Layout
}

func (s *stubLayouts) Create(ctx context.Context, layout *domain.Layout) error {
	layout.ID = "layout-created"
	s.created = layout
	return nil
}

func (s *stubLayouts) GetByID(ctx context.Context, id string) (*domain.Layout, error) {
	if l, ok := s.layouts[id]; ok {
		return l, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubLayouts) ListByProduct(ctx context.Context, productID string) ([]domain.Layout, error) {
	var out []domain.Layout
	for _, l := range s.layouts {
		if l.ProductID == productID {
			out = append(out, *l)
		}
	}
	return out, nil
}

type stubUploads struct {
	uploads map[string]domain.Upload
	created *domain.Upload
}

func (s *stubUploads) Create(ctx context.Context, upload *domain.Upload) error {
	s.created = upload
	return nil
}

func (s *stubUploads) GetByID(ctx context.Context, id string) (*domain.Upload, error) {
	if u, ok := s.uploads[id]; ok {
		return &u, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubUploads) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Upload, error) {
	out := make(map[string]domain.Upload, len(ids))
	for _, id := range ids {
		if u, ok := s.uploads[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type stubProducts struct {
	products map[string]*domain.Product
}

func (s *stubProducts) ListActive(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProducts) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if p, ok := s.products[slug]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}

type stubOrders struct {
	orders  map[string]*domain.Order
	created *domain.Order
	status  map[string]domain.OrderStatus
}

func (s *stubOrders) Create(ctx context.Context, order *domain.Order) error {
	order.ID = "order-created"
	for i := range order.Items {
		order.Items[i].ID = "item-" + order.Items[i].ProductID
	}
	s.created = order
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if o, ok := s.orders[id]; ok {
		return o, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrders) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	s.status[orderID] = status
	return nil
}

type stubPayments struct {
	payments map[string]*domain.Payment
	created  *domain.Payment
	updated  map[string]domain.PaymentStatus
}

func (s *stubPayments) Create(ctx context.Context, payment *domain.Payment) error {
	payment.ID = "payment-created"
	s.created = payment
	s.payments[payment.ProviderRef] = payment
	return nil
}

func (s *stubPayments) GetByProviderRef(ctx context.Context, providerRef string) (*domain.Payment, error) {
	if p, ok := s.payments[providerRef]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubPayments) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, payload []byte) error {
	s.updated[id] = status
	return nil
}

// fakeSQL records Exec calls; handlers under test only enqueue jobs.
type fakeSQL struct {
	execQueries []string
	execArgs    [][]any
}

func (f *fakeSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	f.execQueries = append(f.execQueries, query)
	f.execArgs = append(f.execArgs, args)
	return pgconn.CommandTag{}, nil
}

func (f *fakeSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return errRow{}
}

func (f *fakeSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("queries not supported in fake sql")
}

type errRow struct{}

func (errRow) Scan(dest ...any) error { return pgx.ErrNoRows }

func newTestApp(t *testing.T) (*App, *storage.FileStore, *stubLayouts, *stubUploads) {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore returned error: %v", err)
	}
	layouts := &stubLayouts{layouts: map[string]*domain.Layout{}}
	uploads := &stubUploads{uploads: map[string]domain.Upload{}}
	app := &App{
		Cfg: &infra.Config{
			UploadMaxSizeMB: 20,
			PreviewMaxWidth: 480,
			WorkspacePath:   t.TempDir(),
		},
		Logger:  zerolog.Nop(),
		Engine:  compose.NewEngine(zerolog.Nop()),
		Store:   store,
		Layouts: layouts,
		Uploads: uploads,
	}
	return app, store, layouts, uploads
}

func solidPNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(w, h, c), imaging.PNG); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

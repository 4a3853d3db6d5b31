package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/compose"
	"server/internal/domain"
	"server/internal/infra"
	"server/internal/providers/payment"
	"server/internal/storage"
)

// App bundles the dependencies every handler needs.
type App struct {
	Cfg      *infra.Config
	Logger   infra.Logger
	SQL      infra.SQLExecutor
	Engine   *compose.Engine
	Store    *storage.FileStore
	Gateway  *payment.Client
	Products domain.ProductRepository
	Layouts  domain.LayoutRepository
	Uploads  domain.UploadRepository
	Orders   domain.OrderRepository
	Payments domain.PaymentRepository
	Assets   domain.ComposedAssetRepository
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, message string) {
	a.json(w, code, map[string]string{"error": slug, "message": message})
}

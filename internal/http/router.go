package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// NewRouter assembles the public API surface. Customer endpoints are
// unauthenticated; authoring endpoints sit behind the admin JWT.
func NewRouter(app *handlers.App, countryLookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger(app.Logger))
	r.Use(middleware.CORS(app.Cfg.CORSAllowedOrigins))
	r.Use(middleware.Locale("id", countryLookup))
	r.Use(middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute))

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/categories", app.CategoriesList)
		r.Get("/products", app.ProductsList)
		r.Get("/products/{slug}", app.ProductGet)
		r.Get("/products/{slug}/layouts", app.ProductLayoutsList)
		r.Get("/layouts/{id}", app.LayoutGet)

		r.Post("/uploads", app.UploadCreate)
		r.Post("/previews", app.PreviewCreate)

		r.Post("/orders", app.OrderCreate)
		r.Get("/orders/{id}", app.OrderGet)
		r.Post("/orders/{id}/checkout", app.OrderCheckout)
		r.Get("/orders/{id}/tracking.png", app.OrderTrackingQR)

		r.Post("/payments/webhook", app.PaymentWebhook)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AuthAdmin(app.Cfg.AdminJWTSecret))
			r.Post("/layouts", app.LayoutCreate)
		})
	})

	r.Get("/static/*", app.StaticAsset)

	return r
}

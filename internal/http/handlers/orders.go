package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/providers/notify"
)

type orderItemRequest struct {
	ProductSlug string            `json:"product_slug"`
	LayoutID    string            `json:"layout_id"`
	Quantity    int               `json:"quantity"`
	SlotImages  map[string]string `json:"slot_images"`
}

type orderCreateRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	Items         []orderItemRequest `json:"items"`
}

type orderResponse struct {
	ID         string             `json:"id"`
	Status     domain.OrderStatus `json:"status"`
	TotalCents int64              `json:"total_cents"`
	Currency   string             `json:"currency"`
	Items      []map[string]any   `json:"items"`
}

// OrderCreate takes the customer's cart: per item a product, a layout and
// the uploads filling that layout's slots. Every referenced upload must
// already have passed the image validator via the upload endpoint.
func (a *App) OrderCreate(w http.ResponseWriter, r *http.Request) {
	var req orderCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.CustomerName == "" || (req.CustomerEmail == "" && req.CustomerPhone == "") {
		a.error(w, http.StatusBadRequest, "bad_request", "customer name and a contact are required")
		return
	}
	if len(req.Items) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "at least one item is required")
		return
	}

	order := &domain.Order{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Status:        domain.OrderStatusPending,
		Locale:        middleware.LocaleFromContext(r.Context()),
	}

	for _, item := range req.Items {
		product, err := a.Products.GetBySlug(r.Context(), item.ProductSlug)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "unknown product "+item.ProductSlug)
			return
		}
		layout, err := a.Layouts.GetByID(r.Context(), item.LayoutID)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "unknown layout "+item.LayoutID)
			return
		}
		if layout.ProductID != product.ID {
			a.error(w, http.StatusBadRequest, "bad_request", "layout does not belong to product")
			return
		}
		slotImages, err := a.resolveSlotImages(r, layout, item.SlotImages)
		if err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      product.ID,
			LayoutID:       layout.ID,
			Quantity:       qty,
			UnitPriceCents: product.PriceCents,
			SlotImages:     slotImages,
		})
		order.TotalCents += product.PriceCents * int64(qty)
		if order.Currency == "" {
			order.Currency = product.Currency
		}
	}

	if err := a.Orders.Create(r.Context(), order); err != nil {
		a.Logger.Error().Err(err).Msg("orders: create failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create order")
		return
	}
	a.json(w, http.StatusCreated, a.toOrderResponse(order))
}

// resolveSlotImages turns slot id -> upload id into slot id -> storage
// key, the form the render worker consumes.
func (a *App) resolveSlotImages(r *http.Request, layout *domain.Layout, refs map[string]string) (map[string]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	slotIDs := make(map[string]struct{}, len(layout.Slots))
	for _, s := range layout.Slots {
		slotIDs[s.ID] = struct{}{}
	}
	uploadIDs := make([]string, 0, len(refs))
	for slotID, uploadID := range refs {
		if _, ok := slotIDs[slotID]; !ok {
			return nil, errors.New("unknown slot id " + slotID)
		}
		uploadIDs = append(uploadIDs, uploadID)
	}
	uploads, err := a.Uploads.GetByIDs(r.Context(), uploadIDs)
	if err != nil {
		return nil, errors.New("failed to load uploads")
	}
	out := make(map[string]string, len(refs))
	for slotID, uploadID := range refs {
		upload, ok := uploads[uploadID]
		if !ok {
			return nil, errors.New("unknown upload id " + uploadID)
		}
		out[slotID] = upload.StorageKey
	}
	return out, nil
}

func (a *App) toOrderResponse(order *domain.Order) orderResponse {
	resp := orderResponse{
		ID:         order.ID,
		Status:     order.Status,
		TotalCents: order.TotalCents,
		Currency:   order.Currency,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, map[string]any{
			"id":               item.ID,
			"product_id":       item.ProductID,
			"layout_id":        item.LayoutID,
			"quantity":         item.Quantity,
			"unit_price_cents": item.UnitPriceCents,
		})
	}
	return resp
}

// OrderGet returns one order.
func (a *App) OrderGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, err := a.Orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load order")
		return
	}
	a.json(w, http.StatusOK, a.toOrderResponse(order))
}

// OrderCheckout opens a gateway charge for a pending order.
func (a *App) OrderCheckout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, err := a.Orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load order")
		return
	}
	if order.Status != domain.OrderStatusPending {
		a.error(w, http.StatusConflict, "order_not_payable", "order is not awaiting payment")
		return
	}

	charge, err := a.Gateway.CreateCharge(r.Context(), chargeRequestFor(order))
	if err != nil {
		a.Logger.Error().Err(err).Str("order_id", order.ID).Msg("orders: charge creation failed")
		a.error(w, http.StatusBadGateway, "gateway_failed", "failed to start payment")
		return
	}

	paymentRec := &domain.Payment{
		OrderID:     order.ID,
		Provider:    a.Gateway.Provider(),
		ProviderRef: charge.ProviderRef,
		AmountCents: order.TotalCents,
		Currency:    order.Currency,
	}
	if err := a.Payments.Create(r.Context(), paymentRec); err != nil {
		a.Logger.Error().Err(err).Str("order_id", order.ID).Msg("orders: payment record failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to record payment")
		return
	}
	a.json(w, http.StatusOK, map[string]string{
		"provider_ref": charge.ProviderRef,
		"payment_url":  charge.PaymentURL,
	})
}

// OrderTrackingQR serves the QR code customers scan to reach their order
// tracking page.
func (a *App) OrderTrackingQR(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := a.Orders.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load order")
		return
	}
	png, err := notify.TrackingQR(a.Cfg.TrackingBaseURL+"/"+id, 384)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to render qr")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

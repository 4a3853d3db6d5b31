package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

type layoutResponse struct {
	ID           string             `json:"id"`
	ProductID    string             `json:"product_id"`
	Name         string             `json:"name"`
	BaseImageKey string             `json:"base_image_key"`
	BaseWidth    int                `json:"base_width"`
	BaseHeight   int                `json:"base_height"`
	Slots        []domain.PrintSlot `json:"slots"`
}

func toLayoutResponse(l domain.Layout) layoutResponse {
	return layoutResponse{
		ID:           l.ID,
		ProductID:    l.ProductID,
		Name:         l.Name,
		BaseImageKey: l.BaseImageKey,
		BaseWidth:    l.BaseWidth,
		BaseHeight:   l.BaseHeight,
		Slots:        l.Slots,
	}
}

// LayoutGet returns one layout with its slot geometry.
func (a *App) LayoutGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	layout, err := a.Layouts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "layout not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load layout")
		return
	}
	a.json(w, http.StatusOK, toLayoutResponse(*layout))
}

// ProductLayoutsList returns the layouts selectable for a product.
func (a *App) ProductLayoutsList(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := a.Products.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load product")
		return
	}
	layouts, err := a.Layouts.ListByProduct(r.Context(), product.ID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load layouts")
		return
	}
	items := make([]layoutResponse, 0, len(layouts))
	for _, l := range layouts {
		items = append(items, toLayoutResponse(l))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

type layoutCreateRequest struct {
	ProductID    string             `json:"product_id"`
	Name         string             `json:"name"`
	BaseImageKey string             `json:"base_image_key"`
	BaseWidth    int                `json:"base_width"`
	BaseHeight   int                `json:"base_height"`
	Slots        []domain.PrintSlot `json:"slots"`
}

// LayoutCreate authors a new layout. Slot geometry is validated here so a
// broken definition can never reach composition.
func (a *App) LayoutCreate(w http.ResponseWriter, r *http.Request) {
	var req layoutCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.ProductID == "" || req.Name == "" || req.BaseImageKey == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "product_id, name and base_image_key are required")
		return
	}
	if req.BaseWidth <= 0 || req.BaseHeight <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "base dimensions must be positive")
		return
	}
	for i := range req.Slots {
		if req.Slots[i].Fit == "" {
			req.Slots[i].Fit = domain.DefaultFitMode
		}
	}
	if err := domain.ValidateSlots(req.Slots); err != nil {
		a.error(w, http.StatusUnprocessableEntity, "invalid_slot_geometry", err.Error())
		return
	}

	layout := &domain.Layout{
		ProductID:    req.ProductID,
		Name:         req.Name,
		BaseImageKey: req.BaseImageKey,
		BaseWidth:    req.BaseWidth,
		BaseHeight:   req.BaseHeight,
		Slots:        req.Slots,
	}
	if err := a.Layouts.Create(r.Context(), layout); err != nil {
		if errors.Is(err, domain.ErrInvalidSlotGeometry) {
			a.error(w, http.StatusUnprocessableEntity, "invalid_slot_geometry", err.Error())
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to create layout")
		return
	}
	a.json(w, http.StatusCreated, toLayoutResponse(*layout))
}

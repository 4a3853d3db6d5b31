package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"

	"server/internal/domain"
	"server/internal/providers/payment"
	"server/internal/sqlinline"
)

func chargeRequestFor(order *domain.Order) payment.ChargeRequest {
	return payment.ChargeRequest{
		OrderID:       order.ID,
		AmountCents:   order.TotalCents,
		Currency:      order.Currency,
		Description:   "gift order " + order.ID,
		CustomerEmail: order.CustomerEmail,
	}
}

// PaymentWebhook receives gateway status notifications. A paid order
// enqueues one render job per order item; everything else just records
// the gateway's verdict. The handler is idempotent per notification.
func (a *App) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read body")
		return
	}
	if !a.Gateway.VerifyWebhook(body, r.Header.Get("X-Gateway-Signature")) {
		a.error(w, http.StatusUnauthorized, "invalid_signature", "signature verification failed")
		return
	}
	event, err := payment.ParseWebhook(body)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid webhook payload")
		return
	}

	paymentRec, err := a.Payments.GetByProviderRef(r.Context(), event.ProviderRef)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "unknown payment reference")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load payment")
		return
	}
	if paymentRec.Status == domain.PaymentStatusPaid {
		// Gateways redeliver; a settled payment stays settled.
		a.json(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	status := event.PaymentStatus()
	if err := a.Payments.UpdateStatus(r.Context(), paymentRec.ID, status, body); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to update payment")
		return
	}
	if status != domain.PaymentStatusPaid {
		a.json(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	if err := a.Orders.UpdateStatus(r.Context(), paymentRec.OrderID, domain.OrderStatusPaid); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to update order")
		return
	}
	order, err := a.Orders.GetByID(r.Context(), paymentRec.OrderID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load order")
		return
	}
	for _, item := range order.Items {
		if _, err := a.SQL.Exec(r.Context(), sqlinline.QEnqueueRenderJob, uuid.NewString(), item.ID); err != nil {
			a.Logger.Error().Err(err).Str("order_item_id", item.ID).Msg("payments: enqueue render job failed")
		}
	}
	a.Logger.Info().Str("order_id", order.ID).Int("items", len(order.Items)).Msg("payments: order paid, render jobs enqueued")
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

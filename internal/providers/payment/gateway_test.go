package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"server/internal/domain"
)

func TestCreateChargeSandboxWithoutAPIKey(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "https://gateway.example.com"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	charge, err := client.CreateCharge(context.Background(), ChargeRequest{
		OrderID:     "order-1",
		AmountCents: 150000,
		Currency:    "IDR",
	})
	if err != nil {
		t.Fatalf("CreateCharge returned error: %v", err)
	}
	if charge.ProviderRef != "sandbox-order-1" {
		t.Fatalf("ProviderRef mismatch: %q", charge.ProviderRef)
	}
	if charge.Status != "pending" {
		t.Fatalf("Status mismatch: %q", charge.Status)
	}
	if charge.PaymentURL == "" {
		t.Fatal("PaymentURL must be set for sandbox charges")
	}
}

func TestCreateChargePostsToGateway(t *testing.T) {
	var gotAuth string
	var gotReq ChargeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/charges" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Charge{
			ProviderRef: "ref-123",
			PaymentURL:  "https://pay.example.com/ref-123",
			Status:      "pending",
		})
	}))
	defer server.Close()

	client, err := NewClient(Options{BaseURL: server.URL, APIKey: "key-abc", HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	charge, err := client.CreateCharge(context.Background(), ChargeRequest{
		OrderID:     "order-2",
		AmountCents: 99000,
		Currency:    "IDR",
	})
	if err != nil {
		t.Fatalf("CreateCharge returned error: %v", err)
	}
	if gotAuth != "Bearer key-abc" {
		t.Fatalf("Authorization mismatch: %q", gotAuth)
	}
	if gotReq.OrderID != "order-2" || gotReq.AmountCents != 99000 {
		t.Fatalf("request payload mismatch: %+v", gotReq)
	}
	if charge.ProviderRef != "ref-123" {
		t.Fatalf("ProviderRef mismatch: %q", charge.ProviderRef)
	}
}

func TestCreateChargeGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewClient(Options{BaseURL: server.URL, APIKey: "key-abc", HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = client.CreateCharge(context.Background(), ChargeRequest{OrderID: "x", AmountCents: 100})
	if !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("expected ErrProviderFailure, got %v", err)
	}
}

func TestCreateChargeRejectsNonPositiveAmount(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "https://gateway.example.com"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := client.CreateCharge(context.Background(), ChargeRequest{OrderID: "x", AmountCents: 0}); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestWebhookSignatureRoundTrip(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "https://gateway.example.com", WebhookSecret: "whsec"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	body := []byte(`{"reference":"ref-1","status":"paid"}`)
	sig := client.SignWebhook(body)
	if !client.VerifyWebhook(body, sig) {
		t.Fatal("signature produced by SignWebhook must verify")
	}
	if client.VerifyWebhook(body, "deadbeef") {
		t.Fatal("wrong signature must not verify")
	}
	if client.VerifyWebhook([]byte("other body"), sig) {
		t.Fatal("signature over different body must not verify")
	}
}

func TestVerifyWebhookWithoutSecret(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "https://gateway.example.com"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if client.VerifyWebhook([]byte("body"), "anything") {
		t.Fatal("verification must fail when no secret is configured")
	}
}

func TestParseWebhook(t *testing.T) {
	ev, err := ParseWebhook([]byte(`{"reference":"ref-1","status":"settlement","amount_cents":5000,"currency":"IDR"}`))
	if err != nil {
		t.Fatalf("ParseWebhook returned error: %v", err)
	}
	if ev.ProviderRef != "ref-1" || ev.AmountCents != 5000 {
		t.Fatalf("event mismatch: %+v", ev)
	}

	if _, err := ParseWebhook([]byte(`{"status":"paid"}`)); err == nil {
		t.Fatal("expected error for webhook without reference")
	}
	if _, err := ParseWebhook([]byte(`not json`)); err == nil {
		t.Fatal("expected error for malformed webhook")
	}
}

func TestWebhookEventPaymentStatus(t *testing.T) {
	tests := []struct {
		status string
		want   domain.PaymentStatus
	}{
		{"paid", domain.PaymentStatusPaid},
		{"SETTLEMENT", domain.PaymentStatusPaid},
		{"capture", domain.PaymentStatusPaid},
		{"expire", domain.PaymentStatusExpired},
		{"deny", domain.PaymentStatusFailed},
		{"cancelled", domain.PaymentStatusFailed},
		{"pending", domain.PaymentStatusPending},
		{"something-new", domain.PaymentStatusPending},
	}
	for _, tt := range tests {
		ev := WebhookEvent{Status: tt.status}
		if got := ev.PaymentStatus(); got != tt.want {
			t.Fatalf("status %q mapped to %q, want %q", tt.status, got, tt.want)
		}
	}
}

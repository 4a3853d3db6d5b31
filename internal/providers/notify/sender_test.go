package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"server/internal/domain"
)

func TestSenderDropsWhenUnconfigured(t *testing.T) {
	sender := NewSender(Options{})
	err := sender.Send(context.Background(), OrderMessage{Phone: "+6281200000000", Text: "hi"})
	if err != nil {
		t.Fatalf("unconfigured sender must drop silently, got %v", err)
	}
}

func TestSenderPostsMessage(t *testing.T) {
	var gotAuth, gotContentType string
	var gotMsg OrderMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotMsg); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := NewSender(Options{
		WebhookURL: server.URL,
		AuthToken:  "tok-123",
		HTTPClient: server.Client(),
	})
	msg := OrderMessage{
		Phone:       "+6281200000000",
		Text:        "Halo!",
		TrackingURL: "https://shop.example.com/track/order-1",
	}
	if err := sender.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization mismatch: %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type mismatch: %q", gotContentType)
	}
	if gotMsg.Phone != msg.Phone || gotMsg.Text != msg.Text {
		t.Fatalf("message payload mismatch: %+v", gotMsg)
	}
}

func TestSenderProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sender := NewSender(Options{WebhookURL: server.URL, HTTPClient: server.Client()})
	err := sender.Send(context.Background(), OrderMessage{Phone: "+62", Text: "x"})
	if !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("expected ErrProviderFailure, got %v", err)
	}
}

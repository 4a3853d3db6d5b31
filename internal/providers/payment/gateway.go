package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
	"server/internal/infra"
)

// Options controls how the payment gateway client is configured.
type Options struct {
	Provider      string
	APIKey        string
	BaseURL       string
	WebhookSecret string
	HTTPClient    *http.Client
	Logger        *infra.Logger
}

// Client is a narrow facade over the payment gateway. The gateway protocol
// is an external collaborator; this service only creates charges and
// verifies status notifications. When no API key is configured the client
// issues deterministic sandbox charges so local and CI environments stay
// fully operational.
type Client struct {
	provider      string
	apiKey        string
	baseURL       string
	webhookSecret string
	httpClient    *http.Client
	logger        *infra.Logger
}

// NewClient validates options and builds a gateway client.
func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("payment: base url is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	provider := opts.Provider
	if provider == "" {
		provider = "sandbox"
	}
	return &Client{
		provider:      provider,
		apiKey:        strings.TrimSpace(opts.APIKey),
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		webhookSecret: opts.WebhookSecret,
		httpClient:    httpClient,
		logger:        opts.Logger,
	}, nil
}

// Provider names the configured gateway.
func (c *Client) Provider() string { return c.provider }

// ChargeRequest carries what the gateway needs to open a charge.
type ChargeRequest struct {
	OrderID       string `json:"order_id"`
	AmountCents   int64  `json:"amount_cents"`
	Currency      string `json:"currency"`
	Description   string `json:"description,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// Charge is the normalized gateway response.
type Charge struct {
	ProviderRef string `json:"reference"`
	PaymentURL  string `json:"payment_url"`
	Status      string `json:"status"`
}

// CreateCharge opens a charge for the order and returns the gateway
// reference the customer pays against.
func (c *Client) CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("payment: amount must be positive")
	}
	if c.apiKey == "" {
		charge := &Charge{
			ProviderRef: "sandbox-" + req.OrderID,
			PaymentURL:  c.baseURL + "/pay/sandbox-" + req.OrderID,
			Status:      "pending",
		}
		if c.logger != nil {
			c.logger.Info().Str("order_id", req.OrderID).Msg("payment: no api key, issuing sandbox charge")
		}
		return charge, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("payment: encode charge: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("payment: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrProviderFailure, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: gateway returned %d", domain.ErrProviderFailure, resp.StatusCode)
	}
	var charge Charge
	if err := json.Unmarshal(payload, &charge); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrProviderFailure, err)
	}
	if charge.ProviderRef == "" {
		return nil, fmt.Errorf("%w: charge missing reference", domain.ErrProviderFailure)
	}
	return &charge, nil
}

// VerifyWebhook checks the HMAC-SHA256 signature the gateway attaches to
// status notifications.
func (c *Client) VerifyWebhook(body []byte, signature string) bool {
	if c.webhookSecret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.TrimSpace(strings.ToLower(signature))))
}

// SignWebhook produces the signature the gateway would attach to body.
// Exposed for tests and the sandbox flow.
func (c *Client) SignWebhook(body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// WebhookEvent is the decoded gateway notification.
type WebhookEvent struct {
	ProviderRef string `json:"reference"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// ParseWebhook decodes a notification body.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("payment: decode webhook: %w", err)
	}
	if ev.ProviderRef == "" {
		return nil, fmt.Errorf("payment: webhook missing reference")
	}
	return &ev, nil
}

// PaymentStatus maps the gateway's vocabulary onto the domain's.
func (e *WebhookEvent) PaymentStatus() domain.PaymentStatus {
	switch strings.ToLower(e.Status) {
	case "paid", "settlement", "capture", "success":
		return domain.PaymentStatusPaid
	case "expire", "expired":
		return domain.PaymentStatusExpired
	case "deny", "failed", "cancel", "cancelled":
		return domain.PaymentStatusFailed
	default:
		return domain.PaymentStatusPending
	}
}

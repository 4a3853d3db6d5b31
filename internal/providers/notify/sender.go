package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"server/internal/domain"
	"server/internal/infra"
)

// Options controls how the messaging provider client is configured.
type Options struct {
	WebhookURL string
	AuthToken  string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Sender delivers order messages through the external messaging provider.
// Delivery semantics belong to the provider; this client only posts the
// message payload. An unconfigured sender logs and drops, keeping local
// environments operational without a provider account.
type Sender struct {
	webhookURL string
	authToken  string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewSender builds a messaging client from options.
func NewSender(opts Options) *Sender {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Sender{
		webhookURL: strings.TrimSpace(opts.WebhookURL),
		authToken:  opts.AuthToken,
		httpClient: httpClient,
		logger:     opts.Logger,
	}
}

// Send posts one order message to the provider.
func (s *Sender) Send(ctx context.Context, msg OrderMessage) error {
	if s.webhookURL == "" {
		if s.logger != nil {
			s.logger.Info().Str("phone", msg.Phone).Msg("notify: no provider configured, dropping message")
		}
		return nil
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify: encode message: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: provider returned %d", domain.ErrProviderFailure, resp.StatusCode)
	}
	return nil
}

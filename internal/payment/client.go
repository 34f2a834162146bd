package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spec-kit/hallticket-service/internal/config"
)

// Client talks to the payment provider's payment-links API over HTTP.
type Client struct {
	baseURL     string
	keyID       string
	keySecret   string
	callbackURL string
	httpClient  *http.Client
}

// NewClient builds a gateway client from configuration.
func NewClient(cfg config.PaymentConfig) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		keyID:       cfg.KeyID,
		keySecret:   cfg.KeySecret,
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

type paymentLinkRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Customer    customerPayload   `json:"customer"`
	Notes       map[string]string `json:"notes"`
	CallbackURL string            `json:"callback_url,omitempty"`
}

type customerPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

type paymentLinkResponse struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

// CreatePaymentLink asks the provider for a hosted checkout URL carrying the
// ticket id as opaque notes metadata.
func (c *Client) CreatePaymentLink(ctx context.Context, req IntentRequest) (*PaymentLink, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, fmt.Errorf("payment gateway credentials not configured")
	}

	payload := paymentLinkRequest{
		Amount:      req.AmountPaise,
		Currency:    req.Currency,
		Description: req.Description,
		Customer: customerPayload{
			Name:    req.Name,
			Email:   req.Email,
			Contact: req.Phone,
		},
		Notes:       map[string]string{"ticket_id": req.TicketID},
		CallbackURL: c.callbackURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payment link request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment_links", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create payment link request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read payment gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payment gateway rejected request: status %d: %s", resp.StatusCode, respBody)
	}

	var linkResp paymentLinkResponse
	if err := json.Unmarshal(respBody, &linkResp); err != nil {
		return nil, fmt.Errorf("decode payment gateway response: %w", err)
	}
	if linkResp.ShortURL == "" {
		return nil, fmt.Errorf("payment gateway returned no checkout url")
	}

	return &PaymentLink{ID: linkResp.ID, URL: linkResp.ShortURL}, nil
}

// Package payments integrates the external payment collaborator. The
// protocol is treated as a black box: request a setup handle with a pricing
// breakdown, then confirm it, yielding success (with a confirmation id) or a
// decline.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mediguide/storefront-client/internal/api"
	"github.com/mediguide/storefront-client/pkg/config"
	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	confirmBodyReadLimit int64 = 2048

	statusSucceeded = "succeeded"
)

// Client drives the two payment steps. Intent creation goes through the
// storefront API (which holds the secret key); confirmation goes directly to
// the collaborator with the publishable key.
type Client struct {
	store          *api.Client
	httpClient     *http.Client
	baseURL        string
	publishableKey string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client used for confirmation.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds the payment client from configuration.
func NewClient(store *api.Client, cfg config.PaymentConfig, opts ...Option) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("storefront api transport required")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("payment base URL is required")
	}

	client := &Client{
		store:          store,
		baseURL:        baseURL,
		publishableKey: strings.TrimSpace(cfg.PublishableKey),
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// IntentItem is one cart line in the intent request.
type IntentItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// IntentInput carries the cart lines and the flat shipping cost.
type IntentInput struct {
	Items        []IntentItem    `json:"cart_items"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
}

// Quote is the collaborator's pricing breakdown plus the opaque
// confirmation handle.
type Quote struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Shipping     decimal.Decimal `json:"shipping"`
	Total        decimal.Decimal `json:"total"`
	ClientSecret string          `json:"client_secret"`
}

// CreateIntent requests a payment setup handle for the given lines.
func (c *Client) CreateIntent(ctx context.Context, input IntentInput) (*Quote, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment intent requires at least one item")
	}

	var quote Quote
	if err := c.store.Post(ctx, "/api/create-payment-intent/", input, &quote); err != nil {
		return nil, err
	}
	if quote.ClientSecret == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment collaborator returned no confirmation handle")
	}
	return &quote, nil
}

// Card is the locally entered payment instrument.
type Card struct {
	Number   string `json:"number"`
	ExpMonth int    `json:"exp_month"`
	ExpYear  int    `json:"exp_year"`
	CVC      string `json:"cvc"`
}

// BillingDetails accompany the confirmation.
type BillingDetails struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// Confirmation is the collaborator's success receipt.
type Confirmation struct {
	PaymentIntentID string
}

// Confirm completes the payment for the handle obtained from CreateIntent.
// A collaborator-reported decline maps to a payment-declined error carrying
// the collaborator's message; the caller must not create an order for it.
func (c *Client) Confirm(ctx context.Context, clientSecret string, card Card, billing BillingDetails) (*Confirmation, error) {
	intentID := intentIDFromSecret(clientSecret)
	if intentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "confirmation handle is required")
	}

	payload, err := json.Marshal(struct {
		Key            string         `json:"key,omitempty"`
		ClientSecret   string         `json:"client_secret"`
		Card           Card           `json:"card"`
		BillingDetails BillingDetails `json:"billing_details"`
	}{
		Key:            c.publishableKey,
		ClientSecret:   clientSecret,
		Card:           card,
		BillingDetails: billing,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode confirmation request")
	}

	target := fmt.Sprintf("%s/v1/payment_intents/%s/confirm", c.baseURL, intentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build confirmation request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute confirmation request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, confirmBodyReadLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read confirmation response")
	}

	var result struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode confirmation response")
	}

	if result.Error != nil && result.Error.Message != "" {
		return nil, pkgerrors.New(pkgerrors.CodePaymentDeclined, result.Error.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("payment collaborator returned status %d", resp.StatusCode))
	}
	if result.Status != statusSucceeded {
		return nil, pkgerrors.New(pkgerrors.CodePaymentDeclined,
			fmt.Sprintf("payment not completed (status %q)", result.Status))
	}

	return &Confirmation{PaymentIntentID: result.ID}, nil
}

// intentIDFromSecret strips the secret suffix off the confirmation handle
// ("pi_123_secret_abc" -> "pi_123"). Handles without the suffix are used
// as-is.
func intentIDFromSecret(clientSecret string) string {
	trimmed := strings.TrimSpace(clientSecret)
	if trimmed == "" {
		return ""
	}
	if idx := strings.Index(trimmed, "_secret"); idx > 0 {
		return trimmed[:idx]
	}
	return trimmed
}

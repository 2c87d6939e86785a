// Package orders submits finalized carts as orders and reads order history.
package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mediguide/storefront-client/internal/api"
	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
)

// Client talks to the orders API.
type Client struct {
	api *api.Client
}

func NewClient(transport *api.Client) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("api transport required")
	}
	return &Client{api: transport}, nil
}

// Create submits the order. A fresh idempotency key accompanies every call
// so a retried submission after a dropped response cannot double-create.
func (c *Client) Create(ctx context.Context, input CreateInput) (*Order, error) {
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if input.PaymentIntentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment confirmation id is required")
	}

	var order Order
	key := api.Header{Key: "X-Idempotency-Key", Value: uuid.NewString()}
	if err := c.api.Post(ctx, "/api/orders/", input, &order, key); err != nil {
		return nil, err
	}
	return &order, nil
}

// Get fetches one order by id.
func (c *Client) Get(ctx context.Context, id int64) (*Order, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	var order Order
	if err := c.api.Get(ctx, fmt.Sprintf("/api/orders/%d/", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListMine fetches the caller's order history, newest first.
func (c *Client) ListMine(ctx context.Context) ([]Order, error) {
	var result []Order
	if err := c.api.Get(ctx, "/api/orders/my-orders/", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

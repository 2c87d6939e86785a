// Package catalog is the read-only accessor for products and categories.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mediguide/storefront-client/internal/api"
	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
)

// Client reads the product catalog.
type Client struct {
	api *api.Client
}

func NewClient(transport *api.Client) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("api transport required")
	}
	return &Client{api: transport}, nil
}

// ListParams filter and page the product listing.
type ListParams struct {
	Search   string
	Category int64
	Ordering string
	Page     int
}

func (p ListParams) query() url.Values {
	query := url.Values{}
	if p.Search != "" {
		query.Set("search", p.Search)
	}
	if p.Category > 0 {
		query.Set("category", strconv.FormatInt(p.Category, 10))
	}
	if p.Ordering != "" {
		query.Set("ordering", p.Ordering)
	}
	if p.Page > 1 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	return query
}

// ListProducts fetches one page of the catalog. The response may be either
// a paginated envelope or a bare array depending on server configuration;
// both decode into a ProductPage.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	body, _, err := c.api.GetRaw(ctx, "/api/products/", params.query())
	if err != nil {
		return nil, err
	}

	var page ProductPage
	if err := json.Unmarshal(body, &page); err == nil {
		return &page, nil
	}

	// unpaginated deployments return a bare array
	var plain []Product
	if err := json.Unmarshal(body, &plain); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product listing")
	}
	return &ProductPage{Count: len(plain), Results: plain}, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var product Product
	if err := c.api.Get(ctx, fmt.Sprintf("/api/products/%d/", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.api.Get(ctx, "/api/categories/", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

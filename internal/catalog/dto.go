package catalog

import (
	"time"

	"github.com/mediguide/storefront-client/internal/cart"
	"github.com/shopspring/decimal"
)

// Product mirrors the catalog API's product payload.
type Product struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Category             int64           `json:"category"`
	CategoryName         string          `json:"category_name"`
	Price                decimal.Decimal `json:"price"`
	StockQuantity        int             `json:"stock_quantity"`
	LowStockThreshold    int             `json:"low_stock_threshold"`
	Manufacturer         string          `json:"manufacturer"`
	Dosage               string          `json:"dosage"`
	RequiresPrescription bool            `json:"requires_prescription"`
	Image                string          `json:"image"`
	IsActive             bool            `json:"is_active"`
	IsLowStock           bool            `json:"is_low_stock"`
	IsInStock            bool            `json:"is_in_stock"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// CartSnapshot converts the product into the add-to-cart input.
func (p Product) CartSnapshot() cart.Product {
	return cart.Product{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Image:         p.Image,
		Dosage:        p.Dosage,
		StockQuantity: p.StockQuantity,
	}
}

// Category mirrors the catalog API's category payload.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductPage is the paginated product listing envelope.
type ProductPage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Product `json:"results"`
}

// HasNext reports whether another page follows.
func (p ProductPage) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}

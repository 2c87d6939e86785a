package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status values reported by the orders API.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ItemInput is one order line in the creation payload. Price is the unit
// price at order time.
type ItemInput struct {
	Product  int64           `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateInput is the order creation payload: shipping details, the payment
// confirmation identifier, the quoted totals, and the line items.
type CreateInput struct {
	ShippingName    string          `json:"shipping_name"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingCity    string          `json:"shipping_city"`
	ShippingState   string          `json:"shipping_state"`
	ShippingZip     string          `json:"shipping_zip"`
	ShippingPhone   string          `json:"shipping_phone"`
	PaymentIntentID string          `json:"payment_intent_id"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes,omitempty"`
	Items           []ItemInput     `json:"items"`
}

// Item is one recorded order line.
type Item struct {
	ID          int64           `json:"id"`
	Product     int64           `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order is a recorded order as returned by the API.
type Order struct {
	ID              int64           `json:"id"`
	Username        string          `json:"username"`
	Status          string          `json:"status"`
	ShippingName    string          `json:"shipping_name"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingCity    string          `json:"shipping_city"`
	ShippingState   string          `json:"shipping_state"`
	ShippingZip     string          `json:"shipping_zip"`
	ShippingPhone   string          `json:"shipping_phone"`
	PaymentIntentID string          `json:"payment_intent_id"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	Total           decimal.Decimal `json:"total"`
	Notes           string          `json:"notes"`
	Items           []Item          `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
}

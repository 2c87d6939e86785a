package cart

import "github.com/shopspring/decimal"

// Line is one row per distinct product in the cart. Name, price, image and
// dosage are display snapshots captured at add-time and may go stale
// relative to the catalog. The JSON field names match the shape the
// storefront has always persisted under the cart slot.
type Line struct {
	ProductID     int64           `json:"id"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"price"`
	Image         string          `json:"image,omitempty"`
	Dosage        string          `json:"dosage,omitempty"`
	Quantity      int             `json:"quantity"`
	StockSnapshot int             `json:"stock_quantity"`
}

// Subtotal is unit price times quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Product is the add-to-cart input: the identity plus the display snapshot
// and the stock level known at add-time.
type Product struct {
	ID            int64
	Name          string
	Price         decimal.Decimal
	Image         string
	Dosage        string
	StockQuantity int
}

package reports

import "github.com/shopspring/decimal"

// Format selects the report rendering. JSON yields typed rows; CSV and PDF
// yield a downloadable file.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// Valid reports whether the format is one the server renders.
func (f Format) Valid() bool {
	switch f {
	case FormatJSON, FormatCSV, FormatPDF:
		return true
	}
	return false
}

// LowStockRow is one product running below its restock threshold.
type LowStockRow struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	CurrentStock int    `json:"current_stock"`
	Threshold    int    `json:"threshold"`
	CategoryName string `json:"category_name"`
}

// SalesRow is one product's aggregate for the requested month.
type SalesRow struct {
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// File is a rendered CSV or PDF report ready to be written to disk.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// PriceUpdateResult reports the outcome of a batch price adjustment.
type PriceUpdateResult struct {
	UpdatedCount int             `json:"updated_count"`
	CategoryID   int64           `json:"category_id"`
	Percentage   decimal.Decimal `json:"percentage_change"`
}

// Package reports exposes the admin reporting endpoints: low stock,
// monthly sales, and batch price updates. Reports render as typed rows
// (json) or as downloadable files (csv, pdf).
package reports

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mediguide/storefront-client/internal/api"
	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
	"github.com/mediguide/storefront-client/pkg/validate"
	"github.com/shopspring/decimal"
)

// Client calls the reporting endpoints. All of them require a privileged
// session token on the underlying transport.
type Client struct {
	api *api.Client
}

// NewClient builds the reports client over the shared transport.
func NewClient(transport *api.Client) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("api transport required")
	}
	return &Client{api: transport}, nil
}

type reportEnvelope[T any] struct {
	Success bool   `json:"success"`
	Data    []T    `json:"data"`
	Count   int    `json:"count"`
	Error   string `json:"error"`
}

// LowStock fetches the low-stock report as typed rows.
func (c *Client) LowStock(ctx context.Context) ([]LowStockRow, error) {
	query := url.Values{"report_format": {string(FormatJSON)}}

	var envelope reportEnvelope[LowStockRow]
	if err := c.api.Get(ctx, "/api/reports/low-stock/", query, &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, reportFailure(envelope.Error))
	}
	return envelope.Data, nil
}

// LowStockFile downloads the low-stock report rendered as csv or pdf.
func (c *Client) LowStockFile(ctx context.Context, format Format) (*File, error) {
	if err := validateFileFormat(format); err != nil {
		return nil, err
	}

	query := url.Values{"report_format": {string(format)}}
	data, contentType, err := c.api.GetRaw(ctx, "/api/reports/low-stock/", query)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        "low_stock_report." + string(format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

type salesParams struct {
	Month int `json:"month" validate:"min=1,max=12"`
	Year  int `json:"year" validate:"min=1"`
}

// MonthlySales fetches the sales aggregate for one month as typed rows.
func (c *Client) MonthlySales(ctx context.Context, month, year int) ([]SalesRow, error) {
	if err := validate.Struct(salesParams{Month: month, Year: year}); err != nil {
		return nil, err
	}

	var envelope reportEnvelope[SalesRow]
	if err := c.api.Get(ctx, "/api/reports/monthly-sales/", salesQuery(month, year, FormatJSON), &envelope); err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, reportFailure(envelope.Error))
	}
	return envelope.Data, nil
}

// MonthlySalesFile downloads the monthly sales report rendered as csv or pdf.
func (c *Client) MonthlySalesFile(ctx context.Context, month, year int, format Format) (*File, error) {
	if err := validate.Struct(salesParams{Month: month, Year: year}); err != nil {
		return nil, err
	}
	if err := validateFileFormat(format); err != nil {
		return nil, err
	}

	data, contentType, err := c.api.GetRaw(ctx, "/api/reports/monthly-sales/", salesQuery(month, year, format))
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        fmt.Sprintf("monthly_sales_%d_%d.%s", month, year, format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// BatchPriceUpdate adjusts every price in a category by the given
// percentage and returns how many products changed.
func (c *Client) BatchPriceUpdate(ctx context.Context, categoryID int64, percentage decimal.Decimal) (*PriceUpdateResult, error) {
	if categoryID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id must be positive")
	}

	payload := struct {
		CategoryID int64           `json:"category_id"`
		Percentage decimal.Decimal `json:"percentage"`
	}{CategoryID: categoryID, Percentage: percentage}

	var result struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		PriceUpdateResult
	}
	if err := c.api.Post(ctx, "/api/reports/batch-price-update/", payload, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, reportFailure(result.Error))
	}
	return &result.PriceUpdateResult, nil
}

func salesQuery(month, year int, format Format) url.Values {
	return url.Values{
		"month":         {strconv.Itoa(month)},
		"year":          {strconv.Itoa(year)},
		"report_format": {string(format)},
	}
}

func validateFileFormat(format Format) error {
	if format != FormatCSV && format != FormatPDF {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("format %q is not downloadable (want csv or pdf)", format))
	}
	return nil
}

func reportFailure(message string) string {
	if message == "" {
		return "report generation failed"
	}
	return "report generation failed: " + message
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mediguide/storefront-client/internal/reports"
	"github.com/shopspring/decimal"
)

func (a *app) runReports(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: reports low-stock|monthly-sales|price-update")
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "low-stock":
		return a.runLowStock(ctx, rest)
	case "monthly-sales":
		return a.runMonthlySales(ctx, rest)
	case "price-update":
		return a.runPriceUpdate(ctx, rest)
	default:
		return fmt.Errorf("unknown reports subcommand %q", sub)
	}
}

func (a *app) runLowStock(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("reports low-stock", flag.ExitOnError)
	format := flags.String("format", "json", "output format: json, csv, or pdf")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if reports.Format(*format) == reports.FormatJSON {
		rows, err := a.reports.LowStock(ctx)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Printf("#%-4d %-40s stock %3d / threshold %3d  (%s)\n",
				row.ProductID, row.ProductName, row.CurrentStock, row.Threshold, row.CategoryName)
		}
		fmt.Printf("%d products below threshold\n", len(rows))
		return nil
	}

	file, err := a.reports.LowStockFile(ctx, reports.Format(*format))
	if err != nil {
		return err
	}
	return a.saveReport(file)
}

func (a *app) runMonthlySales(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("reports monthly-sales", flag.ExitOnError)
	month := flags.Int("month", 0, "month (1-12)")
	year := flags.Int("year", 0, "year")
	format := flags.String("format", "json", "output format: json, csv, or pdf")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if reports.Format(*format) == reports.FormatJSON {
		rows, err := a.reports.MonthlySales(ctx, *month, *year)
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Printf("#%-4d %-40s sold %4d  revenue $%s\n",
				row.ProductID, row.ProductName, row.TotalQuantity,
				row.TotalRevenue.StringFixed(2))
		}
		fmt.Printf("%d products sold in %d/%d\n", len(rows), *month, *year)
		return nil
	}

	file, err := a.reports.MonthlySalesFile(ctx, *month, *year, reports.Format(*format))
	if err != nil {
		return err
	}
	return a.saveReport(file)
}

func (a *app) runPriceUpdate(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("reports price-update", flag.ExitOnError)
	category := flags.Int64("category", 0, "category id")
	percent := flags.String("percent", "", "percentage change (e.g. 10.5 or -5)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	percentage, err := decimal.NewFromString(*percent)
	if err != nil {
		return fmt.Errorf("invalid -percent value %q", *percent)
	}

	result, err := a.reports.BatchPriceUpdate(ctx, *category, percentage)
	if err != nil {
		return err
	}
	fmt.Printf("updated %d products in category %d by %s%%\n",
		result.UpdatedCount, result.CategoryID, result.Percentage)
	return nil
}

func (a *app) saveReport(file *reports.File) error {
	dir := a.cfg.Reports.DownloadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(dir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Printf("saved %s (%s, %d bytes)\n", path, file.ContentType, len(file.Data))
	return nil
}

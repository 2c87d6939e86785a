package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/mediguide/storefront-client/internal/catalog"
)

func (a *app) runProducts(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("products", flag.ExitOnError)
	search := flags.String("search", "", "search by name, description, or manufacturer")
	category := flags.Int64("category", 0, "filter by category id")
	ordering := flags.String("ordering", "", "sort field (e.g. price, -price, name)")
	page := flags.Int("page", 1, "page number")
	if err := flags.Parse(args); err != nil {
		return err
	}

	pageResult, err := a.catalog.ListProducts(ctx, catalog.ListParams{
		Search:   *search,
		Category: *category,
		Ordering: *ordering,
		Page:     *page,
	})
	if err != nil {
		return err
	}

	for _, product := range pageResult.Results {
		printProductLine(product)
	}
	fmt.Printf("%d of %d products", len(pageResult.Results), pageResult.Count)
	if pageResult.HasNext() {
		fmt.Printf(" (more on page %d)", *page+1)
	}
	fmt.Println()
	return nil
}

func (a *app) runProduct(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("product", flag.ExitOnError)
	id := flags.Int64("id", 0, "product id")
	if err := flags.Parse(args); err != nil {
		return err
	}

	product, err := a.catalog.GetProduct(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Printf("#%d %s\n", product.ID, product.Name)
	if product.Dosage != "" {
		fmt.Printf("  dosage:       %s\n", product.Dosage)
	}
	fmt.Printf("  price:        $%s\n", product.Price.StringFixed(2))
	fmt.Printf("  category:     %s\n", product.CategoryName)
	fmt.Printf("  manufacturer: %s\n", product.Manufacturer)
	fmt.Printf("  stock:        %d\n", product.StockQuantity)
	if product.RequiresPrescription {
		fmt.Println("  prescription required")
	}
	if product.Description != "" {
		fmt.Printf("  %s\n", product.Description)
	}
	return nil
}

func (a *app) runCategories(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("categories", flag.ExitOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}

	categories, err := a.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, category := range categories {
		fmt.Printf("#%d %s", category.ID, category.Name)
		if category.Description != "" {
			fmt.Printf(" - %s", category.Description)
		}
		fmt.Println()
	}
	return nil
}

func printProductLine(product catalog.Product) {
	marker := " "
	switch {
	case !product.IsInStock:
		marker = "x"
	case product.IsLowStock:
		marker = "!"
	}
	fmt.Printf("%s #%-4d %-40s $%8s  stock %d\n",
		marker, product.ID, product.Name, product.Price.StringFixed(2), product.StockQuantity)
}

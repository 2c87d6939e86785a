package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/mediguide/storefront-client/internal/orders"
)

func (a *app) runOrders(ctx context.Context) error {
	mine, err := a.orders.ListMine(ctx)
	if err != nil {
		return err
	}
	if len(mine) == 0 {
		fmt.Println("no orders yet")
		return nil
	}
	for _, order := range mine {
		fmt.Printf("#%-5d %-11s $%8s  %s\n",
			order.ID, order.Status, order.Total.StringFixed(2),
			order.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func (a *app) runOrder(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("order", flag.ExitOnError)
	id := flags.Int64("id", 0, "order id")
	if err := flags.Parse(args); err != nil {
		return err
	}

	order, err := a.orders.Get(ctx, *id)
	if err != nil {
		return err
	}
	printOrder(order)
	return nil
}

func printOrder(order *orders.Order) {
	fmt.Printf("order #%d (%s)\n", order.ID, order.Status)
	fmt.Printf("  placed: %s\n", order.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  ship to: %s, %s, %s, %s %s\n",
		order.ShippingName, order.ShippingAddress, order.ShippingCity,
		order.ShippingState, order.ShippingZip)
	for _, item := range order.Items {
		fmt.Printf("  %-40s %d x $%s = $%s\n",
			item.ProductName, item.Quantity,
			item.Price.StringFixed(2), item.Subtotal.StringFixed(2))
	}
	fmt.Printf("  subtotal: $%s\n", order.Subtotal.StringFixed(2))
	fmt.Printf("  tax:      $%s\n", order.Tax.StringFixed(2))
	fmt.Printf("  shipping: $%s\n", order.ShippingCost.StringFixed(2))
	fmt.Printf("  total:    $%s\n", order.Total.StringFixed(2))
}

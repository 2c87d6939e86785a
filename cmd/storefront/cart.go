package main

import (
	"context"
	"flag"
	"fmt"
)

func (a *app) runCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.printCart(ctx)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "show":
		return a.printCart(ctx)
	case "add":
		return a.runCartAdd(ctx, rest)
	case "set":
		return a.runCartSet(ctx, rest)
	case "remove":
		return a.runCartRemove(ctx, rest)
	case "clear":
		a.cart.Clear(ctx)
		return nil
	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}
}

func (a *app) printCart(ctx context.Context) error {
	lines := a.cart.Items(ctx)
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}

	for _, line := range lines {
		fmt.Printf("#%-4d %-40s %d x $%s = $%s\n",
			line.ProductID, line.Name, line.Quantity,
			line.UnitPrice.StringFixed(2), line.Subtotal().StringFixed(2))
	}
	fmt.Printf("total: $%s\n", a.cart.Total(ctx).StringFixed(2))
	return nil
}

// runCartAdd fetches the product first so the cart line carries a current
// stock snapshot.
func (a *app) runCartAdd(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("cart add", flag.ExitOnError)
	id := flags.Int64("id", 0, "product id")
	qty := flags.Int("qty", 1, "quantity to add")
	if err := flags.Parse(args); err != nil {
		return err
	}

	product, err := a.catalog.GetProduct(ctx, *id)
	if err != nil {
		return err
	}
	return a.cart.Add(ctx, product.CartSnapshot(), *qty)
}

func (a *app) runCartSet(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("cart set", flag.ExitOnError)
	id := flags.Int64("id", 0, "product id")
	qty := flags.Int("qty", 0, "new quantity (0 removes the line)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	return a.cart.UpdateQuantity(ctx, *id, *qty)
}

func (a *app) runCartRemove(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("cart remove", flag.ExitOnError)
	id := flags.Int64("id", 0, "product id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	return a.cart.Remove(ctx, *id)
}

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/mediguide/storefront-client/internal/checkout"
	"github.com/mediguide/storefront-client/internal/payments"
)

func (a *app) runCheckout(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("checkout", flag.ExitOnError)
	name := flags.String("name", "", "full name")
	address := flags.String("address", "", "street address")
	city := flags.String("city", "", "city")
	state := flags.String("state", "", "state")
	zip := flags.String("zip", "", "zip code")
	phone := flags.String("phone", "", "phone number")
	cardNumber := flags.String("card", "", "card number")
	expMonth := flags.Int("exp-month", 0, "card expiry month")
	expYear := flags.Int("exp-year", 0, "card expiry year")
	cvc := flags.String("cvc", "", "card security code")
	if err := flags.Parse(args); err != nil {
		return err
	}

	session, err := a.flow.Begin(ctx)
	if err != nil {
		return err
	}

	if env := a.cfg.Payment.Environment(); env != "live" {
		fmt.Printf("payment environment: %s (no real charge)\n", env)
	}

	fmt.Printf("subtotal: $%s\n", session.Quote.Subtotal.StringFixed(2))
	fmt.Printf("tax:      $%s\n", session.Quote.Tax.StringFixed(2))
	fmt.Printf("shipping: $%s\n", session.Quote.Shipping.StringFixed(2))
	fmt.Printf("total:    $%s\n", session.Quote.Total.StringFixed(2))

	order, err := a.flow.Complete(ctx, session, checkout.Shipping{
		Name:    *name,
		Address: *address,
		City:    *city,
		State:   *state,
		Zip:     *zip,
		Phone:   *phone,
	}, payments.Card{
		Number:   *cardNumber,
		ExpMonth: *expMonth,
		ExpYear:  *expYear,
		CVC:      *cvc,
	})
	if err != nil {
		return err
	}

	fmt.Printf("order #%d placed\n", order.ID)
	return nil
}

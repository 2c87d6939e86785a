// Package checkout sequences the purchase flow: quote the cart, confirm
// payment, record the order, then empty the cart. Each step only runs once
// the previous one succeeded, and a failure leaves the cart untouched so the
// buyer can retry.
package checkout

import (
	"context"
	"fmt"

	"github.com/mediguide/storefront-client/internal/cart"
	"github.com/mediguide/storefront-client/internal/orders"
	"github.com/mediguide/storefront-client/internal/payments"
	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
	"github.com/mediguide/storefront-client/pkg/logger"
	"github.com/mediguide/storefront-client/pkg/validate"
	"github.com/shopspring/decimal"
)

type cartStore interface {
	Items(ctx context.Context) []cart.Line
	Clear(ctx context.Context)
}

type paymentGateway interface {
	CreateIntent(ctx context.Context, input payments.IntentInput) (*payments.Quote, error)
	Confirm(ctx context.Context, clientSecret string, card payments.Card, billing payments.BillingDetails) (*payments.Confirmation, error)
}

type orderRecorder interface {
	Create(ctx context.Context, input orders.CreateInput) (*orders.Order, error)
}

// Shipping is the delivery address collected at checkout. Every field is
// required before payment runs.
type Shipping struct {
	Name    string `json:"shipping_name" validate:"required"`
	Address string `json:"shipping_address" validate:"required"`
	City    string `json:"shipping_city" validate:"required"`
	State   string `json:"shipping_state" validate:"required"`
	Zip     string `json:"shipping_zip" validate:"required"`
	Phone   string `json:"shipping_phone" validate:"required"`
}

// Flow drives one checkout attempt.
type Flow struct {
	cart         cartStore
	gateway      paymentGateway
	orders       orderRecorder
	log          *logger.Logger
	shippingCost decimal.Decimal
}

// NewFlow wires the checkout collaborators.
func NewFlow(cartStore cartStore, gateway paymentGateway, recorder orderRecorder, shippingCost decimal.Decimal, log *logger.Logger) (*Flow, error) {
	if cartStore == nil || gateway == nil || recorder == nil {
		return nil, fmt.Errorf("checkout requires cart, gateway, and order recorder")
	}
	return &Flow{
		cart:         cartStore,
		gateway:      gateway,
		orders:       recorder,
		log:          log,
		shippingCost: shippingCost,
	}, nil
}

// ErrCartEmpty signals a checkout attempt with nothing in the cart. The
// caller should send the buyer back to the cart view instead of surfacing a
// failure.
var ErrCartEmpty = pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")

// Session is a quoted checkout: the cart lines being purchased and the
// pricing breakdown from the payment collaborator.
type Session struct {
	Lines []cart.Line
	Quote payments.Quote
}

// Begin snapshots the cart and requests a payment quote for it. An empty
// cart fails before any network call.
func (f *Flow) Begin(ctx context.Context) (*Session, error) {
	lines := f.cart.Items(ctx)
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	items := make([]payments.IntentItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, payments.IntentItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		})
	}

	quote, err := f.gateway.CreateIntent(ctx, payments.IntentInput{
		Items:        items,
		ShippingCost: f.shippingCost,
	})
	if err != nil {
		return nil, err
	}

	f.info(ctx, "checkout quoted", "total", quote.Total.String())
	return &Session{Lines: lines, Quote: *quote}, nil
}

// Complete confirms payment for a quoted session and records the order.
// A decline stops the flow with the cart intact. If payment succeeds but
// order recording fails, the error is critical: money moved without a
// matching order, and the buyer must contact support rather than retry.
func (f *Flow) Complete(ctx context.Context, session *Session, shipping Shipping, card payments.Card) (*orders.Order, error) {
	if session == nil || len(session.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout session is empty")
	}
	if err := validate.Struct(shipping); err != nil {
		return nil, err
	}

	confirmation, err := f.gateway.Confirm(ctx, session.Quote.ClientSecret, card, payments.BillingDetails{
		Name:       shipping.Name,
		Line1:      shipping.Address,
		City:       shipping.City,
		State:      shipping.State,
		PostalCode: shipping.Zip,
		Phone:      shipping.Phone,
	})
	if err != nil {
		return nil, err
	}

	items := make([]orders.ItemInput, 0, len(session.Lines))
	for _, line := range session.Lines {
		items = append(items, orders.ItemInput{
			Product:  line.ProductID,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
		})
	}

	order, err := f.orders.Create(ctx, orders.CreateInput{
		ShippingName:    shipping.Name,
		ShippingAddress: shipping.Address,
		ShippingCity:    shipping.City,
		ShippingState:   shipping.State,
		ShippingZip:     shipping.Zip,
		ShippingPhone:   shipping.Phone,
		PaymentIntentID: confirmation.PaymentIntentID,
		Subtotal:        session.Quote.Subtotal,
		Tax:             session.Quote.Tax,
		ShippingCost:    session.Quote.Shipping,
		Total:           session.Quote.Total,
		Items:           items,
	})
	if err != nil {
		if f.log != nil {
			f.log.Error(f.log.WithField(ctx, "payment_intent_id", confirmation.PaymentIntentID),
				"payment captured but order not recorded", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeOrderNotRecorded, err,
			"payment succeeded but the order could not be recorded; contact support before retrying")
	}

	f.cart.Clear(ctx)
	if f.log != nil {
		f.log.Info(f.log.WithOrderID(ctx, order.ID), "checkout completed")
	}
	return order, nil
}

func (f *Flow) info(ctx context.Context, msg, key string, value any) {
	if f.log == nil {
		return
	}
	f.log.Info(f.log.WithField(ctx, key, value), msg)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mediguide/storefront-client/internal/api"
	"github.com/mediguide/storefront-client/internal/cart"
	"github.com/mediguide/storefront-client/internal/catalog"
	"github.com/mediguide/storefront-client/internal/checkout"
	"github.com/mediguide/storefront-client/internal/notifier"
	"github.com/mediguide/storefront-client/internal/orders"
	"github.com/mediguide/storefront-client/internal/payments"
	"github.com/mediguide/storefront-client/internal/reports"
	"github.com/mediguide/storefront-client/internal/session"
	"github.com/mediguide/storefront-client/pkg/config"
	pkgerrors "github.com/mediguide/storefront-client/pkg/errors"
	"github.com/mediguide/storefront-client/pkg/localstore"
	"github.com/mediguide/storefront-client/pkg/logger"
)

const usage = `usage: storefront <command> [flags]

catalog:
  products      list products (-search, -category, -page, -ordering)
  product       show one product (-id)
  categories    list categories

cart:
  cart show     print the cart
  cart add      add a product (-id, -qty)
  cart set      change a line quantity (-id, -qty)
  cart remove   remove a line (-id)
  cart clear    empty the cart

account:
  login         sign in (-username, -password)
  register      create an account (-username, -email, -password)
  logout        sign out and clear local state
  whoami        print the signed-in user
  change-password  rotate the account password (-current, -new)

orders:
  orders        list your orders
  order         show one order (-id)
  checkout      pay for the cart (-name, -address, -city, -state, -zip,
                -phone, -card, -exp-month, -exp-year, -cvc)

admin reports:
  reports low-stock      low stock report (-format json|csv|pdf)
  reports monthly-sales  monthly sales report (-month, -year, -format)
  reports price-update   batch price change (-category, -percent)
`

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	application, err := bootstrap(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.slots.Close(); err != nil {
			logg.Error(ctx, "error closing local store", err)
		}
	}()

	if err := application.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		exitWith(logg, ctx, err)
	}
}

// app holds the wired clients behind every subcommand.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	slots   *localstore.Store
	session *session.Manager
	catalog *catalog.Client
	cart    *cart.Store
	orders  *orders.Client
	reports *reports.Client
	flow    *checkout.Flow
}

func bootstrap(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*app, error) {
	slots, err := localstore.Open(ctx, cfg.Storage, logg)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	tokens := session.NewTokens(slots)
	transport, err := api.NewClient(cfg.API.BaseURL,
		api.WithTokenSource(tokens),
		api.WithTimeout(cfg.API.Timeout))
	if err != nil {
		return nil, err
	}
	logg.Debug(logg.WithField(ctx, "api_base_url", transport.BaseURL()), "storefront api configured")

	events := notifier.New()
	cartStore, err := cart.NewStore(slots, events, logg)
	if err != nil {
		return nil, err
	}
	events.Subscribe(func() {
		fmt.Printf("cart updated (%d items)\n", cartStore.Count(ctx))
	})

	sessionManager, err := session.NewManager(transport, slots, logg)
	if err != nil {
		return nil, err
	}
	catalogClient, err := catalog.NewClient(transport)
	if err != nil {
		return nil, err
	}
	orderClient, err := orders.NewClient(transport)
	if err != nil {
		return nil, err
	}
	reportClient, err := reports.NewClient(transport)
	if err != nil {
		return nil, err
	}
	gateway, err := payments.NewClient(transport, cfg.Payment)
	if err != nil {
		return nil, err
	}
	flow, err := checkout.NewFlow(cartStore, gateway, orderClient, cfg.Checkout.ShippingCost, logg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     logg,
		slots:   slots,
		session: sessionManager,
		catalog: catalogClient,
		cart:    cartStore,
		orders:  orderClient,
		reports: reportClient,
		flow:    flow,
	}, nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "products":
		return a.runProducts(ctx, args)
	case "product":
		return a.runProduct(ctx, args)
	case "categories":
		return a.runCategories(ctx, args)
	case "cart":
		return a.runCart(ctx, args)
	case "login":
		return a.runLogin(ctx, args)
	case "register":
		return a.runRegister(ctx, args)
	case "logout":
		return a.runLogout(ctx)
	case "whoami":
		return a.runWhoami(ctx)
	case "change-password":
		return a.runChangePassword(ctx, args)
	case "orders":
		return a.runOrders(ctx)
	case "order":
		return a.runOrder(ctx, args)
	case "checkout":
		return a.runCheckout(ctx, args)
	case "reports":
		return a.runReports(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// exitWith prints the public-facing message for the failure and exits
// non-zero. Critical failures also print the full error chain so the user
// can quote it to support.
func exitWith(logg *logger.Logger, ctx context.Context, err error) {
	meta := pkgerrors.MetadataFor(pkgerrors.CodeOf(err))
	switch meta.Severity {
	case pkgerrors.SeverityCritical:
		logg.Error(ctx, "command failed", err)
		fmt.Fprintf(os.Stderr, "error: %s\n", meta.PublicMessage)
		dump := pkgerrors.Dump(err)
		fmt.Fprintf(os.Stderr, "reference: %s\n", dump.Code)
		for _, entry := range dump.Chain {
			fmt.Fprintf(os.Stderr, "  %s\n", entry)
		}
	default:
		logg.Debug(ctx, fmt.Sprintf("command failed: %v", err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}

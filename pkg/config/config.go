package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Payment  PaymentConfig
	Storage  StorageConfig
	Checkout CheckoutConfig
	Reports  ReportsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.API.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MEDIGUIDE_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"MEDIGUIDE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MEDIGUIDE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points the clients at the storefront REST API.
type APIConfig struct {
	BaseURL string        `envconfig:"MEDIGUIDE_API_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"MEDIGUIDE_API_TIMEOUT" default:"10s"`
}

// PaymentConfig configures the external payment collaborator.
type PaymentConfig struct {
	BaseURL        string `envconfig:"MEDIGUIDE_PAYMENT_BASE_URL" required:"true"`
	PublishableKey string `envconfig:"MEDIGUIDE_PAYMENT_PUBLISHABLE_KEY"`
	Env            string `envconfig:"MEDIGUIDE_PAYMENT_ENV" default:"test"`
}

// Environment returns the normalized payment environment (test/live).
func (p PaymentConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(p.Env))
	if env == "" {
		return "test"
	}
	return env
}

// StorageConfig locates the local slot store backing cart, token, and
// profile persistence.
type StorageConfig struct {
	Path string `envconfig:"MEDIGUIDE_STORAGE_PATH" default:"mediguide.db"`
}

type CheckoutConfig struct {
	ShippingCost decimal.Decimal `envconfig:"MEDIGUIDE_SHIPPING_COST" default:"5.00"`
}

type ReportsConfig struct {
	DownloadDir string `envconfig:"MEDIGUIDE_REPORTS_DOWNLOAD_DIR" default:"."`
}

func (a *APIConfig) normalize() error {
	base := strings.TrimSpace(a.BaseURL)
	if base == "" {
		return fmt.Errorf("%s is required", EnvAPIBaseURL)
	}
	// tolerate both host-only and /api-suffixed values from older deployments
	base = strings.TrimRight(base, "/")
	base = strings.TrimSuffix(base, "/api")
	a.BaseURL = base
	return nil
}

package config

// EnvPrefix scopes every configuration variable read by Load.
const EnvPrefix = "MEDIGUIDE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "MEDIGUIDE_APP_ENV"
	EnvLogLevel     = "MEDIGUIDE_LOG_LEVEL"
	EnvAPIBaseURL   = "MEDIGUIDE_API_BASE_URL"
	EnvAPITimeout   = "MEDIGUIDE_API_TIMEOUT"
	EnvPaymentBase  = "MEDIGUIDE_PAYMENT_BASE_URL"
	EnvPaymentKey   = "MEDIGUIDE_PAYMENT_PUBLISHABLE_KEY"
	EnvPaymentEnv   = "MEDIGUIDE_PAYMENT_ENV"
	EnvStoragePath  = "MEDIGUIDE_STORAGE_PATH"
	EnvShippingCost = "MEDIGUIDE_SHIPPING_COST"
	EnvDownloadDir  = "MEDIGUIDE_REPORTS_DOWNLOAD_DIR"
)

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	// EnvPrefix namespaces every storefront environment variable.
	EnvPrefix = "GRACEBUFFER"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared with tests and deployment manifests.
const (
	EnvAppEnv     = "GRACEBUFFER_APP_ENV"
	EnvPort       = "GRACEBUFFER_APP_PORT"
	EnvAPIBaseURL = "GRACEBUFFER_API_BASE_URL"
	EnvStoreDSN   = "GRACEBUFFER_STORE_DSN"
	EnvRedisURL   = "GRACEBUFFER_REDIS_URL"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Store    StoreConfig
	Redis    RedisConfig
	Session  SessionConfig
	Checkout CheckoutConfig
	Auth     AuthConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Checkout.parseRates(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GRACEBUFFER_APP_ENV" required:"true"`
	Port         string `envconfig:"GRACEBUFFER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GRACEBUFFER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GRACEBUFFER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// APIConfig points the storefront at the remote commerce API.
type APIConfig struct {
	BaseURL  string        `envconfig:"GRACEBUFFER_API_BASE_URL" required:"true"`
	Timeout  time.Duration `envconfig:"GRACEBUFFER_API_TIMEOUT" default:"10s"`
	PageSize int           `envconfig:"GRACEBUFFER_API_PAGE_SIZE" default:"20"`
}

// StoreConfig describes the client-local durable store. SQLite is the
// default so a single storefront instance needs nothing but a file path;
// postgres is selectable for shared deployments.
type StoreConfig struct {
	Driver string `envconfig:"GRACEBUFFER_STORE_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"GRACEBUFFER_STORE_DSN" default:"storefront.db"`

	MaxOpenConns    int           `envconfig:"GRACEBUFFER_STORE_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"GRACEBUFFER_STORE_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"GRACEBUFFER_STORE_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GRACEBUFFER_STORE_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GRACEBUFFER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GRACEBUFFER_REDIS_ADDR"`
	Password     string        `envconfig:"GRACEBUFFER_REDIS_PASSWORD"`
	DB           int           `envconfig:"GRACEBUFFER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GRACEBUFFER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GRACEBUFFER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GRACEBUFFER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GRACEBUFFER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GRACEBUFFER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig bounds the tab-scoped checkout state kept in Redis.
type SessionConfig struct {
	CheckoutTTLMinutes int `envconfig:"GRACEBUFFER_SESSION_CHECKOUT_TTL_MINUTES" default:"60"`
}

// CheckoutTTL returns the checkout state TTL configured in minutes.
func (s SessionConfig) CheckoutTTL() time.Duration {
	if s.CheckoutTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.CheckoutTTLMinutes) * time.Minute
}

// CheckoutConfig carries the pricing knobs used to derive order totals.
type CheckoutConfig struct {
	TaxRateRaw      string `envconfig:"GRACEBUFFER_CHECKOUT_TAX_RATE" default:"0.10"`
	ShippingFlatRaw string `envconfig:"GRACEBUFFER_CHECKOUT_SHIPPING_FLAT" default:"2.00"`

	parsed       bool
	taxRate      decimal.Decimal
	shippingFlat decimal.Decimal
}

func (c *CheckoutConfig) parseRates() error {
	rate, err := decimal.NewFromString(strings.TrimSpace(c.TaxRateRaw))
	if err != nil {
		return fmt.Errorf("parsing tax rate %q: %w", c.TaxRateRaw, err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("tax rate must be non-negative, got %s", rate)
	}
	flat, err := decimal.NewFromString(strings.TrimSpace(c.ShippingFlatRaw))
	if err != nil {
		return fmt.Errorf("parsing shipping flat %q: %w", c.ShippingFlatRaw, err)
	}
	if flat.IsNegative() {
		return fmt.Errorf("shipping flat must be non-negative, got %s", flat)
	}
	c.taxRate = rate
	c.shippingFlat = flat
	c.parsed = true
	return nil
}

// TaxRate returns the parsed tax rate. A config built without Load parses
// the raw value on demand.
func (c CheckoutConfig) TaxRate() decimal.Decimal {
	if !c.parsed {
		_ = c.parseRates()
	}
	return c.taxRate
}

// ShippingFlat returns the parsed flat shipping charge.
func (c CheckoutConfig) ShippingFlat() decimal.Decimal {
	if !c.parsed {
		_ = c.parseRates()
	}
	return c.shippingFlat
}

// AuthConfig tunes local token checks. The remote API signs and verifies
// tokens; the storefront only inspects expiry with some clock leeway.
type AuthConfig struct {
	TokenLeeway time.Duration `envconfig:"GRACEBUFFER_AUTH_TOKEN_LEEWAY" default:"30s"`
	LoginPath   string        `envconfig:"GRACEBUFFER_AUTH_LOGIN_PATH" default:"/pages/login.html"`
}

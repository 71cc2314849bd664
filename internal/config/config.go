package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseURL    string `env:"DATABASE_URL" envDefault:"circles.db"`

	Investment Investment `envPrefix:"INVESTMENT_"`
	Gateway    Gateway    `envPrefix:"GATEWAY_"`
	BrainTree  Braintree  `envPrefix:"BRAINTREE_"`
	Redis      Redis      `envPrefix:"REDIS_"`
	Scheduler  Scheduler  `envPrefix:"SCHEDULER_"`
	Seed       Seed       `envPrefix:"SEED_"`
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	return errors.Join(c.Investment.Validate(), c.Gateway.Validate())
}

// Investment holds the platform-wide checkout limits and mock timings.
type Investment struct {
	MinAmount       int64         `env:"MIN_AMOUNT" envDefault:"10000"`
	MaxAmount       int64         `env:"MAX_AMOUNT" envDefault:"1000000"`
	ReturnRate      string        `env:"RETURN_RATE" envDefault:"0.15"`
	ProcessingDelay time.Duration `env:"PROCESSING_DELAY" envDefault:"2s"`
	DisplayTimeout  time.Duration `env:"DISPLAY_TIMEOUT" envDefault:"2500ms"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
}

// Rate parses ReturnRate.
func (i Investment) Rate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(i.ReturnRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid INVESTMENT_RETURN_RATE %q: %w", i.ReturnRate, err)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("INVESTMENT_RETURN_RATE %s is negative", rate)
	}
	return rate, nil
}

func (i Investment) Validate() error {
	var errs []error
	if i.MinAmount <= 0 {
		errs = append(errs, fmt.Errorf("INVESTMENT_MIN_AMOUNT must be positive, got %d", i.MinAmount))
	}
	if i.MinAmount > i.MaxAmount {
		errs = append(errs, fmt.Errorf("INVESTMENT_MIN_AMOUNT %d exceeds INVESTMENT_MAX_AMOUNT %d", i.MinAmount, i.MaxAmount))
	}
	if _, err := i.Rate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

type Gateway struct {
	Provider string `env:"PROVIDER" envDefault:"mock"` // mock | braintree
}

func (g Gateway) Validate() error {
	switch g.Provider {
	case "", "mock", "braintree":
		return nil
	}
	return fmt.Errorf("unknown GATEWAY_PROVIDER %q", g.Provider)
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT" envDefault:"sandbox"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

type Redis struct {
	Addr       string        `env:"ADDR"`
	ReceiptTTL time.Duration `env:"RECEIPT_TTL" envDefault:"168h"`
}

type Scheduler struct {
	SweepInterval  time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
	BackupInterval time.Duration `env:"BACKUP_INTERVAL" envDefault:"24h"`
}

type Seed struct {
	OnStart bool `env:"ON_START" envDefault:"true"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsDevelopment() bool {
	return e.Name == "development"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Output string `env:"LOG_OUTPUT" envDefault:"stdout"` // stdout | stderr | file
	File   string `env:"LOG_FILE" envDefault:"logs/circles.log"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}

func (h HTTPServer) Address() string {
	return h.Host + ":" + h.Port
}

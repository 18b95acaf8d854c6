package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const DefaultRESTEndpoint = "https://testnet.binance.vision"

type Config struct {
	Exchange ExchangeConfig `yaml:"exchange"`
	Trading  TradingConfig  `yaml:"trading"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ExchangeConfig struct {
	APIKey         string `yaml:"api_key"`
	APISecret      string `yaml:"api_secret"`
	RESTEndpoint   string `yaml:"rest_endpoint"`
	HTTPTimeoutSec int    `yaml:"http_timeout_sec"`
}

type TradingConfig struct {
	DefaultSymbol   string `yaml:"default_symbol"`
	DefaultQuantity string `yaml:"default_quantity"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML config file, then applies environment overrides. A
// .env file in the working directory is picked up first so credentials can
// stay out of the YAML. A missing config file is fine when the environment
// provides everything.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Exchange.APIKey, "BINANCE_API_KEY")
	setFromEnv(&c.Exchange.APISecret, "BINANCE_API_SECRET")
	setFromEnv(&c.Exchange.RESTEndpoint, "BINANCE_REST_ENDPOINT")
	setFromEnv(&c.Trading.DefaultSymbol, "BINANCE_DEFAULT_SYMBOL")
	setFromEnv(&c.Trading.DefaultQuantity, "BINANCE_DEFAULT_QUANTITY")
	setFromEnv(&c.Logging.Level, "BINANCE_LOG_LEVEL")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) applyDefaults() {
	if c.Exchange.RESTEndpoint == "" {
		c.Exchange.RESTEndpoint = DefaultRESTEndpoint
	}
	if c.Exchange.HTTPTimeoutSec <= 0 {
		c.Exchange.HTTPTimeoutSec = 10
	}
	if c.Trading.DefaultSymbol == "" {
		c.Trading.DefaultSymbol = "BTCUSDT"
	}
	if c.Trading.DefaultQuantity == "" {
		c.Trading.DefaultQuantity = "0.001"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	c.Trading.DefaultSymbol = strings.ToUpper(strings.TrimSpace(c.Trading.DefaultSymbol))
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Exchange.APIKey) == "" {
		return errors.New("exchange.api_key is required (or set BINANCE_API_KEY)")
	}
	if strings.TrimSpace(c.Exchange.APISecret) == "" {
		return errors.New("exchange.api_secret is required (or set BINANCE_API_SECRET)")
	}
	u, err := url.Parse(c.Exchange.RESTEndpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("exchange.rest_endpoint %q is not a valid URL", c.Exchange.RESTEndpoint)
	}
	if c.Trading.DefaultSymbol == "" {
		return errors.New("trading.default_symbol is required")
	}
	qty, err := decimal.NewFromString(c.Trading.DefaultQuantity)
	if err != nil || qty.Sign() <= 0 {
		return fmt.Errorf("trading.default_quantity %q must be a positive number", c.Trading.DefaultQuantity)
	}
	return nil
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.Exchange.HTTPTimeoutSec) * time.Second
}

// DefaultQty returns the validated default order quantity.
func (c *Config) DefaultQty() decimal.Decimal {
	qty, err := decimal.NewFromString(c.Trading.DefaultQuantity)
	if err != nil {
		return decimal.Zero
	}
	return qty
}

// Package config loads the yaml configuration used by the command binaries
// and the api credentials from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/trexbot/gotrex/bittrex"
	"github.com/trexbot/gotrex/pkg/logger"
)

const (
	// Default trading parameters for the papertrade command.
	DefaultMarket      = "BTC-ETH"
	DefaultOrderSize   = 0.1
	DefaultPollSeconds = 15
)

// Config is the top-level yaml configuration.
type Config struct {
	Market      string  `yaml:"market"`
	OrderSize   float64 `yaml:"order_size"`
	RateOffset  float64 `yaml:"rate_offset"` // fraction below/above last price for resting orders
	PollSeconds int     `yaml:"poll_seconds"`

	Log logger.Config `yaml:"log"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Market == "" {
		c.Market = DefaultMarket
	}
	if c.OrderSize == 0 {
		c.OrderSize = DefaultOrderSize
	}
	if c.PollSeconds == 0 {
		c.PollSeconds = DefaultPollSeconds
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate rejects configurations the trading loop cannot run with.
func (c *Config) Validate() error {
	if c.OrderSize <= 0 {
		return fmt.Errorf("order_size must be positive, got %v", c.OrderSize)
	}
	if c.RateOffset < 0 || c.RateOffset >= 1 {
		return fmt.Errorf("rate_offset must be in [0, 1), got %v", c.RateOffset)
	}
	if c.PollSeconds <= 0 {
		return fmt.Errorf("poll_seconds must be positive, got %d", c.PollSeconds)
	}
	return nil
}

// PollInterval is PollSeconds as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

// Load reads path, applies defaults and validates. An empty path yields the
// default configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Credentials reads the api key pair from the environment, loading a .env
// file first when present. Returns nil when no key is configured, which
// restricts the client to public endpoints.
func Credentials() *bittrex.Credentials {
	_ = godotenv.Load()

	key := os.Getenv("BITTREX_API_KEY")
	secret := os.Getenv("BITTREX_API_SECRET")
	if key == "" || secret == "" {
		return nil
	}
	return &bittrex.Credentials{Key: key, Secret: secret}
}

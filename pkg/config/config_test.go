package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.Market != DefaultMarket {
		t.Errorf("Market default should be %s, got %s", DefaultMarket, cfg.Market)
	}
	if cfg.OrderSize != DefaultOrderSize {
		t.Errorf("OrderSize default should be %v, got %v", DefaultOrderSize, cfg.OrderSize)
	}
	if cfg.PollSeconds != DefaultPollSeconds {
		t.Errorf("PollSeconds default should be %d, got %d", DefaultPollSeconds, cfg.PollSeconds)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level default should be info, got %s", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{}
	valid.ApplyDefaults()
	if err := valid.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}

	bad := &Config{}
	bad.ApplyDefaults()
	bad.OrderSize = -1
	if err := bad.Validate(); err == nil {
		t.Error("negative order_size should fail validation")
	}

	bad = &Config{}
	bad.ApplyDefaults()
	bad.RateOffset = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("rate_offset >= 1 should fail validation")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("market: BTC-XMR\norder_size: 0.5\npoll_seconds: 30\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Market != "BTC-XMR" {
		t.Errorf("Market should be BTC-XMR, got %s", cfg.Market)
	}
	if cfg.OrderSize != 0.5 {
		t.Errorf("OrderSize should be 0.5, got %v", cfg.OrderSize)
	}
	if cfg.PollInterval() != 30*time.Second {
		t.Errorf("PollInterval should be 30s, got %v", cfg.PollInterval())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level should be debug, got %s", cfg.Log.Level)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Market != DefaultMarket {
		t.Errorf("Market should default to %s, got %s", DefaultMarket, cfg.Market)
	}
}

// Package config loads and validates simulation configuration from YAML or
// JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Jinish2170/Tradewars/market"
	"github.com/Jinish2170/Tradewars/pricing"
)

// Config is the complete simulation configuration.
type Config struct {
	Market  MarketConfig   `json:"market" yaml:"market"`
	Session SessionConfig  `json:"session" yaml:"session"`
	Pricing pricing.Params `json:"pricing" yaml:"pricing"`
	Journal JournalConfig  `json:"journal" yaml:"journal"`
	Redis   RedisConfig    `json:"redis,omitempty" yaml:"redis,omitempty"`
	Admin   AdminConfig    `json:"admin" yaml:"admin"`
}

// MarketConfig describes the trading universe and the participants.
type MarketConfig struct {
	Teams          int                 `json:"teams" yaml:"teams"`
	StartingBudget float64             `json:"starting_budget" yaml:"starting_budget"`
	Instruments    []market.Definition `json:"instruments" yaml:"instruments"`
}

// SessionConfig controls the session state machine and tick loop.
type SessionConfig struct {
	DurationSeconds  int `json:"duration_seconds" yaml:"duration_seconds"`
	MaxSessions      int `json:"max_sessions" yaml:"max_sessions"`
	ConvergenceSteps int `json:"convergence_steps" yaml:"convergence_steps"`
	SnapshotInterval int `json:"snapshot_interval" yaml:"snapshot_interval"`
}

// JournalConfig selects the persistence sink.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "sqlite", "csv" or "none"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	OrdersFile string `json:"orders_file,omitempty" yaml:"orders_file,omitempty"`
	EventsFile string `json:"events_file,omitempty" yaml:"events_file,omitempty"`
	Buffer     int    `json:"buffer,omitempty" yaml:"buffer,omitempty"`
}

// RedisConfig enables the optional latest-snapshot publisher when Addr is set.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
}

// AdminConfig holds the shared admin key for privileged operations.
type AdminConfig struct {
	Key string `json:"key" yaml:"key"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	// Environment overrides for deployment-specific values.
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if key := os.Getenv("TRADEWARS_ADMIN_KEY"); key != "" {
		cfg.Admin.Key = key
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, format chosen by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Market.Teams <= 0 {
		return fmt.Errorf("market.teams must be positive")
	}
	if c.Market.StartingBudget <= 0 {
		return fmt.Errorf("market.starting_budget must be positive")
	}
	if len(c.Market.Instruments) == 0 {
		return fmt.Errorf("market.instruments must not be empty")
	}
	seen := map[string]bool{}
	for _, d := range c.Market.Instruments {
		if d.Symbol == "" {
			return fmt.Errorf("instrument symbol is required")
		}
		if seen[d.Symbol] {
			return fmt.Errorf("duplicate instrument symbol: %s", d.Symbol)
		}
		seen[d.Symbol] = true
		if d.Price < market.MinPrice {
			return fmt.Errorf("instrument %s: price must be at least %.2f", d.Symbol, market.MinPrice)
		}
		if d.Quantity <= 0 {
			return fmt.Errorf("instrument %s: quantity must be positive", d.Symbol)
		}
	}
	if c.Session.DurationSeconds <= 0 {
		return fmt.Errorf("session.duration_seconds must be positive")
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.max_sessions must be positive")
	}
	if c.Session.ConvergenceSteps <= 0 {
		return fmt.Errorf("session.convergence_steps must be positive")
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	case "csv":
		if c.Journal.OrdersFile == "" || c.Journal.EventsFile == "" {
			return fmt.Errorf("journal.orders_file and journal.events_file required for csv journal")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv' or 'none'")
	}
	return nil
}

// Default returns a configuration with the stock universe and the standard
// classroom settings.
func Default() *Config {
	return &Config{
		Market: MarketConfig{
			Teams:          11,
			StartingBudget: 100000,
			Instruments:    market.DefaultUniverse(),
		},
		Session: SessionConfig{
			DurationSeconds:  600,
			MaxSessions:      6,
			ConvergenceSteps: 600,
			SnapshotInterval: 60,
		},
		Pricing: pricing.DefaultParams(),
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradewars.db",
		},
		Admin: AdminConfig{
			Key: "change-me",
		},
	}
}

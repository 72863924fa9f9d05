package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 11, cfg.Market.Teams)
	assert.Equal(t, 100000.0, cfg.Market.StartingBudget)
	assert.Len(t, cfg.Market.Instruments, 6)
	assert.Equal(t, 600, cfg.Session.DurationSeconds)
	assert.Equal(t, 6, cfg.Session.MaxSessions)
}

func TestSaveAndLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Market.Teams = 4
	cfg.Journal.Type = "none"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.Market.Teams)
	assert.Equal(t, "none", loaded.Journal.Type)
	assert.Equal(t, cfg.Pricing, loaded.Pricing)
	assert.Equal(t, cfg.Market.Instruments, loaded.Market.Instruments)
}

func TestSaveAndLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Session.DurationSeconds = 120
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 120, loaded.Session.DurationSeconds)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Market.Teams = 0
	require.NoError(t, cfg.SaveToFile(path))

	_, err := LoadFromFile(path)
	assert.ErrorContains(t, err, "market.teams")
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Default().SaveToFile(path))

	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("TRADEWARS_ADMIN_KEY", "from-env")

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", loaded.Redis.Addr)
	assert.Equal(t, "from-env", loaded.Admin.Key)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative budget", func(c *Config) { c.Market.StartingBudget = -1 }, "starting_budget"},
		{"no instruments", func(c *Config) { c.Market.Instruments = nil }, "instruments"},
		{"duplicate symbol", func(c *Config) {
			c.Market.Instruments = append(c.Market.Instruments, c.Market.Instruments[0])
		}, "duplicate"},
		{"empty symbol", func(c *Config) { c.Market.Instruments[0].Symbol = "" }, "symbol"},
		{"price below floor", func(c *Config) { c.Market.Instruments[0].Price = 0 }, "price"},
		{"zero quantity", func(c *Config) { c.Market.Instruments[0].Quantity = 0 }, "quantity"},
		{"zero duration", func(c *Config) { c.Session.DurationSeconds = 0 }, "duration_seconds"},
		{"zero sessions", func(c *Config) { c.Session.MaxSessions = 0 }, "max_sessions"},
		{"sqlite without path", func(c *Config) { c.Journal.DBPath = "" }, "db_path"},
		{"csv without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }, "orders_file"},
		{"unknown journal", func(c *Config) { c.Journal.Type = "postgres" }, "journal.type"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

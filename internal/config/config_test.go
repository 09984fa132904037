package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
log_level = "debug"
history_dir = "hands"

table "main" {
  seats               = 4
  small_blind         = 50
  big_blind           = 100
  seed                = 42
  decision_timeout_ms = 250

  seat "alice" {
    index    = 0
    stack    = 1000
    strategy = "aggressive"
  }

  seat "bob" {
    index = 2
    stack = 800
  }
}
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "hands", cfg.HistoryDir)
	require.Len(t, cfg.Tables, 1)

	tbl := cfg.Table("main")
	require.NotNil(t, tbl)
	assert.Equal(t, 4, tbl.Seats)
	assert.Equal(t, int64(42), tbl.Seed)
	assert.Equal(t, 250*time.Millisecond, tbl.DecisionTimeout())
	assert.Equal(t, 100, tbl.GameConfig().BigBlind)

	require.Len(t, tbl.Players, 2)
	assert.Equal(t, SeatConfig{Name: "alice", Index: 0, Stack: 1000, Strategy: "aggressive"}, tbl.Players[0])
	assert.Equal(t, "call", tbl.Players[1].Strategy, "strategy defaults to call")

	assert.Nil(t, cfg.Table("missing"))
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
table "t" {
  small_blind = 1
  big_blind   = 2
}
`), "min.hcl")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 6, cfg.Tables[0].Seats)
	assert.Zero(t, cfg.Tables[0].DecisionTimeout())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`table "t" {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL")

	_, err = Parse([]byte(`table "t" { seats = 2 }`), "missing.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())

	path := filepath.Join(dir, "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Parse([]byte(sample), "sample.hcl")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"no tables", func(c *Config) { c.Tables = nil }, "at least one table"},
		{"duplicate table", func(c *Config) { c.Tables = append(c.Tables, c.Tables[0]) }, "defined more than once"},
		{"too many seats", func(c *Config) { c.Tables[0].Seats = 11 }, "seats must be between"},
		{"big blind", func(c *Config) { c.Tables[0].BigBlind = 10 }, "below small blind"},
		{"timeout", func(c *Config) { c.Tables[0].DecisionTimeoutMS = -1 }, "timeout cannot be negative"},
		{"index", func(c *Config) { c.Tables[0].Players[1].Index = 4 }, "out of range"},
		{"shared seat", func(c *Config) { c.Tables[0].Players[1].Index = 0 }, "given to both alice and bob"},
		{"same player", func(c *Config) { c.Tables[0].Players[1].Name = "alice" }, "seated twice"},
		{"stack", func(c *Config) { c.Tables[0].Players[0].Stack = 0 }, "stack must be positive"},
		{"strategy", func(c *Config) { c.Tables[0].Players[0].Strategy = "gto" }, "invalid strategy gto"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

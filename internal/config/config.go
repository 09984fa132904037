// Package config loads table setups from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

// Config is a complete configuration file.
type Config struct {
	LogLevel   string        `hcl:"log_level,optional"`
	HistoryDir string        `hcl:"history_dir,optional"`
	Tables     []TableConfig `hcl:"table,block"`
}

// TableConfig describes one table and who sits at it.
type TableConfig struct {
	Name              string       `hcl:"name,label"`
	Seats             int          `hcl:"seats,optional"`
	SmallBlind        int          `hcl:"small_blind"`
	BigBlind          int          `hcl:"big_blind"`
	Seed              int64        `hcl:"seed,optional"`
	DecisionTimeoutMS int          `hcl:"decision_timeout_ms,optional"`
	Players           []SeatConfig `hcl:"seat,block"`
}

// SeatConfig places a named player at a seat.
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Index    int    `hcl:"index"`
	Stack    int    `hcl:"stack"`
	Strategy string `hcl:"strategy,optional"`
}

const (
	defaultLogLevel = "info"
	defaultSeats    = 6
	defaultStrategy = "call"
)

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Default is a six-handed 50/100 table of bots.
func Default() *Config {
	players := make([]SeatConfig, 0, defaultSeats)
	for i, strategy := range []string{"aggressive", "call", "random", "call", "aggressive", "fold"} {
		players = append(players, SeatConfig{
			Name:     fmt.Sprintf("bot%d", i+1),
			Index:    i,
			Stack:    10000,
			Strategy: strategy,
		})
	}
	return &Config{
		LogLevel: defaultLogLevel,
		Tables: []TableConfig{{
			Name:       "main",
			Seats:      defaultSeats,
			SmallBlind: 50,
			BigBlind:   100,
			Players:    players,
		}},
	}
}

// Load reads an HCL file. A missing file yields Default().
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse decodes HCL source; filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.Seats == 0 {
			t.Seats = defaultSeats
		}
		for j := range t.Players {
			if t.Players[j].Strategy == "" {
				t.Players[j].Strategy = defaultStrategy
			}
		}
	}
}

// Validate checks the configuration for mistakes the engine would reject
// later.
func (c *Config) Validate() error {
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	if len(c.Tables) == 0 {
		return errors.New("at least one table must be configured")
	}

	names := map[string]bool{}
	for _, t := range c.Tables {
		if names[t.Name] {
			return fmt.Errorf("table %s: defined more than once", t.Name)
		}
		names[t.Name] = true
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks one table block.
func (t TableConfig) Validate() error {
	if err := t.GameConfig().Validate(); err != nil {
		return fmt.Errorf("table %s: %w", t.Name, err)
	}
	if t.DecisionTimeoutMS < 0 {
		return fmt.Errorf("table %s: decision timeout cannot be negative", t.Name)
	}

	taken := map[int]string{}
	players := map[string]bool{}
	for _, p := range t.Players {
		if p.Index < 0 || p.Index >= t.Seats {
			return fmt.Errorf("table %s: seat %s: index %d out of range", t.Name, p.Name, p.Index)
		}
		if other, ok := taken[p.Index]; ok {
			return fmt.Errorf("table %s: seat %d given to both %s and %s", t.Name, p.Index, other, p.Name)
		}
		taken[p.Index] = p.Name
		if players[p.Name] {
			return fmt.Errorf("table %s: player %s seated twice", t.Name, p.Name)
		}
		players[p.Name] = true
		if p.Stack <= 0 {
			return fmt.Errorf("table %s: seat %s: stack must be positive", t.Name, p.Name)
		}
		if !bot.Valid(p.Strategy) {
			return fmt.Errorf("table %s: seat %s: invalid strategy %s", t.Name, p.Name, p.Strategy)
		}
	}
	return nil
}

// GameConfig converts the table block into engine settings.
func (t TableConfig) GameConfig() game.Config {
	return game.Config{Seats: t.Seats, SmallBlind: t.SmallBlind, BigBlind: t.BigBlind}
}

// DecisionTimeout is zero when decisions are not timed.
func (t TableConfig) DecisionTimeout() time.Duration {
	return time.Duration(t.DecisionTimeoutMS) * time.Millisecond
}

// Table returns the named table block, or nil.
func (c *Config) Table(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

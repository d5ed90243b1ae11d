// Package config loads the HCL configuration file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-coach/internal/bot"
	"github.com/lox/holdem-coach/internal/game"
)

// DefaultFile is the configuration file read when no path is given.
const DefaultFile = "holdem.hcl"

// Config is the complete configuration.
type Config struct {
	Game GameSettings
	Log  LogSettings
}

// GameSettings configures the table.
type GameSettings struct {
	Difficulty    string `hcl:"difficulty,optional"`
	Opponents     int    `hcl:"opponents,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	ThinkDelayMS  *int   `hcl:"think_delay_ms,optional"`
	Seed          int64  `hcl:"seed,optional"` // 0 picks a seed from the clock
}

// LogSettings configures logging.
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// file is the on-disk layout; both blocks may be omitted.
type file struct {
	Game *GameSettings `hcl:"game,block"`
	Log  *LogSettings  `hcl:"log,block"`
}

const (
	defaultDifficulty    = "beginner"
	defaultOpponents     = 3
	defaultBigBlind      = 10
	defaultStartingChips = 1000
	defaultThinkDelayMS  = 1000
	defaultLogLevel      = "info"
)

// Default returns the default configuration.
func Default() *Config {
	delay := defaultThinkDelayMS
	return &Config{
		Game: GameSettings{
			Difficulty:    defaultDifficulty,
			Opponents:     defaultOpponents,
			BigBlind:      defaultBigBlind,
			StartingChips: defaultStartingChips,
			ThinkDelayMS:  &delay,
		},
		Log: LogSettings{Level: defaultLogLevel},
	}
}

// Load reads the configuration from filename. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults for anything unset.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if g := raw.Game; g != nil {
		if g.Difficulty != "" {
			config.Game.Difficulty = g.Difficulty
		}
		if g.Opponents != 0 {
			config.Game.Opponents = g.Opponents
		}
		if g.BigBlind != 0 {
			config.Game.BigBlind = g.BigBlind
		}
		if g.StartingChips != 0 {
			config.Game.StartingChips = g.StartingChips
		}
		if g.ThinkDelayMS != nil {
			config.Game.ThinkDelayMS = g.ThinkDelayMS
		}
		config.Game.Seed = g.Seed
	}
	if raw.Log != nil && raw.Log.Level != "" {
		config.Log.Level = raw.Log.Level
	}
	return config, nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	if _, err := bot.ParseDifficulty(c.Game.Difficulty); err != nil {
		return err
	}
	if c.Game.Opponents < 1 || c.Game.Opponents > game.MaxSeats-1 {
		return fmt.Errorf("invalid opponents: %d (want 1 to %d)", c.Game.Opponents, game.MaxSeats-1)
	}
	if c.Game.BigBlind <= 0 {
		return fmt.Errorf("invalid big_blind: %d", c.Game.BigBlind)
	}
	if c.Game.StartingChips < c.Game.BigBlind {
		return fmt.Errorf("starting_chips (%d) must be at least the big blind (%d)",
			c.Game.StartingChips, c.Game.BigBlind)
	}
	if c.Game.ThinkDelayMS != nil && *c.Game.ThinkDelayMS < 0 {
		return fmt.Errorf("invalid think_delay_ms: %d", *c.Game.ThinkDelayMS)
	}
	if _, err := log.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// Difficulty returns the parsed difficulty tier.
func (c *Config) Difficulty() bot.Difficulty {
	d, _ := bot.ParseDifficulty(c.Game.Difficulty)
	return d
}

// ThinkDelay returns the computer players' thinking delay.
func (c *Config) ThinkDelay() time.Duration {
	if c.Game.ThinkDelayMS == nil {
		return defaultThinkDelayMS * time.Millisecond
	}
	return time.Duration(*c.Game.ThinkDelayMS) * time.Millisecond
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(strings.ToLower(c.Log.Level))
	if err != nil {
		return log.InfoLevel
	}
	return level
}

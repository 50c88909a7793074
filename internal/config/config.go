// Package config provides YAML-based configuration loading with
// environment overrides for neonsums.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/neonsums/internal/engine"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Advisor AdvisorConfig `yaml:"advisor"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig defines the default session parameters.
type GameConfig struct {
	GridSize          int     `yaml:"grid_size" env:"NEON_GRID_SIZE"`
	Mode              string  `yaml:"mode" env:"NEON_MODE"`
	Spawn4Probability float64 `yaml:"spawn4_probability" env:"NEON_SPAWN4_PROBABILITY"`
	WinTarget         int     `yaml:"win_target" env:"NEON_WIN_TARGET"` // 0 disables the win state
	HistoryLimit      int     `yaml:"history_limit" env:"NEON_HISTORY_LIMIT"`
}

// AdvisorConfig controls the hint and commentary advisor.
type AdvisorConfig struct {
	Enabled bool          `yaml:"enabled" env:"NEON_ADVISOR_ENABLED"`
	Timeout time.Duration `yaml:"timeout" env:"NEON_ADVISOR_TIMEOUT"`
	Depth   int           `yaml:"depth" env:"NEON_ADVISOR_DEPTH"`
}

// StorageConfig locates the score database.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"NEON_DB_PATH"`
}

// ServerConfig holds the SSH and HTTP listener settings.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr" env:"NEON_SSH_ADDR"`
	HostKey     string        `yaml:"host_key" env:"NEON_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"NEON_IDLE_TIMEOUT"`
	HTTPAddr    string        `yaml:"http_addr" env:"NEON_HTTP_ADDR"`
}

// LogConfig sets the log level ("debug", "info", "warn", "error").
type LogConfig struct {
	Level string `yaml:"level" env:"NEON_LOG_LEVEL"`
}

// SessionConfig converts the game section into an engine session config.
// Rand and IDs are left nil.
func (c GameConfig) SessionConfig() engine.SessionConfig {
	mode, err := engine.ParseMode(c.Mode)
	if err != nil {
		mode = engine.Mode(c.Mode)
	}
	return engine.SessionConfig{
		Size:              engine.GridSize(c.GridSize),
		Mode:              mode,
		Spawn4Probability: c.Spawn4Probability,
		WinTarget:         c.WinTarget,
		HistoryLimit:      c.HistoryLimit,
	}
}

// Validate checks the configuration for values the engine would reject.
func (c Config) Validate() error {
	if err := engine.GridSize(c.Game.GridSize).Validate(); err != nil {
		return fmt.Errorf("%w: game.grid_size %d", ErrInvalid, c.Game.GridSize)
	}
	if _, err := engine.ParseMode(c.Game.Mode); err != nil {
		return fmt.Errorf("%w: game.mode %q", ErrInvalid, c.Game.Mode)
	}
	if c.Game.Spawn4Probability < 0 || c.Game.Spawn4Probability > 1 {
		return fmt.Errorf("%w: game.spawn4_probability %v", ErrInvalid, c.Game.Spawn4Probability)
	}
	if c.Game.WinTarget < 0 || c.Game.WinTarget&(c.Game.WinTarget-1) != 0 {
		return fmt.Errorf("%w: game.win_target %d", ErrInvalid, c.Game.WinTarget)
	}
	if c.Game.HistoryLimit < 0 {
		return fmt.Errorf("%w: game.history_limit %d", ErrInvalid, c.Game.HistoryLimit)
	}
	if c.Advisor.Timeout < 0 {
		return fmt.Errorf("%w: advisor.timeout %v", ErrInvalid, c.Advisor.Timeout)
	}
	if c.Advisor.Depth < 0 {
		return fmt.Errorf("%w: advisor.depth %d", ErrInvalid, c.Advisor.Depth)
	}
	return nil
}

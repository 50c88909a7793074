package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/neonsums/internal/engine"
)

//go:embed defaults/neonsums.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			GridSize:          int(engine.Size4),
			Mode:              string(engine.ModeFun),
			Spawn4Probability: engine.DefaultSpawn4Probability,
			WinTarget:         engine.DefaultWinTarget,
			HistoryLimit:      engine.HistoryCapacity,
		},
		Advisor: AdvisorConfig{
			Enabled: true,
			Timeout: 5 * time.Second,
			Depth:   2,
		},
		Storage: StorageConfig{
			DBPath: "~/.neonsums/scores.db",
		},
		Server: ServerConfig{
			SSHAddr:     ":23234",
			HostKey:     "~/.neonsums/host_key",
			IdleTimeout: 30 * time.Minute,
			HTTPAddr:    ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

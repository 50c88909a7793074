// neonsums is a neon-styled sliding sum puzzle for the terminal.
//
// Usage:
//
//	neonsums list              - List modes and grid sizes
//	neonsums play [mode]       - Play a mode directly
//	neonsums menu              - Start menu to pick a variant interactively
//	neonsums serve             - Start SSH server for remote play
//	neonsums api               - Start the JSON HTTP API
//	neonsums scores <variant>  - Show high scores for a variant
//	neonsums config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>  - Configuration file (default: ~/.neonsums/config.yaml)
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.neonsums/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neonsums/internal/config"
	// Import the game to register its variants
	_ "github.com/vovakirdan/neonsums/internal/games/t2048"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Loaded in PersistentPreRunE
	appCfg config.Config
	logger *log.Logger
)

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neonsums",
	Short: "Neon Sums - slide and merge numbered tiles in your terminal",
	Long: `Neon Sums is a terminal take on the sliding sum puzzle. Slide the
board, merge equal tiles and chase the 2048 tile.

Fun mode adds undo, hints and the remove and swap power-ups.
Classic mode plays the plain game.

Available commands:
  list     - Show modes and grid sizes
  play     - Play a mode directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  api      - Start the JSON HTTP API
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  neonsums menu
  neonsums play classic --size 5
  neonsums serve --ssh :2222
  neonsums api --http :8080
  neonsums scores fun_4x4`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration, applies flag overrides and builds the
// shared logger.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "neonsums",
		Level:           level,
	})
	log.SetDefault(logger)

	appCfg = cfg
	return nil
}

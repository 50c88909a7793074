package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neonsums/internal/advisor"
	"github.com/vovakirdan/neonsums/internal/core"
	"github.com/vovakirdan/neonsums/internal/engine"
	"github.com/vovakirdan/neonsums/internal/games/t2048"
	"github.com/vovakirdan/neonsums/internal/platform/tui"
	"github.com/vovakirdan/neonsums/internal/registry"
	"github.com/vovakirdan/neonsums/internal/storage"
)

var flagSize int

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode directly",
	Long: `Start playing the given mode, skipping the menu. The mode defaults
to the configured one (fun unless changed).

Controls:
  Arrows/WASD  - Slide the board
  U/Z          - Undo (fun mode)
  X            - Remove a tile (fun mode)
  C            - Swap two tiles (fun mode)
  H            - Ask for a hint (fun mode)
  K            - Keep playing after a win
  P            - Pause
  R            - Restart
  Q/Ctrl+C     - Quit

Examples:
  neonsums play
  neonsums play classic
  neonsums play fun --size 6
  neonsums play --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Grid size: 4, 5 or 6 (default from config)")
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(appCfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", appCfg.Storage.DBPath, "error", err)
		return nil
	}
	return store
}

// selectedVariant resolves the mode argument and --size flag against the
// configured defaults.
func selectedVariant(args []string) (t2048.Variant, error) {
	modeName := appCfg.Game.Mode
	if len(args) > 0 {
		modeName = args[0]
	}
	mode, err := engine.ParseMode(modeName)
	if err != nil || !registry.Exists(string(mode)) {
		return t2048.Variant{}, fmt.Errorf("unknown mode %q, run 'neonsums list' to see available modes", modeName)
	}

	size := engine.GridSize(appCfg.Game.GridSize)
	if flagSize != 0 {
		size = engine.GridSize(flagSize)
	}
	if err := size.Validate(); err != nil {
		return t2048.Variant{}, err
	}
	return t2048.Variant{Mode: mode, Size: size}, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	variant, err := selectedVariant(args)
	if err != nil {
		return err
	}

	game, err := tui.NewGame(variant, appCfg.Game)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	adv := advisor.FromConfig(appCfg.Advisor, logger)
	if _, err := tui.Run(game, store, adv, runtimeConfig()); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

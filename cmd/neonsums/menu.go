package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neonsums/internal/advisor"
	"github.com/vovakirdan/neonsums/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Pick a mode and a grid size, then Enter to play. Esc on the pause or
game over screen returns to the menu; Q quits.

Controls:
  Up/Down/j/k     - Choose mode
  Left/Right/h/l  - Choose grid size
  Enter/Space     - Start
  Tab             - Scoreboard
  Q               - Quit

Examples:
  neonsums menu
  neonsums menu --fps 30
  neonsums menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	adv := advisor.FromConfig(appCfg.Advisor, logger)
	cfg := runtimeConfig()

	// Menu loop
	for {
		result, err := tui.RunMenu(store, cfg, appCfg.Game)
		if err != nil {
			return err
		}

		// Keep any size changes
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := tui.NewGame(result.Variant, appCfg.Game)
		if err != nil {
			logger.Error("create game failed", "variant", result.Variant.Name(), "error", err)
			continue
		}

		// Fresh seed for every game unless --seed pins one
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, adv, cfg)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid"
	"github.com/vovakirdan/lasergrid/internal/platform/tui"
	"github.com/vovakirdan/lasergrid/internal/registry"
	"github.com/vovakirdan/lasergrid/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start LaserGrid with a level picker",
	Long: `Start in interactive menu mode.

Levels unlock one by one as you clear them (use --unlock-all to skip).
Leaving a level with Esc returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  Tab          - Best clears
  Q            - Quit

Examples:
  lasergrid menu
  lasergrid menu --fps 60
  lasergrid menu --db ./lasergrid.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, flagUnlockAll)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		game, err := registry.Create(lasergrid.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			break
		}
		if g, ok := game.(*lasergrid.Game); ok {
			g.StartAt(menuResult.LevelID)
		}

		back, err := tui.Run(game, store, cfg, tui.WithPlayer(flagPlayer))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			break
		}
		if !back {
			break
		}
	}

	if store != nil {
		store.Close()
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/levels"
	"github.com/vovakirdan/lasergrid/internal/platform/tui"
	"github.com/vovakirdan/lasergrid/internal/registry"
	"github.com/vovakirdan/lasergrid/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play LaserGrid",
	Long: `Start playing, from the first level or the given one. Clearing a
level lets you move on with N.

Controls:
  Arrows/WASD  - Move cursor
  Space/Enter  - Use tool (place or delete); mouse click works too
  1-4          - Tool: mirror, splitter, RGB splitter, delete
  E            - Rotate mirror
  X            - Remove item
  N            - Next level (after a clear)
  R            - Restart level
  P            - Pause
  Ctrl+S       - Screenshot to ~/.lasergrid/screenshots
  Ctrl+Y       - Copy board to clipboard
  Esc/Q        - Quit

Difficulty options:
  easy   - Receivers charge twice as fast, one extra item of each kind
  normal - As designed
  hard   - Receivers charge slower, longer error cooldown

Examples:
  lasergrid play
  lasergrid play lvl03
  lasergrid play --difficulty hard
  lasergrid play --config ./my-lasergrid.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 1 {
		catalog, err := lasergrid.Catalog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
		if _, ok := levels.Find(catalog, args[0]); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'lasergrid list' to see available levels.")
			os.Exit(1)
		}
		lasergrid.SetStartLevel(args[0])
	}

	game, err := registry.Create(lasergrid.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, runtimeConfig(), tui.WithPlayer(flagPlayer))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

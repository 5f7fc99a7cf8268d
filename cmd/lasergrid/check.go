package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lasergrid/internal/config"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/core"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/levels"
)

var (
	flagPlace []string
	flagTicks int
	flagBoard bool
)

var checkCmd = &cobra.Command{
	Use:   "check [level-id|file]",
	Short: "Verify levels and their recorded solutions",
	Long: `Without arguments, loads every level and replays its recorded solution.
With a level ID or file, checks only that level. --place replaces the
recorded solution with your own placements (kind@x,y[:orientation]).

Exit status is 1 when any level fails.

Examples:
  lasergrid check
  lasergrid check lvl03 --board
  lasergrid check ./my-level.yaml
  lasergrid check lvl01 --place mirror@5,2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().StringArrayVar(&flagPlace, "place", nil, "Placement to apply instead of the solution (repeatable)")
	checkCmd.Flags().IntVar(&flagTicks, "ticks", levels.VerifyTicks, "Ticks to simulate before giving up")
	checkCmd.Flags().BoolVar(&flagBoard, "board", false, "Print the final board")
}

func runCheck(_ *cobra.Command, args []string) {
	cfg, err := config.LoadLaserGrid(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if preset, err := config.ParseDifficulty(flagDifficulty); err == nil {
		config.ApplyLaserGridPreset(&cfg, preset)
	}

	var targets []levels.Level
	if len(args) == 1 {
		lvl, err := resolveLevel(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		targets = append(targets, lvl)
	} else {
		targets, err = lasergrid.Catalog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
	}

	failed := 0
	for _, lvl := range targets {
		if err := checkLevel(lvl, cfg); err != nil {
			failed++
			fmt.Printf("FAIL  %-10s %v\n", lvl.ID, err)
		}
	}

	fmt.Println()
	fmt.Printf("%d/%d levels ok\n", len(targets)-failed, len(targets))
	if failed > 0 {
		os.Exit(1)
	}
}

// resolveLevel accepts a catalog ID or a path to a level file.
func resolveLevel(arg string) (levels.Level, error) {
	if strings.ContainsAny(arg, `/\.`) {
		return levels.LoadPath(arg)
	}
	catalog, err := lasergrid.Catalog()
	if err != nil {
		return levels.Level{}, err
	}
	if lvl, ok := levels.Find(catalog, arg); ok {
		return lvl, nil
	}
	return levels.Level{}, fmt.Errorf("unknown level %q", arg)
}

func checkLevel(lvl levels.Level, cfg config.LaserGridConfig) error {
	lvl.Setup = cfg.PrepareSetup(lvl.Setup)
	settings := cfg.Settings()

	if len(flagPlace) == 0 && !flagBoard && flagTicks == levels.VerifyTicks {
		ticks, err := levels.Verify(lvl, settings)
		if err != nil {
			return err
		}
		fmt.Printf("ok    %-10s won at tick %d\n", lvl.ID, ticks)
		return nil
	}

	placements := lvl.Solution
	if len(flagPlace) > 0 {
		placements = make([]core.Placement, 0, len(flagPlace))
		for _, s := range flagPlace {
			p, err := core.ParsePlacement(s)
			if err != nil {
				return err
			}
			placements = append(placements, p)
		}
	}

	sim, err := lvl.NewSim(core.WithSettings(settings))
	if err != nil {
		return err
	}
	for _, p := range placements {
		if err := sim.Apply(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}

	ticks, won := sim.RunUntilWon(flagTicks, levels.VerifyStep)
	if flagBoard {
		fmt.Println(core.RenderASCII(sim))
	}
	if !won {
		return errors.New(receiverSummary(sim))
	}
	fmt.Printf("ok    %-10s won at tick %d\n", lvl.ID, ticks)
	return nil
}

func receiverSummary(sim *core.Sim) string {
	parts := make([]string, 0, len(sim.Receivers()))
	for _, r := range sim.Receivers() {
		parts = append(parts, fmt.Sprintf("%s=%s", r.ID, r.Status()))
	}
	return "not won: " + strings.Join(parts, " ")
}

// lasergrid is a terminal beam puzzle: route lasers through mirrors and
// splitters until every receiver is lit with exactly its colors.
//
// Usage:
//
//	lasergrid list              - List levels
//	lasergrid play [level]      - Play, starting from a level
//	lasergrid menu              - Level picker, scoreboard and play loop
//	lasergrid serve             - Start SSH server for remote play
//	lasergrid scores [level]    - Show best clears
//	lasergrid check [level]     - Verify level files and their solutions
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--db <path>           - Set database path (default: ~/.lasergrid/lasergrid.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard
//	--levels <dir>        - Extra level directory
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lasergrid/internal/core"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid"
	"github.com/vovakirdan/lasergrid/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagTheme      string
	flagUnlockAll  bool
	flagLogFile    string
	flagLogLevel   string
	flagPlayer     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lasergrid",
	Short: "LaserGrid - a beam routing puzzle for the terminal",
	Long: `LaserGrid is a puzzle game played in the terminal. Emitters fire
colored beams; place mirrors and splitters so every receiver sees exactly
the colors it asks for, long enough to charge.

Available commands:
  list     - Show all levels
  play     - Play, optionally from a given level
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View best clears
  check    - Verify level files and their solutions

Examples:
  lasergrid list
  lasergrid play lvl03
  lasergrid menu --unlock-all
  lasergrid serve --ssh :2222 --spectate :8080
  lasergrid check --levels ./my-levels`,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lasergrid/lasergrid.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Color theme: "+strings.Join(tui.ThemeNames(), ", "))
	rootCmd.PersistentFlags().BoolVar(&flagUnlockAll, "unlock-all", false, "Unlock every level in the picker")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Name to record clears under (default: $USER)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
}

// setup applies the global flags to the game package before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	lasergrid.SetConfigPath(flagConfig)
	lasergrid.SetDifficultyPreset(flagDifficulty)
	lasergrid.SetLevelsDir(flagLevels)

	if err := tui.SetTheme(flagTheme); err != nil {
		return err
	}

	if flagLogFile != "" {
		logger, err := openLog(flagLogFile, flagLogLevel)
		if err != nil {
			return err
		}
		lasergrid.SetLogger(logger)
	}
	return nil
}

// openLog creates a file logger. The terminal belongs to the game, so logs
// never go to stdout or stderr while playing.
func openLog(path, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "lasergrid",
		Level:           lvl,
	}), nil
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

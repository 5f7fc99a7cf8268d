package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows the bundled levels plus any found in --levels.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	catalog, err := lasergrid.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(catalog) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxNameLen := 4
	for _, lvl := range catalog {
		maxIDLen = max(maxIDLen, len(lvl.ID))
		maxNameLen = max(maxNameLen, len(lvl.Name))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxNameLen, "Name", "Inventory")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxNameLen, "----", "---------")

	for _, lvl := range catalog {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, lvl.ID, maxNameLen, lvl.Name, lvl.Setup.Inventory)
	}

	fmt.Println()
	fmt.Println("Run 'lasergrid play <id>' to play a level.")
}

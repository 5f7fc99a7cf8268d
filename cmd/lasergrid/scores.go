package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lasergrid/internal/games/lasergrid"
	"github.com/vovakirdan/lasergrid/internal/games/lasergrid/levels"
	"github.com/vovakirdan/lasergrid/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best clears",
	Long: `Without arguments, summarizes clears of every level.
With a level ID, shows the top 10 clears of that level.

Examples:
  lasergrid scores
  lasergrid scores lvl02`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	catalog, err := lasergrid.Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if err := printSummary(store, catalog); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		}
		return
	}

	lvl, ok := levels.Find(catalog, args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", args[0])
		fmt.Fprintln(os.Stderr, "Run 'lasergrid list' to see available levels.")
		return
	}
	if err := printLevel(store, lvl); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
	}
}

func printSummary(store *storage.Store, catalog []levels.Level) error {
	stats, err := store.AllLevelStats()
	if err != nil {
		return err
	}

	fmt.Println("Level progress")
	fmt.Println()
	fmt.Printf("  %-10s  %-24s  %-6s  %-10s  %s\n", "ID", "Name", "Clears", "Best items", "Best ticks")
	fmt.Printf("  %-10s  %-24s  %-6s  %-10s  %s\n", "--", "----", "------", "----------", "----------")

	cleared := 0
	for _, lvl := range catalog {
		st, ok := stats[lvl.ID]
		if !ok || st.Clears == 0 {
			fmt.Printf("  %-10s  %-24s  %-6s  %-10s  %s\n", lvl.ID, lvl.Name, "-", "-", "-")
			continue
		}
		cleared++
		fmt.Printf("  %-10s  %-24s  %-6d  %-10d  %d\n", lvl.ID, lvl.Name, st.Clears, st.BestItems, st.BestTicks)
	}

	// Clears of levels no longer in the catalog
	var orphans []string
	for id := range stats {
		if _, ok := levels.Find(catalog, id); !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		st := stats[id]
		fmt.Printf("  %-10s  %-24s  %-6d  %-10d  %d\n", id, "(missing)", st.Clears, st.BestItems, st.BestTicks)
	}

	fmt.Println()
	fmt.Printf("Cleared %d of %d levels\n", cleared, len(catalog))
	return nil
}

func printLevel(store *storage.Store, lvl levels.Level) error {
	clears, err := store.BestClears(lvl.ID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best clears - %s (%s)\n", lvl.Name, lvl.ID)
	fmt.Println()

	if len(clears) == 0 {
		fmt.Println("No clears recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'lasergrid play %s' to set the first one!\n", lvl.ID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-5s  %-6s  %s\n", "Rank", "Player", "Items", "Ticks", "Date")
	fmt.Printf("  %-4s  %-16s  %-5s  %-6s  %s\n", "----", "------", "-----", "-----", "----")
	for i, c := range clears {
		fmt.Printf("  %-4d  %-16.16s  %-5d  %-6d  %s\n", i+1, c.Player, c.ItemsPlaced, c.Ticks, c.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if high, err := store.HighScore(lvl.ID); err == nil && high > 0 {
		fmt.Printf("High score: %d\n", high)
	}
	return nil
}

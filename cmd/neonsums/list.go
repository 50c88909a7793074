package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neonsums/internal/engine"
	"github.com/vovakirdan/neonsums/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes and grid sizes",
	Long:  `Shows the registered game modes and the supported grid sizes.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Print("Grid sizes:")
	for _, s := range engine.SupportedSizes {
		fmt.Printf(" %s", s)
	}
	fmt.Println()
	fmt.Println()
	fmt.Println("Run 'neonsums play <id> --size 5' to play a variant.")
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexgems/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start in interactive menu mode.
Use arrow keys or j/k to navigate, Enter to play, Tab for high scores.
Leaving a paused or finished game returns to the menu.

Examples:
  hexgems menu
  hexgems menu --fps 30
  hexgems menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}
	return tui.RunSession(store, runtimeConfig())
}

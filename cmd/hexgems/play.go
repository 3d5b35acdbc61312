package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hexgems/internal/core"
	"github.com/vovakirdan/hexgems/internal/platform/tui"
	"github.com/vovakirdan/hexgems/internal/registry"
	"github.com/vovakirdan/hexgems/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <variant>",
	Short: "Play a variant",
	Long: `Start playing the specified variant.

Controls:
  Arrows/WASD/HJKL - Move the cursor
  Enter/Space      - Select a gem, then a neighbour to swap
  Esc/B            - Drop the selection (menu when paused or over)
  P                - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  ?                - Show all keys
  Q/Ctrl+C         - Quit

Difficulty options:
  easy    - 4 gem types, 40 moves
  normal  - 5 gem types, 30 moves
  hard    - 6 gem types, 20 moves
  endless - no move limit

Examples:
  hexgems play hexgems
  hexgems play hexgems_flower --difficulty easy
  hexgems play hexgems --config ./my-rules.yaml --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q, run 'hexgems list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store := openStoreOrWarn()
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig()); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
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

// openStoreOrWarn opens the scores database. Games still run without it.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// hexgems is a hex-grid match-three game for the terminal.
//
// Usage:
//
//	hexgems list               - List available variants
//	hexgems play <variant>     - Play a variant
//	hexgems menu               - Pick variants interactively
//	hexgems scores [variant]   - Show high scores
//	hexgems sim [variant]      - Run the cascade simulator
//	hexgems serve              - Start SSH server for remote play
//	hexgems web                - Serve the leaderboard as JSON over HTTP
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible boards
//	--db <path>           - Set database path (default: ~/.hexgems/scores.db)
//	--config <path>       - Load game rules from a YAML file
//	--difficulty <preset> - easy, normal, hard or endless
//	--log-file <path>     - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexgems/internal/config"
	"github.com/vovakirdan/hexgems/internal/games/hexgems"
	"github.com/vovakirdan/hexgems/internal/platform/tui"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string

	logFile *os.File
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hexgems",
	Short: "Hex Gems - match three on a hex grid, in your terminal",
	Long: `Hex Gems is a match-three game played on a hexagonal grid.
Swap neighbouring gems to line up three or more along any of the three
hex axes. Cleared gems fall along the gravity axis and may set off chains.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  scores   - View high scores
  sim      - Measure cascade depth on random boards
  serve    - Start SSH server for remote play
  web      - Serve scores and simulator runs as JSON

Examples:
  hexgems play hexgems
  hexgems play hexgems_flower --difficulty hard
  hexgems menu
  hexgems sim --runs 500 --save
  hexgems serve --ssh :2222`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hexgems/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, endless")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// setup applies the global flags before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	if flagFPS < 1 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	hexgems.SetConfigPath(flagConfig)
	hexgems.SetDifficultyPreset(flagDifficulty)

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		logger := log.NewWithOptions(f, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
		})
		hexgems.SetLogger(logger)
		tui.SetLogger(logger)
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

// newLogger returns a stderr logger for non-interactive commands, or the
// file logger when --log-file is set.
func newLogger(prefix string) *log.Logger {
	if logFile != nil {
		return log.NewWithOptions(logFile, log.Options{
			Level:           log.DebugLevel,
			ReportTimestamp: true,
			Prefix:          prefix,
		})
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexgems/internal/games/hexgems"
	"github.com/vovakirdan/hexgems/internal/sim"
	"github.com/vovakirdan/hexgems/internal/storage"
)

var (
	flagSimRuns       int
	flagSimSwaps      int
	flagSimWorkers    int
	flagSimNoProgress bool
	flagSimSave       bool
)

var simCmd = &cobra.Command{
	Use:   "sim [variant]",
	Short: "Measure cascade depth on random boards",
	Long: `Play random matching swaps on freshly seeded boards and report how
many cascade waves each swap set off. Boards run in parallel; results for a
given --seed do not depend on --workers.

Examples:
  hexgems sim
  hexgems sim hexgems_flower --runs 1000 --swaps 40
  hexgems sim --difficulty hard --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 200, "Number of boards to play")
	simCmd.Flags().IntVar(&flagSimSwaps, "swaps", 50, "Matching swaps per board")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Boards played in parallel")
	simCmd.Flags().BoolVar(&flagSimNoProgress, "no-progress", false, "Hide the progress bar")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the summary in the scores database")
}

func runSim(_ *cobra.Command, args []string) error {
	variant := "hexgems"
	if len(args) == 1 {
		variant = args[0]
	}
	cfg, err := hexgems.ConfigFor(variant)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := sim.Options{
		Variant: variant,
		Config:  cfg,
		Runs:    flagSimRuns,
		Swaps:   flagSimSwaps,
		Workers: flagSimWorkers,
		Seed:    seed,
		Logger:  newLogger("hexgems-sim"),
	}
	if !flagSimNoProgress {
		opts.Progress = os.Stderr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := sim.Run(ctx, opts)
	if err != nil {
		return err
	}
	if _, err := report.WriteTo(os.Stdout); err != nil {
		return err
	}

	if flagSimSave {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open scores database: %w", err)
		}
		defer store.Close()
		id, err := store.SaveSimRun(report.Record())
		if err != nil {
			return err
		}
		fmt.Printf("\nSaved as run #%d (seed %d)\n", id, seed)
	}
	return nil
}

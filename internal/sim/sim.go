// Package sim plays many seeded boards headlessly to measure how cascades
// behave: how many waves a swap triggers, whether every cascade ends on a
// stable board and how often boards run out of moves.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/cascade"
	"github.com/vovakirdan/hexgems/internal/config"
	"github.com/vovakirdan/hexgems/internal/match"
	"github.com/vovakirdan/hexgems/internal/storage"
	"github.com/vovakirdan/hexgems/internal/swap"
)

// ErrInvalidOptions is returned for non-positive run, swap or worker counts.
var ErrInvalidOptions = errors.New("sim: invalid options")

// Options controls a simulation batch.
type Options struct {
	Variant  string
	Config   config.HexGems
	Runs     int   // boards to play
	Swaps    int   // matching swaps per board
	Workers  int   // parallel boards
	Seed     int64 // board i uses Seed+i
	Progress io.Writer
	Logger   *log.Logger
}

// BoardResult is the outcome of one simulated board.
type BoardResult struct {
	Seed     int64
	Swaps    int   // matching swaps played
	Waves    []int // waves per swap
	Cleared  int
	Dead     bool // ran out of moves before the swap budget
	Unstable int  // cascades that ended with a match on the board
}

// Report aggregates a batch.
type Report struct {
	Variant     string
	Runs        int
	Swaps       int
	DeadBoards  int
	Unstable    int
	Cleared     int
	MeanWaves   float64
	StdDevWaves float64
	P95Waves    float64
	MaxWaves    int
	Histogram   map[int]int // waves -> swaps
	Elapsed     time.Duration
	Boards      []BoardResult
}

// Run plays opts.Runs boards across opts.Workers goroutines. Results are
// independent of the worker count. Cancelling ctx stops handing out boards
// and returns ctx.Err().
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Runs < 1 || opts.Swaps < 1 {
		return nil, fmt.Errorf("%w: runs and swaps must be positive", ErrInvalidOptions)
	}
	if opts.Workers < 1 {
		return nil, fmt.Errorf("%w: workers must be positive", ErrInvalidOptions)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	shape, err := opts.Config.Board.BuildShape()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	bar := pb.New(opts.Runs)
	if opts.Progress != nil {
		bar.SetWriter(opts.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	results := make([]BoardResult, opts.Runs)
	jobs := make(chan int)
	wg := new(sync.WaitGroup)
	wg.Add(opts.Workers)
	for w := 0; w < opts.Workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = playBoard(shape, opts.Config, opts.Seed+int64(i), opts.Swaps)
				bar.Increment()
			}
		}()
	}

	var cancelled error
feed:
	for i := 0; i < opts.Runs; i++ {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	elapsed := time.Since(bar.StartTime())
	bar.Finish()

	if cancelled != nil {
		return nil, cancelled
	}

	r := summarize(opts.Variant, results)
	r.Elapsed = elapsed
	logger.Info("simulation done", "variant", r.Variant, "runs", r.Runs, "swaps", r.Swaps,
		"mean_waves", r.MeanWaves, "dead", r.DeadBoards, "elapsed", elapsed)
	return r, nil
}

// playBoard seeds one board and plays random matching swaps on it, with the
// controller settling synchronously.
func playBoard(shape board.Shape, cfg config.HexGems, seed int64, swaps int) BoardResult {
	rng := rand.New(rand.NewSource(seed))
	b := board.New(shape)
	pool := board.NewPool()
	finder := match.NewLineFinder(cfg.Rules.MinRun)
	types := board.GemTypes(cfg.Gems.Types)

	b.Initialize(types, finder, pool, rng)
	resolver := cascade.New(b, finder, finder, pool, types, rng,
		cascade.WithGravity(cfg.Rules.Gravity()))
	resolver.Resolve(nil)

	res := BoardResult{Seed: seed}
	ctrl := swap.New(b, finder, resolver, swap.Immediate{},
		swap.WithOnSettled(func(o swap.Outcome) {
			if !o.Matched {
				return
			}
			res.Swaps++
			res.Waves = append(res.Waves, o.Result.Waves)
			res.Cleared += o.Result.Cleared
			if finder.HasMatch(b) {
				res.Unstable++
			}
		}))

	for attempt := 0; res.Swaps < swaps && attempt < 2*swaps; attempt++ {
		moves := finder.Moves(b)
		if len(moves) == 0 {
			res.Dead = true
			break
		}
		m := moves[rng.Intn(len(moves))]
		if !ctrl.RequestSwap(m.A, m.B) {
			break
		}
	}
	return res
}

func summarize(variant string, boards []BoardResult) *Report {
	r := &Report{
		Variant:   variant,
		Runs:      len(boards),
		Histogram: make(map[int]int),
		Boards:    boards,
	}

	var waves []float64
	for _, b := range boards {
		r.Swaps += b.Swaps
		r.Cleared += b.Cleared
		r.Unstable += b.Unstable
		if b.Dead {
			r.DeadBoards++
		}
		for _, w := range b.Waves {
			waves = append(waves, float64(w))
			r.Histogram[w]++
			r.MaxWaves = max(r.MaxWaves, w)
		}
	}

	if len(waves) > 0 {
		r.MeanWaves, r.StdDevWaves = stat.PopMeanStdDev(waves, nil)
		sort.Float64s(waves)
		r.P95Waves = stat.Quantile(0.95, stat.Empirical, waves, nil)
	}
	return r
}

// Record converts the report into a storage row.
func (r *Report) Record() storage.SimRun {
	return storage.SimRun{
		Variant:     r.Variant,
		Runs:        r.Runs,
		Swaps:       r.Swaps,
		MeanWaves:   r.MeanWaves,
		StdDevWaves: r.StdDevWaves,
		P95Waves:    r.P95Waves,
		MaxWaves:    r.MaxWaves,
	}
}

package sim

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/hexgems/internal/config"
)

func testOptions() Options {
	return Options{
		Variant: "hexgems",
		Config:  config.Default(),
		Runs:    6,
		Swaps:   10,
		Workers: 2,
		Seed:    1,
	}
}

func TestRunReachesStableBoards(t *testing.T) {
	shapes := map[string]func(*config.HexGems){
		"rect":   func(*config.HexGems) {},
		"flower": func(c *config.HexGems) { c.Board.Shape = config.ShapeFlower },
		"nw-se":  func(c *config.HexGems) { c.Rules.GravityAxis = "nw-se" },
		"ne-sw":  func(c *config.HexGems) { c.Rules.GravityAxis = "ne-sw" },
	}

	for name, modify := range shapes {
		t.Run(name, func(t *testing.T) {
			opts := testOptions()
			modify(&opts.Config)

			r, err := Run(context.Background(), opts)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			if r.Runs != opts.Runs || len(r.Boards) != opts.Runs {
				t.Errorf("Runs = %d, boards = %d, want %d", r.Runs, len(r.Boards), opts.Runs)
			}
			if r.Unstable != 0 {
				t.Errorf("%d cascades ended on an unstable board", r.Unstable)
			}
			if r.Swaps == 0 {
				t.Fatal("no swaps were played")
			}
			if r.MeanWaves < 1 || r.MaxWaves < 1 {
				t.Errorf("every matching swap clears at least one wave: mean=%v max=%d", r.MeanWaves, r.MaxWaves)
			}
			if r.P95Waves > float64(r.MaxWaves) {
				t.Errorf("P95 %v above max %d", r.P95Waves, r.MaxWaves)
			}
			if r.Cleared < 3*r.Swaps {
				t.Errorf("cleared %d gems over %d swaps, want at least 3 per swap", r.Cleared, r.Swaps)
			}

			total := 0
			for _, n := range r.Histogram {
				total += n
			}
			if total != r.Swaps {
				t.Errorf("histogram counts %d swaps, want %d", total, r.Swaps)
			}
		})
	}
}

func TestRunIndependentOfWorkers(t *testing.T) {
	one := testOptions()
	one.Workers = 1
	many := testOptions()
	many.Workers = 4

	a, err := Run(context.Background(), one)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	b, err := Run(context.Background(), many)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if !reflect.DeepEqual(a.Boards, b.Boards) {
		t.Error("board results depend on the worker count")
	}
	if a.MeanWaves != b.MeanWaves || a.P95Waves != b.P95Waves {
		t.Errorf("summary differs: %v/%v vs %v/%v", a.MeanWaves, a.P95Waves, b.MeanWaves, b.P95Waves)
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"no runs", func(o *Options) { o.Runs = 0 }},
		{"no swaps", func(o *Options) { o.Swaps = 0 }},
		{"no workers", func(o *Options) { o.Workers = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.modify(&opts)
			if _, err := Run(context.Background(), opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Run() error = %v, want ErrInvalidOptions", err)
			}
		})
	}

	opts := testOptions()
	opts.Config.Gems.Types = 1
	if _, err := Run(context.Background(), opts); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("Run() error = %v, want ErrInvalidConfig", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := testOptions()
	opts.Runs = 1000
	if _, err := Run(ctx, opts); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestSummarize(t *testing.T) {
	r := summarize("x", []BoardResult{
		{Swaps: 2, Waves: []int{1, 3}, Cleared: 9},
		{Swaps: 2, Waves: []int{1, 1}, Cleared: 6, Dead: true},
	})

	if r.Swaps != 4 || r.Cleared != 15 || r.DeadBoards != 1 {
		t.Errorf("totals = %+v", r)
	}
	if r.MeanWaves != 1.5 {
		t.Errorf("MeanWaves = %v, want 1.5", r.MeanWaves)
	}
	if r.MaxWaves != 3 {
		t.Errorf("MaxWaves = %d, want 3", r.MaxWaves)
	}
	if r.Histogram[1] != 3 || r.Histogram[3] != 1 {
		t.Errorf("Histogram = %v", r.Histogram)
	}

	rec := r.Record()
	if rec.Variant != "x" || rec.Swaps != 4 || rec.MaxWaves != 3 {
		t.Errorf("Record() = %+v", rec)
	}
}

func TestReportWriteTo(t *testing.T) {
	r := summarize("hexgems", []BoardResult{
		{Swaps: 1200, Waves: repeat(1, 1200), Cleared: 3600},
	})

	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Cascade simulation", "hexgems", "1,200", "3,600", "Waves per swap", "1 wave(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestTableLinesShareWidth(t *testing.T) {
	keys := []string{"a", "longer key", "宝石"}
	vals := map[string]string{"a": "1", "longer key": "22", "宝石": "333"}

	for _, title := range []string{"T", "A title much wider than the columns"} {
		lines := strings.Split(strings.TrimRight(table(title, keys, vals), "\n"), "\n")
		want := runewidth.StringWidth(lines[0])
		for _, l := range lines {
			if got := runewidth.StringWidth(l); got != want {
				t.Errorf("title %q: line %q has width %d, want %d", title, l, got, want)
			}
		}
	}
}

func repeat(v, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

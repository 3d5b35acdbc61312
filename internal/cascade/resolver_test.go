package cascade

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/hex"
	"github.com/vovakirdan/hexgems/internal/match"
)

type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

type snap struct {
	from, to hex.Coord
}

type recordingPresenter struct {
	snaps []snap
}

func (p *recordingPresenter) Snap(_ *board.Gem, from, to hex.Coord) {
	p.snaps = append(p.snaps, snap{from, to})
}

const (
	R = board.Ruby
	S = board.Sapphire
	E = board.Emerald
	T = board.Topaz
)

func fill(t *testing.T, rows [][]board.GemType) (*board.Board, *board.Pool) {
	t.Helper()
	b := board.New(board.Rect(len(rows[0]), len(rows)))
	pool := board.NewPool()
	for y, row := range rows {
		for x, typ := range row {
			b.Set(hex.C(x, y), pool.Create(typ, hex.C(x, y)))
		}
	}
	return b, pool
}

func checkInvariants(t *testing.T, b *board.Board, f *match.LineFinder) {
	t.Helper()
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
	if b.Occupied() != b.Len() {
		t.Errorf("Occupied() = %d, want %d", b.Occupied(), b.Len())
	}
	if m := f.FindMatches(b); len(m) != 0 {
		t.Errorf("board not stable, matches at %v", m)
	}
}

func TestCompactColumnPacksToBottom(t *testing.T) {
	b := board.New(board.Rect(5, 1))
	pool := board.NewPool()
	g0 := pool.Create(R, hex.C(0, 0))
	g2 := pool.Create(S, hex.C(2, 0))
	g4 := pool.Create(E, hex.C(4, 0))
	b.Set(hex.C(0, 0), g0)
	b.Set(hex.C(2, 0), g2)
	b.Set(hex.C(4, 0), g4)

	p := &recordingPresenter{}
	r := New(b, match.NewLineFinder(3), nil, pool, board.GemTypes(3), firstRand{}, WithPresenter(p))
	col := r.Columns()[0]

	moved, write := r.CompactColumn(col)
	if moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}
	if write != 3 {
		t.Errorf("write = %d, want 3", write)
	}

	want := []*board.Gem{g0, g2, g4, nil, nil}
	for i, c := range col {
		got, _ := b.Get(c)
		if got != want[i] {
			t.Errorf("position %d holds %v, want %v", i, got, want[i])
		}
	}

	wantSnaps := []snap{
		{hex.C(2, 0), hex.C(1, 0)},
		{hex.C(4, 0), hex.C(2, 0)},
	}
	if len(p.snaps) != len(wantSnaps) {
		t.Fatalf("snaps = %v, want %v", p.snaps, wantSnaps)
	}
	for i := range wantSnaps {
		if p.snaps[i] != wantSnaps[i] {
			t.Errorf("snap %d = %v, want %v", i, p.snaps[i], wantSnaps[i])
		}
	}
}

func TestClearSkipsEmptyCells(t *testing.T) {
	b, pool := fill(t, [][]board.GemType{{R, S, E}})
	g, _ := b.Get(hex.C(1, 0))
	pool.Destroy(g)
	b.Set(hex.C(1, 0), nil)

	r := New(b, match.NewLineFinder(3), nil, pool, board.GemTypes(3), firstRand{})
	n := r.Clear([]hex.Coord{hex.C(0, 0), hex.C(1, 0), hex.C(7, 7)})
	if n != 1 {
		t.Errorf("Clear() = %d, want 1", n)
	}
	if _, ok := b.TryGet(hex.C(0, 0)); ok {
		t.Error("(0,0) should be empty after Clear")
	}
	if pool.Live() != 1 {
		t.Errorf("pool has %d live gems, want 1", pool.Live())
	}
}

func TestResolveSingleWave(t *testing.T) {
	b, pool := fill(t, [][]board.GemType{
		{R, R, R, S},
		{T, E, T, E},
		{S, T, S, T},
	})
	survivor, _ := b.Get(hex.C(3, 0))
	f := match.NewLineFinder(3)

	var waves []Wave
	r := New(b, f, f, pool, board.GemTypes(4), firstRand{},
		WithWaveHook(func(w Wave) { waves = append(waves, w) }))

	res, ok := r.Resolve(nil)
	if !ok {
		t.Fatal("Resolve() refused to run")
	}
	if res.Waves != 1 || res.Cleared != 3 || res.Moved != 1 || res.Spawned != 3 {
		t.Errorf("Resolve() = %+v, want 1 wave, 3 cleared, 1 moved, 3 spawned", res)
	}
	if len(waves) != 1 || waves[0].Index != 1 {
		t.Errorf("wave hook calls = %+v", waves)
	}

	if g, _ := b.Get(hex.C(0, 0)); g != survivor {
		t.Error("the surviving sapphire should have fallen to (0,0)")
	}
	wantRow := []board.GemType{S, S, R, R}
	for x, want := range wantRow {
		got, _ := b.TypeAt(hex.C(x, 0))
		if got != want {
			t.Errorf("row 0 cell %d = %v, want %v", x, got, want)
		}
	}
	if pool.Live() != b.Len() {
		t.Errorf("pool has %d live gems, want %d", pool.Live(), b.Len())
	}
	checkInvariants(t, b, f)
}

func TestResolveWithoutMatchesIsNoop(t *testing.T) {
	b, pool := fill(t, [][]board.GemType{
		{R, S, R},
		{E, T, E},
		{S, R, S},
	})
	before := b.Types()
	f := match.NewLineFinder(3)
	r := New(b, f, f, pool, board.GemTypes(4), firstRand{})

	res, ok := r.Resolve(nil)
	if !ok || res.Waves != 0 {
		t.Errorf("Resolve() = %+v, %v; want zero waves", res, ok)
	}
	for c, typ := range b.Types() {
		if before[c] != typ {
			t.Errorf("cell %v changed from %v to %v", c, before[c], typ)
		}
	}
}

func TestResolveIsNotReentrant(t *testing.T) {
	b, pool := fill(t, [][]board.GemType{
		{R, R, R, S},
		{T, E, T, E},
		{S, T, S, T},
	})
	f := match.NewLineFinder(3)

	var r *Resolver
	nested := true
	r = New(b, f, f, pool, board.GemTypes(4), firstRand{},
		WithWaveHook(func(Wave) {
			if !r.IsResolving() {
				t.Error("IsResolving() should be true inside a wave")
			}
			_, nested = r.Resolve(nil)
		}))

	if _, ok := r.Resolve(nil); !ok {
		t.Fatal("outer Resolve() refused to run")
	}
	if nested {
		t.Error("nested Resolve() should be rejected")
	}
	if r.IsResolving() {
		t.Error("IsResolving() should be false after Resolve returns")
	}
}

func TestResolveRandomBoardsReachStableState(t *testing.T) {
	f := match.NewLineFinder(3)
	shapes := []board.Shape{board.Rect(7, 8), board.Flower(3)}

	for _, axis := range hex.Axes {
		for _, shape := range shapes {
			for seed := int64(1); seed <= 5; seed++ {
				rng := rand.New(rand.NewSource(seed))
				b := board.New(shape)
				pool := board.NewPool()
				types := board.GemTypes(5)

				// Seed without a placer so the board starts full of matches.
				b.Initialize(types, nil, pool, rng)

				r := New(b, f, f, pool, types, rng, WithGravity(axis))
				if _, ok := r.Resolve(nil); !ok {
					t.Fatalf("axis %v seed %d: Resolve() refused to run", axis, seed)
				}
				checkInvariants(t, b, f)
				if pool.Live() != b.Len() {
					t.Errorf("axis %v seed %d: %d live gems for %d cells", axis, seed, pool.Live(), b.Len())
				}
			}
		}
	}
}

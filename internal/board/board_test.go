package board

import (
	"errors"
	"testing"

	"github.com/vovakirdan/hexgems/internal/hex"
)

// firstRand always picks index 0, making type selection fully predictable.
type firstRand struct{}

func (firstRand) Intn(int) int { return 0 }

// lastRand always picks the last index.
type lastRand struct{}

func (lastRand) Intn(n int) int { return n - 1 }

// westPlacer rejects a type equal to the gem directly west of the cell.
type westPlacer struct{}

func (westPlacer) WouldFormLine(c hex.Coord, t GemType, b *Board) bool {
	west, ok := b.TypeAt(hex.Step(c, hex.AxisEW, false))
	return ok && west == t
}

// rejectAll refuses every type.
type rejectAll struct{}

func (rejectAll) WouldFormLine(hex.Coord, GemType, *Board) bool { return true }

func TestNewBoardHasEveryCellEmpty(t *testing.T) {
	b := New(Rect(4, 3))

	if b.Len() != 12 {
		t.Fatalf("expected 12 cells, got %d", b.Len())
	}
	for _, c := range b.Cells() {
		g, err := b.Get(c)
		if err != nil {
			t.Fatalf("Get(%v) failed: %v", c, err)
		}
		if g != nil {
			t.Errorf("cell %v should start empty", c)
		}
	}
	if b.Occupied() != 0 {
		t.Errorf("Occupied() = %d, want 0", b.Occupied())
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() failed on empty board: %v", err)
	}
}

func TestCellsOrderedByRowThenColumn(t *testing.T) {
	b := New(Rect(3, 3))
	cells := b.Cells()
	for i := 1; i < len(cells); i++ {
		if !hex.Less(cells[i-1], cells[i]) {
			t.Errorf("cells out of order at %d: %v then %v", i, cells[i-1], cells[i])
		}
	}
}

func TestGetInvalidCell(t *testing.T) {
	b := New(Rect(2, 2))

	_, err := b.Get(hex.C(5, 5))
	if err == nil {
		t.Fatal("Get on an invalid cell should fail")
	}
	if !errors.Is(err, ErrInvalidCell) {
		t.Errorf("expected ErrInvalidCell, got %v", err)
	}

	if _, ok := b.TryGet(hex.C(5, 5)); ok {
		t.Error("TryGet on an invalid cell should report false")
	}
}

func TestSetAndTryGet(t *testing.T) {
	b := New(Rect(2, 2))
	pool := NewPool()
	g := pool.Create(Topaz, hex.C(1, 1))

	b.Set(hex.C(1, 1), g)
	got, ok := b.TryGet(hex.C(1, 1))
	if !ok || got != g {
		t.Fatalf("TryGet(1,1) = %v, %v; want the placed gem", got, ok)
	}
	if typ, ok := b.TypeAt(hex.C(1, 1)); !ok || typ != Topaz {
		t.Errorf("TypeAt(1,1) = %v, %v; want Topaz", typ, ok)
	}

	// Invalid cells are ignored and do not grow the board.
	b.Set(hex.C(9, 9), pool.Create(Ruby, hex.C(9, 9)))
	if b.Has(hex.C(9, 9)) {
		t.Error("Set must not add invalid cells")
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestTryGetEmptyVersusInvalid(t *testing.T) {
	b := New(Rect(2, 2))
	for _, c := range []hex.Coord{hex.C(0, 0), hex.C(7, 7)} {
		if _, ok := b.TryGet(c); ok {
			t.Errorf("TryGet(%v) = true on an empty board", c)
		}
	}
	if !b.Has(hex.C(0, 0)) || b.Has(hex.C(7, 7)) {
		t.Error("Has should separate empty cells from cells off the board")
	}
}

func TestSwap(t *testing.T) {
	b := New(Rect(2, 1))
	pool := NewPool()
	a := pool.Create(Ruby, hex.C(0, 0))
	c := pool.Create(Pearl, hex.C(1, 0))
	b.Set(hex.C(0, 0), a)
	b.Set(hex.C(1, 0), c)

	b.Swap(hex.C(0, 0), hex.C(1, 0))
	if g, _ := b.TryGet(hex.C(0, 0)); g != c {
		t.Error("cell (0,0) should hold the pearl after swap")
	}
	if g, _ := b.TryGet(hex.C(1, 0)); g != a {
		t.Error("cell (1,0) should hold the ruby after swap")
	}

	b.Swap(hex.C(0, 0), hex.C(1, 0))
	if g, _ := b.TryGet(hex.C(0, 0)); g != a {
		t.Error("swapping twice should restore the original arrangement")
	}
}

func TestValidateDetectsDuplicate(t *testing.T) {
	b := New(Rect(2, 1))
	g := NewPool().Create(Emerald, hex.C(0, 0))
	b.Set(hex.C(0, 0), g)
	b.Set(hex.C(1, 0), g)

	err := b.Validate()
	if !errors.Is(err, ErrDuplicateGem) {
		t.Errorf("expected ErrDuplicateGem, got %v", err)
	}
}

func TestColumnsEastWest(t *testing.T) {
	b := New(Rect(3, 4))
	cols := b.Columns(hex.AxisEW)

	if len(cols) != 4 {
		t.Fatalf("expected 4 columns, got %d", len(cols))
	}
	for y, col := range cols {
		if len(col) != 3 {
			t.Fatalf("column %d: expected 3 cells, got %d", y, len(col))
		}
		for x, c := range col {
			if c != hex.C(x, y) {
				t.Errorf("column %d position %d = %v, want %v", y, x, c, hex.C(x, y))
			}
		}
	}
}

func TestColumnsKeepHoles(t *testing.T) {
	shape, err := Mask([]string{
		"#.##",
		"####",
	})
	if err != nil {
		t.Fatalf("Mask failed: %v", err)
	}
	b := New(shape)
	cols := b.Columns(hex.AxisEW)

	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(cols))
	}
	want := []hex.Coord{hex.C(0, 0), hex.C(2, 0), hex.C(3, 0)}
	if len(cols[0]) != len(want) {
		t.Fatalf("row 0 column = %v, want %v", cols[0], want)
	}
	for i := range want {
		if cols[0][i] != want[i] {
			t.Errorf("row 0 column = %v, want %v", cols[0], want)
			break
		}
	}
}

func TestColumnsDiagonalCoverBoard(t *testing.T) {
	b := New(Rect(4, 5))
	for _, axis := range []hex.Axis{hex.AxisNESW, hex.AxisNWSE} {
		seen := make(map[hex.Coord]bool)
		for _, col := range b.Columns(axis) {
			for i, c := range col {
				if seen[c] {
					t.Errorf("%v: cell %v in two columns", axis, c)
				}
				seen[c] = true
				if i > 0 && hex.Step(col[i-1], axis, true) != c {
					t.Errorf("%v: %v does not follow %v", axis, c, col[i-1])
				}
			}
		}
		if len(seen) != b.Len() {
			t.Errorf("%v: columns cover %d cells, want %d", axis, len(seen), b.Len())
		}
	}
}

func TestInitializeFillsAndAvoidsLines(t *testing.T) {
	b := New(Rect(5, 3))
	pool := NewPool()

	b.Initialize(GemTypes(3), westPlacer{}, pool, firstRand{})

	if b.Occupied() != b.Len() {
		t.Fatalf("Occupied() = %d, want %d", b.Occupied(), b.Len())
	}
	if pool.Live() != b.Len() {
		t.Errorf("pool has %d live gems, want %d", pool.Live(), b.Len())
	}
	for _, c := range b.Cells() {
		here, _ := b.TypeAt(c)
		if west, ok := b.TypeAt(hex.Step(c, hex.AxisEW, false)); ok && west == here {
			t.Errorf("placer was ignored at %v: both %v", c, here)
		}
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}

	// Re-initializing releases the old gems.
	b.Initialize(GemTypes(3), westPlacer{}, pool, firstRand{})
	if pool.Live() != b.Len() {
		t.Errorf("after re-init pool has %d live gems, want %d", pool.Live(), b.Len())
	}
}

func TestChooseTypeFallsBackToAnyType(t *testing.T) {
	b := New(Rect(1, 1))
	types := GemTypes(4)

	got := ChooseType(hex.C(0, 0), types, rejectAll{}, b, lastRand{})
	if got != types[3] {
		t.Errorf("fallback picked %v, want %v", got, types[3])
	}

	got = ChooseType(hex.C(0, 0), types, nil, b, lastRand{})
	if got != types[3] {
		t.Errorf("nil placer picked %v, want %v", got, types[3])
	}
}

func TestGemTypesClamp(t *testing.T) {
	if n := len(GemTypes(0)); n != 1 {
		t.Errorf("GemTypes(0) has %d types, want 1", n)
	}
	if n := len(GemTypes(99)); n != MaxTypes {
		t.Errorf("GemTypes(99) has %d types, want %d", n, MaxTypes)
	}
}

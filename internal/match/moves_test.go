package match

import (
	"testing"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/hex"
)

func TestMovesFindsCompletingSwap(t *testing.T) {
	b, _ := fill(t, [][]board.GemType{
		{R, R, S, R},
		{T, E, T, E},
		{S, T, S, T},
	})
	f := NewLineFinder(3)
	before := b.Types()

	moves := f.Moves(b)
	want := Move{A: hex.C(2, 0), B: hex.C(3, 0)}
	found := false
	for _, m := range moves {
		if m == want {
			found = true
		}
		// Every reported move must really produce a match.
		b.Swap(m.A, m.B)
		if !f.HasMatch(b) {
			t.Errorf("move %v does not form a run", m)
		}
		b.Swap(m.A, m.B)
	}
	if !found {
		t.Errorf("Moves() = %v, missing %v", moves, want)
	}
	if !f.HasMove(b) {
		t.Error("HasMove() = false, want true")
	}

	for c, typ := range b.Types() {
		if before[c] != typ {
			t.Fatalf("board changed at %v while searching moves", c)
		}
	}
}

func TestMovesNoneOnDeadBoard(t *testing.T) {
	b, _ := fill(t, [][]board.GemType{
		{R, S, S},
	})
	f := NewLineFinder(3)

	if moves := f.Moves(b); len(moves) != 0 {
		t.Errorf("Moves() = %v, want none", moves)
	}
	if f.HasMove(b) {
		t.Error("HasMove() = true on a dead board")
	}
}

func TestMovesReportsEachPairOnce(t *testing.T) {
	b, _ := fill(t, [][]board.GemType{
		{R, R, S, R},
		{T, E, T, E},
		{S, T, S, T},
	})
	seen := make(map[[2]hex.Coord]bool)
	for _, m := range NewLineFinder(3).Moves(b) {
		key := [2]hex.Coord{m.A, m.B}
		rev := [2]hex.Coord{m.B, m.A}
		if seen[key] || seen[rev] {
			t.Errorf("move %v reported twice", m)
		}
		seen[key] = true
		if !hex.Adjacent(m.A, m.B) {
			t.Errorf("move %v is not between neighbours", m)
		}
	}
}

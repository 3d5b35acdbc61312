package match

import (
	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/hex"
)

// Move is a swap of two adjacent cells.
type Move struct {
	A, B hex.Coord
}

// Moves lists every adjacent swap that would complete a run, assuming the
// board has none to begin with. Each pair is reported once, with B the
// forward neighbour of A. The board is swapped and restored in place while
// checking.
func (f *LineFinder) Moves(b *board.Board) []Move {
	var out []Move
	f.eachMove(b, func(m Move) bool {
		out = append(out, m)
		return true
	})
	return out
}

// HasMove reports whether at least one swap would complete a run.
func (f *LineFinder) HasMove(b *board.Board) bool {
	found := false
	f.eachMove(b, func(Move) bool {
		found = true
		return false
	})
	return found
}

func (f *LineFinder) eachMove(b *board.Board, yield func(Move) bool) {
	for _, a := range b.Cells() {
		ta, ok := b.TypeAt(a)
		if !ok {
			continue
		}
		n := hex.Neighbors(a)
		for _, c := range n[:len(hex.Axes)] {
			tc, ok := b.TypeAt(c)
			if !ok || tc == ta {
				continue
			}
			if f.swapFormsLine(b, a, c) && !yield(Move{A: a, B: c}) {
				return
			}
		}
	}
}

func (f *LineFinder) swapFormsLine(b *board.Board, a, c hex.Coord) bool {
	b.Swap(a, c)
	defer b.Swap(a, c)

	ta, _ := b.TypeAt(a)
	tc, _ := b.TypeAt(c)
	return f.WouldFormLine(a, ta, b) || f.WouldFormLine(c, tc, b)
}

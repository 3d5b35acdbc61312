// Package match finds straight runs of equal gems along the three hex axes.
package match

import (
	"sort"

	"github.com/vovakirdan/hexgems/internal/board"
	"github.com/vovakirdan/hexgems/internal/hex"
)

// DefaultMinRun is the shortest run that counts as a match.
const DefaultMinRun = 3

// LineFinder reports runs of at least MinRun gems of one type lying on a
// single axis. It serves both as the match oracle for cascades and as the
// placement predicate for seeding and refill.
type LineFinder struct {
	MinRun int
}

// NewLineFinder creates a finder. Values below 2 fall back to DefaultMinRun.
func NewLineFinder(minRun int) *LineFinder {
	if minRun < 2 {
		minRun = DefaultMinRun
	}
	return &LineFinder{MinRun: minRun}
}

func (f *LineFinder) minRun() int {
	if f.MinRun < 2 {
		return DefaultMinRun
	}
	return f.MinRun
}

// FindMatches returns every cell that is part of a run, ordered by row and
// then column. Each cell appears once even if it lies on several runs.
func (f *LineFinder) FindMatches(b *board.Board) []hex.Coord {
	set := make(map[hex.Coord]struct{})
	for _, run := range f.Runs(b) {
		for _, c := range run {
			set[c] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}

	out := make([]hex.Coord, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return hex.Less(out[i], out[j])
	})
	return out
}

// Runs returns each maximal run on the board, walking from its backward end.
// Runs are ordered by their start cell, then by axis.
func (f *LineFinder) Runs(b *board.Board) [][]hex.Coord {
	minRun := f.minRun()
	var runs [][]hex.Coord

	for _, start := range b.Cells() {
		t, ok := b.TypeAt(start)
		if !ok {
			continue
		}
		for _, axis := range hex.Axes {
			// Only count from the first cell of a run.
			if prev, ok := b.TypeAt(hex.Step(start, axis, false)); ok && prev == t {
				continue
			}
			run := []hex.Coord{start}
			for c := hex.Step(start, axis, true); ; c = hex.Step(c, axis, true) {
				next, ok := b.TypeAt(c)
				if !ok || next != t {
					break
				}
				run = append(run, c)
			}
			if len(run) >= minRun {
				runs = append(runs, run)
			}
		}
	}
	return runs
}

// WouldFormLine reports whether a gem of type t at c would complete a run.
// The current occupant of c is ignored.
func (f *LineFinder) WouldFormLine(c hex.Coord, t board.GemType, b *board.Board) bool {
	minRun := f.minRun()
	for _, axis := range hex.Axes {
		n := 1 + f.count(c, t, axis, true, b) + f.count(c, t, axis, false, b)
		if n >= minRun {
			return true
		}
	}
	return false
}

func (f *LineFinder) count(c hex.Coord, t board.GemType, axis hex.Axis, forward bool, b *board.Board) int {
	n := 0
	for cur := hex.Step(c, axis, forward); ; cur = hex.Step(cur, axis, forward) {
		got, ok := b.TypeAt(cur)
		if !ok || got != t {
			return n
		}
		n++
	}
}

// HasMatch reports whether any run exists on the board.
func (f *LineFinder) HasMatch(b *board.Board) bool {
	return len(f.Runs(b)) > 0
}

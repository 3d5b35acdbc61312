package board

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/hexgems/internal/hex"
)

var (
	// ErrInvalidCell is returned when a coordinate is not part of the board.
	ErrInvalidCell = errors.New("invalid cell")

	// ErrMissingCell means a valid cell lost its entry in the mapping.
	ErrMissingCell = errors.New("missing cell entry")

	// ErrDuplicateGem means one gem handle occupies two cells.
	ErrDuplicateGem = errors.New("gem occupies two cells")
)

// Placer answers whether placing a gem of type t at c would immediately form
// a line. It must not modify the board.
type Placer interface {
	WouldFormLine(c hex.Coord, t GemType, b *Board) bool
}

// Factory creates and releases gems. Create also places the gem visually.
type Factory interface {
	Create(t GemType, c hex.Coord) *Gem
	Destroy(g *Gem)
}

// Rand is the subset of *rand.Rand used for type selection.
type Rand interface {
	Intn(n int) int
}

// Board maps every valid cell to its occupant. A nil occupant is an empty
// cell; valid cells are never absent from the map.
type Board struct {
	shape Shape
	cells []hex.Coord
	gems  map[hex.Coord]*Gem
}

// New creates a board for the given shape with every cell empty.
func New(shape Shape) *Board {
	cells := ShapeCells(shape)
	gems := make(map[hex.Coord]*Gem, len(cells))
	for _, c := range cells {
		gems[c] = nil
	}
	return &Board{
		shape: shape,
		cells: cells,
		gems:  gems,
	}
}

// Shape returns the shape the board was built from.
func (b *Board) Shape() Shape {
	return b.shape
}

// Initialize seeds every cell, row by row, with a gem whose type does not let
// the placer report a line through that cell. When every type would form a
// line, a uniformly random one is used.
func (b *Board) Initialize(types []GemType, placer Placer, factory Factory, rng Rand) {
	for _, c := range b.cells {
		if old := b.gems[c]; old != nil {
			factory.Destroy(old)
			b.gems[c] = nil
		}
	}
	for _, c := range b.cells {
		t := ChooseType(c, types, placer, b, rng)
		b.gems[c] = factory.Create(t, c)
	}
}

// ChooseType picks a gem type for c that the placer accepts, uniformly among
// the accepted ones. Falls back to a uniform pick over all types.
func ChooseType(c hex.Coord, types []GemType, placer Placer, b *Board, rng Rand) GemType {
	candidates := make([]GemType, 0, len(types))
	for _, t := range types {
		if placer == nil || !placer.WouldFormLine(c, t, b) {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) > 0 {
		return candidates[rng.Intn(len(candidates))]
	}
	return types[rng.Intn(len(types))]
}

// Has reports whether c is a valid cell.
func (b *Board) Has(c hex.Coord) bool {
	_, ok := b.gems[c]
	return ok
}

// Get returns the occupant of c, which may be nil.
// Fails with ErrInvalidCell if c is not on the board.
func (b *Board) Get(c hex.Coord) (*Gem, error) {
	g, ok := b.gems[c]
	if !ok {
		return nil, fmt.Errorf("board: %w: %v", ErrInvalidCell, c)
	}
	return g, nil
}

// TryGet returns the gem at c and true, or nil and false when c is empty or
// not on the board. Use Has to tell the two apart.
func (b *Board) TryGet(c hex.Coord) (*Gem, bool) {
	g := b.gems[c]
	return g, g != nil
}

// TypeAt returns the type of the gem at c, if there is one.
func (b *Board) TypeAt(c hex.Coord) (GemType, bool) {
	if g := b.gems[c]; g != nil {
		return g.Type, true
	}
	return 0, false
}

// Set overrides the occupant of c. Calls on invalid cells are ignored.
func (b *Board) Set(c hex.Coord, g *Gem) {
	if !b.Has(c) {
		return
	}
	b.gems[c] = g
}

// Swap exchanges the occupants of two valid cells.
func (b *Board) Swap(x, y hex.Coord) {
	if !b.Has(x) || !b.Has(y) {
		return
	}
	b.gems[x], b.gems[y] = b.gems[y], b.gems[x]
}

// Cells returns the valid cells ordered by row and then column.
// The slice is shared; callers must not modify it.
func (b *Board) Cells() []hex.Coord {
	return b.cells
}

// Len returns the number of valid cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// Occupied returns the number of non-empty cells.
func (b *Board) Occupied() int {
	n := 0
	for _, g := range b.gems {
		if g != nil {
			n++
		}
	}
	return n
}

// Columns groups the valid cells by the line they lie on along axis. Each
// column is ordered from its backward end (bottom) to its forward end (top).
// Holes in the shape do not split a column. Columns are ordered by the
// position of their line origin.
func (b *Board) Columns(axis hex.Axis) [][]hex.Coord {
	bounds := b.shape.Bounds()

	type entry struct {
		cell  hex.Coord
		index int
	}
	lines := make(map[hex.Coord][]entry)
	for _, c := range b.cells {
		origin, steps := c, 0
		for {
			prev := hex.Step(origin, axis, false)
			if prev == origin || !bounds.Contains(prev) {
				break
			}
			origin = prev
			steps++
		}
		lines[origin] = append(lines[origin], entry{cell: c, index: steps})
	}

	origins := make([]hex.Coord, 0, len(lines))
	for o := range lines {
		origins = append(origins, o)
	}
	sort.Slice(origins, func(i, j int) bool {
		return hex.Less(origins[i], origins[j])
	})

	columns := make([][]hex.Coord, 0, len(origins))
	for _, o := range origins {
		entries := lines[o]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].index < entries[j].index
		})
		col := make([]hex.Coord, len(entries))
		for i, e := range entries {
			col[i] = e.cell
		}
		columns = append(columns, col)
	}
	return columns
}

// Validate checks the board invariants: every valid cell has an entry and
// no gem occupies two cells.
func (b *Board) Validate() error {
	if len(b.gems) != len(b.cells) {
		return fmt.Errorf("board: %w: %d entries for %d cells", ErrMissingCell, len(b.gems), len(b.cells))
	}
	seen := make(map[*Gem]hex.Coord, len(b.cells))
	for _, c := range b.cells {
		g, ok := b.gems[c]
		if !ok {
			return fmt.Errorf("board: %w: %v", ErrMissingCell, c)
		}
		if g == nil {
			continue
		}
		if other, dup := seen[g]; dup {
			return fmt.Errorf("board: %w: gem %d at %v and %v", ErrDuplicateGem, g.ID, other, c)
		}
		seen[g] = c
	}
	return nil
}

// Types returns a copy of the board as a cell -> type map, omitting empty
// cells. Useful for comparisons in tests and snapshots.
func (b *Board) Types() map[hex.Coord]GemType {
	out := make(map[hex.Coord]GemType, len(b.cells))
	for _, c := range b.cells {
		if g := b.gems[c]; g != nil {
			out[c] = g.Type
		}
	}
	return out
}

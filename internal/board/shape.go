package board

import (
	"fmt"

	"github.com/vovakirdan/hexgems/internal/hex"
)

// Bounds is an inclusive rectangle of offset coordinates.
type Bounds struct {
	Min hex.Coord
	Max hex.Coord
}

// Contains reports whether c lies inside the rectangle.
func (b Bounds) Contains(c hex.Coord) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X && c.Y >= b.Min.Y && c.Y <= b.Max.Y
}

// Shape defines which cells exist on the board.
type Shape interface {
	// HasCell reports whether a tile exists at c.
	HasCell(c hex.Coord) bool

	// Bounds returns a rectangle enclosing every cell of the shape.
	Bounds() Bounds
}

// ShapeCells scans the bounds of s and returns every cell it has, ordered by
// row and then column.
func ShapeCells(s Shape) []hex.Coord {
	b := s.Bounds()
	var cells []hex.Coord
	for y := b.Min.Y; y <= b.Max.Y; y++ {
		for x := b.Min.X; x <= b.Max.X; x++ {
			c := hex.C(x, y)
			if s.HasCell(c) {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// rectShape is a full w x h block.
type rectShape struct {
	w, h int
}

// Rect returns a shape with every cell of a w x h block starting at (0,0).
func Rect(w, h int) Shape {
	return rectShape{w: w, h: h}
}

func (r rectShape) HasCell(c hex.Coord) bool {
	return c.X >= 0 && c.X < r.w && c.Y >= 0 && c.Y < r.h
}

func (r rectShape) Bounds() Bounds {
	return Bounds{Max: hex.C(r.w-1, r.h-1)}
}

// flowerShape is a regular hexagon of cells around a center.
type flowerShape struct {
	radius int
	center hex.Coord
}

// Flower returns a hexagon-shaped board: every cell within radius steps of
// the center cell (radius, radius).
func Flower(radius int) Shape {
	if radius < 0 {
		radius = 0
	}
	return flowerShape{radius: radius, center: hex.C(radius, radius)}
}

func (f flowerShape) HasCell(c hex.Coord) bool {
	if !f.Bounds().Contains(c) {
		return false
	}
	return Distance(f.center, c) <= f.radius
}

func (f flowerShape) Bounds() Bounds {
	return Bounds{Max: hex.C(2*f.radius, 2*f.radius)}
}

// maskShape reads cells from text rows.
type maskShape struct {
	cells  map[hex.Coord]bool
	bounds Bounds
}

// Mask builds a shape from text rows. Row i is Y=i and byte j is X=j; '#'
// and 'o' mark cells, anything else is a hole.
func Mask(rows []string) (Shape, error) {
	m := maskShape{cells: make(map[hex.Coord]bool)}
	maxX := -1
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == '#' || row[x] == 'o' {
				m.cells[hex.C(x, y)] = true
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	if len(m.cells) == 0 {
		return nil, fmt.Errorf("board: mask has no cells")
	}
	m.bounds = Bounds{Max: hex.C(maxX, len(rows)-1)}
	return m, nil
}

func (m maskShape) HasCell(c hex.Coord) bool {
	return m.cells[c]
}

func (m maskShape) Bounds() Bounds {
	return m.bounds
}

// Distance returns the number of steps between two cells.
func Distance(a, b hex.Coord) int {
	aq, ar := toAxial(a)
	bq, br := toAxial(b)
	dq := aq - bq
	dr := ar - br
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

// toAxial converts odd-row offset coordinates to axial (q, r).
func toAxial(c hex.Coord) (q, r int) {
	return c.X - (c.Y-(c.Y&1))/2, c.Y
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Package hex provides coordinate math for a flat-top hex grid stored in
// odd-row offset coordinates.
//
// X runs along the E-W line axis, Y is the row. Odd rows are shifted by half a
// cell, so the two diagonal axes use different offset vectors depending on
// the parity of the row a step starts from.
package hex

import "fmt"

// Coord is a cell position in offset coordinates.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Neg returns the coordinate with both components negated.
func (c Coord) Neg() Coord {
	return Coord{X: -c.X, Y: -c.Y}
}

// IsOddRow reports whether c lies on an odd row.
func IsOddRow(c Coord) bool {
	return c.Y&1 == 1
}

// Less orders coordinates by row, then by column.
func Less(a, b Coord) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

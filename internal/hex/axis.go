package hex

import (
	"fmt"
	"strings"
)

// Axis is one of the three line directions of the grid.
type Axis uint8

const (
	AxisEW   Axis = iota // E <-> W, same offsets on every row
	AxisNESW             // NE <-> SW, offsets alternate with row parity
	AxisNWSE             // NW <-> SE, offsets alternate with row parity
)

// Axes lists every line axis in index order.
var Axes = [3]Axis{AxisEW, AxisNESW, AxisNWSE}

// String returns the config name of the axis.
func (a Axis) String() string {
	switch a {
	case AxisEW:
		return "e-w"
	case AxisNESW:
		return "ne-sw"
	case AxisNWSE:
		return "nw-se"
	default:
		return "unknown"
	}
}

// ParseAxis converts a config name ("e-w", "ne-sw", "nw-se") back to an Axis.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e-w", "ew", "0":
		return AxisEW, nil
	case "ne-sw", "nesw", "1":
		return AxisNESW, nil
	case "nw-se", "nwse", "2":
		return AxisNWSE, nil
	}
	return 0, fmt.Errorf("hex: unknown axis %q", s)
}

// Fixed offset pairs. Index 0 is used on even rows, index 1 on odd rows.
var (
	neFwd  = [2]Coord{{0, +1}, {+1, +1}}
	swBack = [2]Coord{{-1, -1}, {0, -1}}
	nwFwd  = [2]Coord{{-1, +1}, {0, +1}}
	seBack = [2]Coord{{0, -1}, {+1, -1}}
)

// AxisOffsets returns the forward and backward unit offsets along axis for a
// step starting at cell. Unknown axes yield zero offsets.
func AxisOffsets(cell Coord, axis Axis) (fwd, back Coord) {
	parity := cell.Y & 1

	switch axis {
	case AxisEW:
		return Coord{+1, 0}, Coord{-1, 0}
	case AxisNESW:
		return neFwd[parity], swBack[parity]
	case AxisNWSE:
		return nwFwd[parity], seBack[parity]
	}
	return Coord{}, Coord{}
}

// Step moves one cell along axis, forward or backward, using the parity of c.
func Step(c Coord, axis Axis, forward bool) Coord {
	fwd, back := AxisOffsets(c, axis)
	if forward {
		return c.Add(fwd)
	}
	return c.Add(back)
}

// Neighbors returns the six cells adjacent to c: forward then backward along
// each axis in index order.
func Neighbors(c Coord) [6]Coord {
	var out [6]Coord
	for i, axis := range Axes {
		fwd, back := AxisOffsets(c, axis)
		out[i] = c.Add(fwd)
		out[i+3] = c.Add(back)
	}
	return out
}

// Adjacent reports whether a and b share an edge.
func Adjacent(a, b Coord) bool {
	for _, n := range Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}

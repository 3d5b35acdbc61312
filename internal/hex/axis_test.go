package hex

import "testing"

func TestAxisOffsets(t *testing.T) {
	tests := []struct {
		name     string
		cell     Coord
		axis     Axis
		wantFwd  Coord
		wantBack Coord
	}{
		{"e-w even row", C(3, 2), AxisEW, C(1, 0), C(-1, 0)},
		{"e-w odd row", C(3, 1), AxisEW, C(1, 0), C(-1, 0)},
		{"ne-sw even row", C(3, 2), AxisNESW, C(0, 1), C(-1, -1)},
		{"ne-sw odd row", C(3, 1), AxisNESW, C(1, 1), C(0, -1)},
		{"nw-se even row", C(3, 2), AxisNWSE, C(-1, 1), C(0, -1)},
		{"nw-se odd row", C(3, 1), AxisNWSE, C(0, 1), C(1, -1)},
		{"negative odd row", C(0, -1), AxisNESW, C(1, 1), C(0, -1)},
		{"unknown axis", C(0, 0), Axis(9), C(0, 0), C(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fwd, back := AxisOffsets(tc.cell, tc.axis)
			if fwd != tc.wantFwd || back != tc.wantBack {
				t.Errorf("AxisOffsets(%v, %v) = (%v, %v), want (%v, %v)",
					tc.cell, tc.axis, fwd, back, tc.wantFwd, tc.wantBack)
			}
		})
	}
}

func TestEastWestIsOppositePairOnEveryRow(t *testing.T) {
	for y := -4; y <= 4; y++ {
		fwd, back := AxisOffsets(C(0, y), AxisEW)
		if fwd != back.Neg() {
			t.Errorf("row %d: e-w forward %v is not the negation of backward %v", y, fwd, back)
		}
	}
}

func TestDiagonalPairsDependOnParity(t *testing.T) {
	for _, axis := range []Axis{AxisNESW, AxisNWSE} {
		evenFwd, evenBack := AxisOffsets(C(0, 0), axis)
		oddFwd, oddBack := AxisOffsets(C(0, 1), axis)

		if evenFwd == oddFwd || evenBack == oddBack {
			t.Errorf("%v: odd and even rows must use distinct offsets", axis)
		}
		// Forward from one parity is undone by backward from the other.
		if evenFwd != oddBack.Neg() {
			t.Errorf("%v: even forward %v != -(odd backward %v)", axis, evenFwd, oddBack)
		}
		if oddFwd != evenBack.Neg() {
			t.Errorf("%v: odd forward %v != -(even backward %v)", axis, oddFwd, evenBack)
		}
	}
}

func TestStepRoundTrip(t *testing.T) {
	for _, axis := range Axes {
		for y := -3; y <= 3; y++ {
			for x := -3; x <= 3; x++ {
				start := C(x, y)
				there := Step(start, axis, true)
				if back := Step(there, axis, false); back != start {
					t.Errorf("%v from %v: forward then backward landed on %v", axis, start, back)
				}
				there = Step(start, axis, false)
				if back := Step(there, axis, true); back != start {
					t.Errorf("%v from %v: backward then forward landed on %v", axis, start, back)
				}
			}
		}
	}
}

func TestNeighbors(t *testing.T) {
	for _, c := range []Coord{C(2, 2), C(2, 3)} {
		seen := make(map[Coord]bool)
		for _, n := range Neighbors(c) {
			if n == c {
				t.Errorf("%v listed as its own neighbor", c)
			}
			if seen[n] {
				t.Errorf("%v: duplicate neighbor %v", c, n)
			}
			seen[n] = true
			if !Adjacent(n, c) {
				t.Errorf("adjacency not symmetric between %v and %v", c, n)
			}
		}
	}

	if Adjacent(C(0, 0), C(2, 0)) {
		t.Error("cells two apart on e-w should not be adjacent")
	}
}

func TestParseAxis(t *testing.T) {
	for _, axis := range Axes {
		got, err := ParseAxis(axis.String())
		if err != nil {
			t.Fatalf("ParseAxis(%q) failed: %v", axis.String(), err)
		}
		if got != axis {
			t.Errorf("ParseAxis(%q) = %v, want %v", axis.String(), got, axis)
		}
	}

	if _, err := ParseAxis("north"); err == nil {
		t.Error("ParseAxis should reject unknown names")
	}
}

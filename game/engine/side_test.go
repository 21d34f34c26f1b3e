package engine

import (
	"testing"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		input   string
		want    Side
		wantErr bool
	}{
		{"north", North, false},
		{"up", North, false},
		{"south", South, false},
		{"down", South, false},
		{"east", East, false},
		{"right", East, false},
		{"west", West, false},
		{"left", West, false},
		{"NORTH", North, false},
		{"  West  ", West, false},
		{"", 0, true},
		{"diagonal", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSide(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSide(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSide(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSide(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSide_String(t *testing.T) {
	tests := []struct {
		side Side
		want string
	}{
		{North, "north"},
		{South, "south"},
		{East, "east"},
		{West, "west"},
	}

	for _, tt := range tests {
		if got := tt.side.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", int(tt.side), got, tt.want)
		}
	}
}

func TestSide_TransformRoundTrip(t *testing.T) {
	// toView must invert toAbs for every side, size and coordinate.
	for _, side := range Sides() {
		for _, size := range []int{2, 3, 4, 5} {
			for col := 0; col < size; col++ {
				for row := 0; row < size; row++ {
					ac, ar := side.toAbs(col, row, size)
					if ac < 0 || ac >= size || ar < 0 || ar >= size {
						t.Fatalf("%v.toAbs(%d,%d,%d) = (%d,%d) out of range",
							side, col, row, size, ac, ar)
					}
					vc, vr := side.toView(ac, ar, size)
					if vc != col || vr != row {
						t.Errorf("%v size %d: toView(toAbs(%d,%d)) = (%d,%d)",
							side, size, col, row, vc, vr)
					}
				}
			}
		}
	}
}

func TestSide_NorthIsIdentity(t *testing.T) {
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			if ac, ar := North.toAbs(col, row, 4); ac != col || ar != row {
				t.Errorf("North.toAbs(%d,%d) = (%d,%d), want identity", col, row, ac, ar)
			}
		}
	}
}

func TestSide_FarEdgeMapsToOwnEdge(t *testing.T) {
	// The view's far edge (row size-1) must land on the side's own
	// absolute edge: the top for north, the bottom for south, the
	// right column for east, the left column for west.
	const size = 4
	tests := []struct {
		side  Side
		check func(col, row int) bool
		desc  string
	}{
		{North, func(c, r int) bool { return r == size - 1 }, "top row"},
		{South, func(c, r int) bool { return r == 0 }, "bottom row"},
		{East, func(c, r int) bool { return c == size - 1 }, "right column"},
		{West, func(c, r int) bool { return c == 0 }, "left column"},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			for viewCol := 0; viewCol < size; viewCol++ {
				ac, ar := tt.side.toAbs(viewCol, size-1, size)
				if !tt.check(ac, ar) {
					t.Errorf("%v far edge view(%d,%d) maps to abs(%d,%d), want %s",
						tt.side, viewCol, size-1, ac, ar, tt.desc)
				}
			}
		})
	}
}

package engine

import (
	"fmt"
	"strings"
)

// Side identifies one of the four board edges a tilt pushes toward.
// Each side is a pure coordinate transform mapping board coordinates
// into a rotated frame where tilting toward the side becomes tilting
// toward increasing row. The tilt algorithm is written once for that
// canonical direction and applied through the transform, so all four
// directions share a single implementation.
type Side int

const (
	North Side = iota
	South
	East
	West
)

// sideNames maps each side to its canonical name.
var sideNames = map[Side]string{
	North: "north",
	South: "south",
	East:  "east",
	West:  "west",
}

func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// ParseSide resolves a side from its name. The directional aliases
// used by the HTTP and MCP surfaces (up, down, right, left) are
// accepted alongside the compass names.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "north", "up":
		return North, nil
	case "south", "down":
		return South, nil
	case "east", "right":
		return East, nil
	case "west", "left":
		return West, nil
	default:
		return North, fmt.Errorf("unknown side %q", name)
	}
}

// Sides lists all four sides in a stable order.
func Sides() []Side {
	return []Side{North, South, East, West}
}

// toAbs maps (col, row) in s's rotated frame back to absolute board
// coordinates on a board with the given side length. Row size-1 in
// the rotated frame always lands on the edge named by s.
func (s Side) toAbs(col, row, size int) (int, int) {
	switch s {
	case South:
		return size - 1 - col, size - 1 - row
	case East:
		return row, col
	case West:
		return size - 1 - row, col
	default:
		return col, row
	}
}

// toView maps an absolute (col, row) into s's rotated frame. It is
// the inverse of toAbs.
func (s Side) toView(col, row, size int) (int, int) {
	switch s {
	case South:
		return size - 1 - col, size - 1 - row
	case East:
		return row, col
	case West:
		return row, size - 1 - col
	default:
		return col, row
	}
}

package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrIndex reports a coordinate outside [0, size).
	ErrIndex = errors.New("coordinate out of bounds")
	// ErrOccupied reports a placement onto a non-empty cell.
	ErrOccupied = errors.New("cell already occupied")
)

// Grid is the mutable N×N board. Cells are addressed by (col, row)
// with row 0 at the near (bottom) edge. A Grid carries a viewing
// perspective that is active only while a tilt is in progress; reads
// and moves go through the current perspective, which is how one
// canonical tilt algorithm serves all four directions. Outside a tilt
// the perspective is always the identity (North).
type Grid struct {
	size  int
	cells [][]*Tile // indexed [col][row], absolute coordinates
	view  Side
}

// NewGrid creates an empty size×size board. Sizes below MinBoardSize
// are rejected.
func NewGrid(size int) (*Grid, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("board size must be at least %d, got %d", MinBoardSize, size)
	}
	cells := make([][]*Tile, size)
	for c := range cells {
		cells[c] = make([]*Tile, size)
	}
	return &Grid{size: size, cells: cells, view: North}, nil
}

// Size returns the number of cells on one side of the board.
func (g *Grid) Size() int {
	return g.size
}

// Tile returns the tile at (col, row) under the current perspective,
// or nil if the cell is empty. Coordinates outside the board fail
// with ErrIndex.
func (g *Grid) Tile(col, row int) (*Tile, error) {
	if !g.inBounds(col, row) {
		return nil, fmt.Errorf("%w: (%d,%d) on a %dx%d board", ErrIndex, col, row, g.size, g.size)
	}
	return g.tileAt(col, row), nil
}

// Place inserts t at its own position, read through the current
// perspective. The target cell must be empty; placing onto an
// occupied cell fails with ErrOccupied.
func (g *Grid) Place(t *Tile) error {
	if t == nil {
		return fmt.Errorf("tile cannot be nil")
	}
	if !g.inBounds(t.col, t.row) {
		return fmt.Errorf("%w: (%d,%d) on a %dx%d board", ErrIndex, t.col, t.row, g.size, g.size)
	}
	c, r := g.view.toAbs(t.col, t.row, g.size)
	if g.cells[c][r] != nil {
		return fmt.Errorf("%w: (%d,%d)", ErrOccupied, t.col, t.row)
	}
	g.cells[c][r] = t.moved(c, r)
	return nil
}

// Move takes t out of its current cell and puts it, or its merge
// successor, at (col, row) under the current perspective. If the
// destination holds a tile of equal value the two merge into a single
// doubled tile and Move reports merged=true. A non-empty destination
// with a different value violates the tilt engine's contract and
// fails with ErrOccupied.
func (g *Grid) Move(col, row int, t *Tile) (bool, error) {
	if t == nil {
		return false, fmt.Errorf("tile cannot be nil")
	}
	if !g.inBounds(col, row) {
		return false, fmt.Errorf("%w: (%d,%d) on a %dx%d board", ErrIndex, col, row, g.size, g.size)
	}
	c, r := g.view.toAbs(col, row, g.size)
	if dest := g.cells[c][r]; dest != nil && dest.value != t.value {
		return false, fmt.Errorf("%w: (%d,%d) holds %d, cannot move a %d there", ErrOccupied, col, row, dest.value, t.value)
	}
	return g.moveTile(col, row, t), nil
}

// Clear empties every cell. The perspective is left untouched.
func (g *Grid) Clear() {
	for c := range g.cells {
		for r := range g.cells[c] {
			g.cells[c][r] = nil
		}
	}
}

// ApplyPerspective rotates the coordinate frame so that the given
// side acts as the far edge. Callers must pair it with a deferred
// RestorePerspective so a tilt that fails partway cannot leave the
// grid's coordinate interpretation rotated for subsequent calls.
func (g *Grid) ApplyPerspective(s Side) {
	g.view = s
}

// RestorePerspective resets the coordinate frame to the identity.
func (g *Grid) RestorePerspective() {
	g.view = North
}

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && col < g.size && row >= 0 && row < g.size
}

// tileAt reads a cell through the current perspective without bounds
// checks. Internal fast path for the tilt engine and the predicates.
func (g *Grid) tileAt(col, row int) *Tile {
	c, r := g.view.toAbs(col, row, g.size)
	return g.cells[c][r]
}

// moveTile relocates t to the perspective cell (col, row), merging
// with an equal-valued occupant when present. Bounds and merge
// preconditions are the caller's responsibility.
func (g *Grid) moveTile(col, row int, t *Tile) bool {
	if g.cells[t.col][t.row] == t {
		g.cells[t.col][t.row] = nil
	}
	c, r := g.view.toAbs(col, row, g.size)
	if dest := g.cells[c][r]; dest != nil {
		g.cells[c][r] = t.merged(c, r)
		return true
	}
	g.cells[c][r] = t.moved(c, r)
	return false
}

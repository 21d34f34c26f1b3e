package engine

import "fmt"

// Tile is an immutable numbered piece occupying one board cell. Tiles
// are never mutated: sliding produces a new Tile at the destination
// cell and merging produces a new Tile with twice the value. A tile
// carries no memory of past merges across tilts.
type Tile struct {
	value int
	col   int
	row   int
}

// NewTile creates a tile with the given value at (col, row). Values
// are positive powers of two; the constructor does not enforce this,
// config validation does.
func NewTile(value, col, row int) *Tile {
	return &Tile{value: value, col: col, row: row}
}

// Value returns the number printed on the tile.
func (t *Tile) Value() int { return t.value }

// Col returns the column the tile occupies.
func (t *Tile) Col() int { return t.col }

// Row returns the row the tile occupies.
func (t *Tile) Row() int { return t.row }

// moved returns a copy of t relocated to (col, row).
func (t *Tile) moved(col, row int) *Tile {
	return &Tile{value: t.value, col: col, row: row}
}

// merged returns the successor tile produced by merging t into an
// equal-valued tile at (col, row).
func (t *Tile) merged(col, row int) *Tile {
	return &Tile{value: 2 * t.value, col: col, row: row}
}

func (t *Tile) String() string {
	return fmt.Sprintf("Tile(%d at col %d, row %d)", t.value, t.col, t.row)
}

package engine

// IsOver reports whether the game on g has ended: a tile of value
// maxPiece exists, or the board is full and no two neighbouring tiles
// share a value. Pure function of the grid contents.
func IsOver(g *Grid, maxPiece int) bool {
	return MaxTileExists(g, maxPiece) || !AtLeastOneMoveExists(g)
}

// EmptySpaceExists reports whether any cell of g is unoccupied.
func EmptySpaceExists(g *Grid) bool {
	for col := 0; col < g.Size(); col++ {
		for row := 0; row < g.Size(); row++ {
			if g.tileAt(col, row) == nil {
				return true
			}
		}
	}
	return false
}

// MaxTileExists reports whether any tile on g has reached maxPiece.
func MaxTileExists(g *Grid, maxPiece int) bool {
	for col := 0; col < g.Size(); col++ {
		for row := 0; row < g.Size(); row++ {
			if t := g.tileAt(col, row); t != nil && t.Value() == maxPiece {
				return true
			}
		}
	}
	return false
}

// AtLeastOneMoveExists reports whether a tilt in some direction could
// still change the board: there is an empty cell, or two 4-adjacent
// tiles share a value. Out-of-bounds neighbours are skipped.
func AtLeastOneMoveExists(g *Grid) bool {
	if EmptySpaceExists(g) {
		return true
	}

	// right, left, up, down
	colOffsets := []int{1, -1, 0, 0}
	rowOffsets := []int{0, 0, 1, -1}

	n := g.Size()
	for col := 0; col < n; col++ {
		for row := 0; row < n; row++ {
			value := g.tileAt(col, row).Value()
			for d := 0; d < 4; d++ {
				nc, nr := col+colOffsets[d], row+rowOffsets[d]
				if nc < 0 || nr < 0 || nc >= n || nr >= n {
					continue
				}
				if g.tileAt(nc, nr).Value() == value {
					return true
				}
			}
		}
	}
	return false
}

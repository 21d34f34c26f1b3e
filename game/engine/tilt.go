package engine

// TiltColumns compacts and merges every column of g toward side,
// reporting whether any tile moved or merged and the score gained
// from merges. The grid's perspective is applied for the duration of
// the call and restored before it returns, even if the compaction
// panics. TiltColumns owns no score state and performs no game-over
// check; the caller applies the returned values.
func TiltColumns(g *Grid, side Side) (changed bool, scoreDelta int) {
	g.ApplyPerspective(side)
	defer g.RestorePerspective()

	for col := 0; col < g.Size(); col++ {
		colChanged, colScore := tiltColumn(g, col)
		changed = changed || colChanged
		scoreDelta += colScore
	}
	return changed, scoreDelta
}

// tiltColumn slides the tiles of a single column toward the far edge
// of the current perspective. Source tiles are consumed far-edge
// first, which is what gives tiles nearer the moving edge first claim
// on a merge: with three equal tiles in a column the leading pair
// merges and the trailing tile does not. Each destination slot merges
// at most once per tilt.
func tiltColumn(g *Grid, col int) (bool, int) {
	n := g.Size()
	changed := false
	score := 0

	dest := n - 1    // next destination row, counted from the far edge
	destValue := 0   // value already landed at dest, 0 while unclaimed
	destMerged := false

	for row := n - 1; row >= 0; row-- {
		t := g.tileAt(col, row)
		if t == nil {
			continue
		}
		if destValue == t.Value() && !destMerged {
			g.moveTile(col, dest, t)
			score += 2 * t.Value()
			destValue *= 2
			destMerged = true
			changed = true
			continue
		}
		if destValue != 0 {
			dest--
		}
		destValue = t.Value()
		destMerged = false
		if dest != row {
			g.moveTile(col, dest, t)
			changed = true
		}
	}
	return changed, score
}

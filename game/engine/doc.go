// Package engine provides the core rules of the 2048 sliding-tile game.
//
// The engine package implements the game mechanics including:
//   - An N×N board of numbered tiles with a rotatable coordinate perspective
//   - The tilt algorithm: column compaction, merging, and scoring
//   - Game-over detection (max piece reached, or no move left)
//   - Random tile spawning with configurable value weights
//   - Snapshots for persistence and the wire surface
//
// Core Types:
//
// Model is the full state of one game and the only type most callers
// need. Grid is the board container, Side names the four tilt
// directions, and Tile is the immutable value object stored in cells.
// GameConfig defines a game variant loaded from JSON files.
//
// Usage:
//
//	m, err := engine.NewModel(4)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	m.AddTile(engine.NewTile(2, 0, 0))
//	changed := m.Tilt(engine.North)
//	fmt.Println(m.Score(), m.GameOver())
//
// Game Rules:
//
// A tilt slides every tile toward one edge. Adjacent tiles of equal
// value merge into one tile of twice the value, scoring twice the
// original value; a merged tile never merges again within the same
// tilt, and when three equal tiles line up the pair nearer the moving
// edge merges first. The game ends when a tile reaches the configured
// maximum value or when the board is full with no adjacent equal pair.
package engine

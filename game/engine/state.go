package engine

import "fmt"

// Coord addresses a single board cell.
type Coord struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// TileInfo is the JSON form of a single tile.
type TileInfo struct {
	Value int `json:"value"`
	Col   int `json:"col"`
	Row   int `json:"row"`
}

// GameState is the JSON snapshot of a Model used by the HTTP surface,
// websocket pushes, and session persistence. Board is indexed
// [row][col] with row 0 at the near-bottom edge; 0 marks an empty
// cell.
type GameState struct {
	Size       int     `json:"size"`
	Board      [][]int `json:"board"`
	Score      int     `json:"score"`
	MaxScore   int     `json:"max_score"`
	MaxPiece   int     `json:"max_piece"`
	GameOver   bool    `json:"game_over"`
	ConfigName string  `json:"config_name,omitempty"`

	// TotalTilts counts tilts that changed the board over the life
	// of the session, maintained by the service layer.
	TotalTilts int `json:"total_tilts"`
}

// TiltRecord is one entry in a session's tilt history.
type TiltRecord struct {
	Direction  string    `json:"direction"`
	Changed    bool      `json:"changed"`
	ScoreDelta int       `json:"score_delta"`
	Spawned    *TileInfo `json:"spawned,omitempty"`
	GameOver   bool      `json:"game_over"`
	Timestamp  int64     `json:"timestamp"`
	TiltNumber int       `json:"tilt_number"`
}

// State captures the model as a snapshot. The returned value shares
// nothing with the model and is safe to serialize or hand across a
// socket.
func (m *Model) State() *GameState {
	n := m.Size()
	board := make([][]int, n)
	for row := 0; row < n; row++ {
		board[row] = make([]int, n)
		for col := 0; col < n; col++ {
			if t := m.board.tileAt(col, row); t != nil {
				board[row][col] = t.Value()
			}
		}
	}
	// Re-evaluate rather than trusting the cached flag, so a board
	// that is stuck from the start snapshots as over before any tilt
	over := m.GameOver()
	return &GameState{
		Size:     n,
		Board:    board,
		Score:    m.score,
		MaxScore: m.maxScore,
		MaxPiece: m.maxPiece,
		GameOver: over,
	}
}

// RestoreModel rebuilds a Model from a snapshot, used when loading a
// persisted session.
func RestoreModel(state *GameState) (*Model, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}
	m, err := NewModelFromRawValues(state.Board, state.Score, state.MaxScore, state.GameOver)
	if err != nil {
		return nil, fmt.Errorf("invalid game state: %w", err)
	}
	if state.MaxPiece != 0 {
		m.maxPiece = state.MaxPiece
	}
	return m, nil
}

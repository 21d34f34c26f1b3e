package engine

import (
	"fmt"
	"strings"
)

const (
	// MinBoardSize is the smallest supported side length.
	MinBoardSize = 2
	// MaxBoardSize bounds config-supplied side lengths.
	MaxBoardSize = 16
	// DefaultBoardSize is the classic 4×4 board.
	DefaultBoardSize = 4
	// DefaultMaxPiece is the tile value that ends the classic game.
	DefaultMaxPiece = 2048
	// MaxBulkTilts caps the number of tilts a single bulk request may carry.
	MaxBulkTilts = 100
)

// Model is the full state of one 2048 game: a board, the running
// score, the best score seen at any game end, and the game-over flag.
// A Model belongs to exactly one game session; it provides no locking
// and callers serialize access themselves.
type Model struct {
	board    *Grid
	score    int
	maxScore int
	gameOver bool
	maxPiece int
	onChange []func()
}

// NewModel creates an empty game on a size×size board with the
// classic winning tile. Sizes below MinBoardSize are rejected.
func NewModel(size int) (*Model, error) {
	return NewModelWithMaxPiece(size, DefaultMaxPiece)
}

// NewModelWithMaxPiece creates an empty game that ends when a tile of
// value maxPiece appears.
func NewModelWithMaxPiece(size, maxPiece int) (*Model, error) {
	board, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	return &Model{board: board, maxPiece: maxPiece}, nil
}

// NewModelFromRawValues builds a game from an explicit board layout,
// used for deterministic fixtures. raw is indexed (row, col) with
// (0,0) at the near-bottom corner and 0 denoting an empty cell; it
// must be square with side length at least MinBoardSize.
func NewModelFromRawValues(raw [][]int, score, maxScore int, gameOver bool) (*Model, error) {
	size := len(raw)
	board, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	for row := range raw {
		if len(raw[row]) != size {
			return nil, fmt.Errorf("layout row %d has %d values, want %d", row, len(raw[row]), size)
		}
		for col, value := range raw[row] {
			if value == 0 {
				continue
			}
			if err := board.Place(NewTile(value, col, row)); err != nil {
				return nil, err
			}
		}
	}
	return &Model{
		board:    board,
		score:    score,
		maxScore: maxScore,
		gameOver: gameOver,
		maxPiece: DefaultMaxPiece,
	}, nil
}

// Size returns the number of cells on one side of the board.
func (m *Model) Size() int {
	return m.board.Size()
}

// Tile returns the tile at (col, row), or nil for an empty cell.
func (m *Model) Tile(col, row int) (*Tile, error) {
	return m.board.Tile(col, row)
}

// Score returns the current score.
func (m *Model) Score() int {
	return m.score
}

// MaxScore returns the best score recorded at any game end. It never
// resets with Clear; it is the running best across games.
func (m *Model) MaxScore() int {
	return m.maxScore
}

// MaxPiece returns the tile value that ends this game.
func (m *Model) MaxPiece() int {
	return m.maxPiece
}

// Board exposes the underlying grid for read-only inspection by the
// game-over predicates.
func (m *Model) Board() *Grid {
	return m.board
}

// GameOver re-evaluates and returns whether the game has ended. On a
// game that is over it latches maxScore to the running score if the
// score is higher.
func (m *Model) GameOver() bool {
	m.gameOver = IsOver(m.board, m.maxPiece)
	if m.gameOver && m.score > m.maxScore {
		m.maxScore = m.score
	}
	return m.gameOver
}

// Tilt pushes the whole board toward side, applying the merge and
// scoring rules, and reports whether anything moved. On a change it
// adds the merge score, re-evaluates game over, and signals the
// change listeners.
func (m *Model) Tilt(side Side) bool {
	changed, scoreDelta := TiltColumns(m.board, side)
	if changed {
		m.score += scoreDelta
		m.GameOver()
		m.notify()
	}
	return changed
}

// AddTile places t on the board. Placing onto an occupied cell fails
// with ErrOccupied and leaves the model unchanged.
func (m *Model) AddTile(t *Tile) error {
	if err := m.board.Place(t); err != nil {
		return err
	}
	m.GameOver()
	m.notify()
	return nil
}

// Clear empties the board and resets score and game-over. MaxScore
// survives as the running best across games.
func (m *Model) Clear() {
	m.board.Clear()
	m.score = 0
	m.gameOver = false
	m.notify()
}

// OnChange registers fn to run after every mutation that changed
// observable state. The model only signals; fan-out to views or
// sockets is the listener's concern.
func (m *Model) OnChange(fn func()) {
	m.onChange = append(m.onChange, fn)
}

func (m *Model) notify() {
	for _, fn := range m.onChange {
		fn()
	}
}

// EmptyCells lists the coordinates of unoccupied cells, columns-major.
func (m *Model) EmptyCells() []Coord {
	var empty []Coord
	for col := 0; col < m.board.Size(); col++ {
		for row := 0; row < m.board.Size(); row++ {
			if m.board.tileAt(col, row) == nil {
				empty = append(empty, Coord{Col: col, Row: row})
			}
		}
	}
	return empty
}

// String renders the model for debugging: board rows printed far edge
// first, then score, max score, and whether the game is over.
func (m *Model) String() string {
	var out strings.Builder
	out.WriteString("\n[\n")
	for row := m.Size() - 1; row >= 0; row-- {
		for col := 0; col < m.Size(); col++ {
			t := m.board.tileAt(col, row)
			if t == nil {
				out.WriteString("|    ")
			} else {
				fmt.Fprintf(&out, "|%4d", t.Value())
			}
		}
		out.WriteString("|\n")
	}
	over := "not over"
	if m.GameOver() {
		over = "over"
	}
	fmt.Fprintf(&out, "] %d (max: %d) (game is %s)\n", m.Score(), m.MaxScore(), over)
	return out.String()
}

// Equal reports value equality: two models are the same game state
// when their renderings match, regardless of the tilt histories that
// produced them.
func (m *Model) Equal(other *Model) bool {
	if other == nil {
		return false
	}
	return m.String() == other.String()
}

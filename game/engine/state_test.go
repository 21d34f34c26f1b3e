package engine

import (
	"encoding/json"
	"testing"
)

func TestModel_State(t *testing.T) {
	raw := [][]int{
		{2, 0, 0, 4},
		{0, 8, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 16},
	}
	m, err := NewModelFromRawValues(raw, 50, 200, false)
	if err != nil {
		t.Fatalf("NewModelFromRawValues failed: %v", err)
	}

	state := m.State()
	if state.Size != 4 {
		t.Errorf("Size = %d, want 4", state.Size)
	}
	if state.Score != 50 || state.MaxScore != 200 {
		t.Errorf("Scores = %d/%d, want 50/200", state.Score, state.MaxScore)
	}
	if !valuesEqual(state.Board, raw) {
		t.Errorf("Board = %v, want %v", state.Board, raw)
	}

	// The snapshot must not alias the live board.
	m.Tilt(North)
	if !valuesEqual(state.Board, raw) {
		t.Error("Snapshot board changed after a tilt on the model")
	}
}

func TestModel_StateReevaluatesGameOver(t *testing.T) {
	// A board stuck from the start, before any tilt has run the
	// game-over check. The snapshot must not report the stale flag.
	m, err := NewModelFromRawValues([][]int{
		{2, 4},
		{4, 2},
	}, 0, 0, false)
	if err != nil {
		t.Fatalf("NewModelFromRawValues failed: %v", err)
	}

	if !m.State().GameOver {
		t.Error("Expected snapshot of a stuck board to report game over")
	}
}

func TestRestoreModel(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		m := mustModel(t, [][]int{
			{2, 4, 0, 0},
			{0, 0, 8, 0},
			{0, 16, 0, 0},
			{0, 0, 0, 2},
		})
		m.Tilt(North)

		restored, err := RestoreModel(m.State())
		if err != nil {
			t.Fatalf("RestoreModel failed: %v", err)
		}
		if !m.Equal(restored) {
			t.Errorf("Restored model differs:\n%s\nvs\n%s", restored, m)
		}
	})

	t.Run("preserves max piece", func(t *testing.T) {
		m, _ := NewModelWithMaxPiece(4, 256)
		m.AddTile(NewTile(2, 0, 0))

		restored, err := RestoreModel(m.State())
		if err != nil {
			t.Fatalf("RestoreModel failed: %v", err)
		}
		if restored.MaxPiece() != 256 {
			t.Errorf("MaxPiece() = %d, want 256", restored.MaxPiece())
		}
	})

	t.Run("nil state", func(t *testing.T) {
		if _, err := RestoreModel(nil); err == nil {
			t.Error("Expected error restoring a nil state")
		}
	})

	t.Run("corrupt board", func(t *testing.T) {
		state := &GameState{Size: 2, Board: [][]int{{2, 0}}}
		if _, err := RestoreModel(state); err == nil {
			t.Error("Expected error restoring a ragged board")
		}
	})
}

func TestGameState_JSONShape(t *testing.T) {
	m := mustModel(t, [][]int{
		{2, 0},
		{0, 4},
	})
	data, err := json.Marshal(m.State())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"size", "board", "score", "max_score", "max_piece", "game_over", "total_tilts"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("Expected key %q in serialized state", key)
		}
	}
}

package engine

import (
	"errors"
	"testing"
)

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"minimum size", MinBoardSize, false},
		{"classic size", 4, false},
		{"large size", 10, false},
		{"too small", 1, true},
		{"zero", 0, true},
		{"negative", -3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.size)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewGrid(%d) expected error", tt.size)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewGrid(%d) failed: %v", tt.size, err)
			}
			if g.Size() != tt.size {
				t.Errorf("Size() = %d, want %d", g.Size(), tt.size)
			}
		})
	}
}

func TestGrid_PlaceAndTile(t *testing.T) {
	g, err := NewGrid(4)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if err := g.Place(NewTile(2, 1, 2)); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	tile, err := g.Tile(1, 2)
	if err != nil {
		t.Fatalf("Tile failed: %v", err)
	}
	if tile == nil || tile.Value() != 2 {
		t.Errorf("Expected a 2 at (1,2), got %v", tile)
	}

	// Every other cell stays empty.
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			if col == 1 && row == 2 {
				continue
			}
			got, err := g.Tile(col, row)
			if err != nil {
				t.Fatalf("Tile(%d,%d) failed: %v", col, row, err)
			}
			if got != nil {
				t.Errorf("Expected (%d,%d) empty, got %v", col, row, got)
			}
		}
	}
}

func TestGrid_PlaceErrors(t *testing.T) {
	g, _ := NewGrid(4)
	if err := g.Place(NewTile(2, 0, 0)); err != nil {
		t.Fatalf("Place failed: %v", err)
	}

	if err := g.Place(NewTile(4, 0, 0)); !errors.Is(err, ErrOccupied) {
		t.Errorf("Expected ErrOccupied, got %v", err)
	}
	if err := g.Place(NewTile(2, 4, 0)); !errors.Is(err, ErrIndex) {
		t.Errorf("Expected ErrIndex for col 4, got %v", err)
	}
	if err := g.Place(NewTile(2, 0, -1)); !errors.Is(err, ErrIndex) {
		t.Errorf("Expected ErrIndex for row -1, got %v", err)
	}
	if err := g.Place(nil); err == nil {
		t.Error("Expected error placing a nil tile")
	}
}

func TestGrid_TileBounds(t *testing.T) {
	g, _ := NewGrid(3)

	tests := []struct {
		col, row int
	}{
		{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {3, 3},
	}
	for _, tt := range tests {
		if _, err := g.Tile(tt.col, tt.row); !errors.Is(err, ErrIndex) {
			t.Errorf("Tile(%d,%d) expected ErrIndex, got %v", tt.col, tt.row, err)
		}
	}
}

func TestGrid_Move(t *testing.T) {
	t.Run("move into empty cell", func(t *testing.T) {
		g, _ := NewGrid(4)
		tile := NewTile(2, 0, 0)
		if err := g.Place(tile); err != nil {
			t.Fatalf("Place failed: %v", err)
		}

		placed, _ := g.Tile(0, 0)
		merged, err := g.Move(0, 3, placed)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if merged {
			t.Error("Expected no merge moving into an empty cell")
		}

		if got, _ := g.Tile(0, 0); got != nil {
			t.Errorf("Expected source cell vacated, got %v", got)
		}
		if got, _ := g.Tile(0, 3); got == nil || got.Value() != 2 {
			t.Errorf("Expected a 2 at (0,3), got %v", got)
		}
	})

	t.Run("move onto equal tile merges", func(t *testing.T) {
		g, _ := NewGrid(4)
		g.Place(NewTile(2, 0, 0))
		g.Place(NewTile(2, 0, 3))

		src, _ := g.Tile(0, 0)
		merged, err := g.Move(0, 3, src)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if !merged {
			t.Error("Expected a merge onto an equal tile")
		}
		if got, _ := g.Tile(0, 3); got == nil || got.Value() != 4 {
			t.Errorf("Expected a 4 at (0,3), got %v", got)
		}
		if got, _ := g.Tile(0, 0); got != nil {
			t.Errorf("Expected source cell vacated, got %v", got)
		}
	})

	t.Run("move onto unequal tile is rejected", func(t *testing.T) {
		g, _ := NewGrid(4)
		g.Place(NewTile(2, 0, 0))
		g.Place(NewTile(4, 0, 3))

		src, _ := g.Tile(0, 0)
		if _, err := g.Move(0, 3, src); !errors.Is(err, ErrOccupied) {
			t.Errorf("Expected ErrOccupied, got %v", err)
		}
	})

	t.Run("move out of bounds is rejected", func(t *testing.T) {
		g, _ := NewGrid(4)
		g.Place(NewTile(2, 0, 0))
		src, _ := g.Tile(0, 0)
		if _, err := g.Move(0, 4, src); !errors.Is(err, ErrIndex) {
			t.Errorf("Expected ErrIndex, got %v", err)
		}
	})
}

func TestGrid_Clear(t *testing.T) {
	g, _ := NewGrid(3)
	g.Place(NewTile(2, 0, 0))
	g.Place(NewTile(4, 2, 2))

	g.Clear()

	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			if tile, _ := g.Tile(col, row); tile != nil {
				t.Errorf("Expected (%d,%d) empty after Clear, got %v", col, row, tile)
			}
		}
	}
}

func TestGrid_PerspectiveReads(t *testing.T) {
	// Under an east perspective the right column becomes the far row,
	// so reads and writes address rotated coordinates.
	g, _ := NewGrid(4)
	g.Place(NewTile(8, 3, 0))

	g.ApplyPerspective(East)
	tile, err := g.Tile(0, 3)
	if err != nil {
		t.Fatalf("Tile under perspective failed: %v", err)
	}
	if tile == nil || tile.Value() != 8 {
		t.Errorf("Expected the 8 visible at view (0,3), got %v", tile)
	}
	g.RestorePerspective()

	// Back to absolute coordinates.
	tile, err = g.Tile(3, 0)
	if err != nil {
		t.Fatalf("Tile after restore failed: %v", err)
	}
	if tile == nil || tile.Value() != 8 {
		t.Errorf("Expected the 8 back at (3,0), got %v", tile)
	}
}

func TestGrid_PerspectivePlace(t *testing.T) {
	g, _ := NewGrid(4)

	g.ApplyPerspective(South)
	if err := g.Place(NewTile(2, 0, 0)); err != nil {
		t.Fatalf("Place under perspective failed: %v", err)
	}
	g.RestorePerspective()

	// South flips both axes, so view (0,0) is absolute (3,3).
	tile, err := g.Tile(3, 3)
	if err != nil {
		t.Fatalf("Tile failed: %v", err)
	}
	if tile == nil || tile.Value() != 2 {
		t.Errorf("Expected the tile at absolute (3,3), got %v", tile)
	}
}

package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GameConfig describes a playable game variant loaded from JSON.
type GameConfig struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	BoardSize   int          `json:"board_size"`
	MaxPiece    int          `json:"max_piece"`
	StartTiles  int          `json:"start_tiles"`
	SpawnValues []SpawnValue `json:"spawn_values,omitempty"`

	// Layout optionally presets the board, indexed (row, col) with
	// row 0 at the bottom edge and 0 for an empty cell. Used for
	// puzzle variants and deterministic fixtures.
	Layout [][]int `json:"layout,omitempty"`
}

// SpawnValue pairs a candidate spawn value with its weight.
type SpawnValue struct {
	Value  int `json:"value"`
	Weight int `json:"weight"`
}

// ValidateGameConfig validates a game configuration for correctness
// and playability. Invalid configurations fail here, at load time,
// rather than on first use.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config cannot be nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.BoardSize < MinBoardSize || config.BoardSize > MaxBoardSize {
		return fmt.Errorf("config validation: board_size must be between %d and %d, got %d",
			MinBoardSize, MaxBoardSize, config.BoardSize)
	}

	if !isPowerOfTwo(config.MaxPiece) || config.MaxPiece < 8 {
		return fmt.Errorf("config validation: max_piece must be a power of two of at least 8, got %d", config.MaxPiece)
	}

	if config.StartTiles < 0 || config.StartTiles > config.BoardSize*config.BoardSize {
		return fmt.Errorf("config validation: start_tiles must be between 0 and %d, got %d",
			config.BoardSize*config.BoardSize, config.StartTiles)
	}

	for i, sv := range config.SpawnValues {
		if !isPowerOfTwo(sv.Value) || sv.Value >= config.MaxPiece {
			return fmt.Errorf("config validation: spawn_values[%d].value must be a power of two below max_piece, got %d", i, sv.Value)
		}
		if sv.Weight <= 0 {
			return fmt.Errorf("config validation: spawn_values[%d].weight must be positive, got %d", i, sv.Weight)
		}
	}

	if config.Layout != nil {
		if len(config.Layout) != config.BoardSize {
			return fmt.Errorf("config validation: layout must have %d rows to match board_size, got %d",
				config.BoardSize, len(config.Layout))
		}
		for r, row := range config.Layout {
			if len(row) != config.BoardSize {
				return fmt.Errorf("config validation: layout row %d must have %d values to match board_size, got %d",
					r, config.BoardSize, len(row))
			}
			for c, value := range row {
				if value == 0 {
					continue
				}
				if !isPowerOfTwo(value) || value > config.MaxPiece {
					return fmt.Errorf("config validation: layout value at row %d, col %d must be a power of two no greater than max_piece, got %d",
						r, c, value)
				}
			}
		}
	}

	return nil
}

// DefaultConfig returns the classic game: 4×4 board, 2048 winning
// tile, two opening tiles, spawns weighted 9:1 between 2 and 4.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "The classic 4x4 game to 2048",
		BoardSize:   DefaultBoardSize,
		MaxPiece:    DefaultMaxPiece,
		StartTiles:  2,
		SpawnValues: []SpawnValue{
			{Value: 2, Weight: 9},
			{Value: 4, Weight: 1},
		},
	}
}

// NewModelFromConfig validates config and builds a Model for it. A
// preset layout is placed on the board; otherwise the board starts
// empty and the caller spawns the opening tiles.
func NewModelFromConfig(config *GameConfig) (*Model, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	if config.Layout != nil {
		m, err := NewModelFromRawValues(config.Layout, 0, 0, false)
		if err != nil {
			return nil, err
		}
		m.maxPiece = config.MaxPiece
		return m, nil
	}
	return NewModelWithMaxPiece(config.BoardSize, config.MaxPiece)
}

// LoadGameConfig loads a game configuration from a JSON file.
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// isPowerOfTwo reports whether v is a positive power of two.
func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

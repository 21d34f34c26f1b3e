// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Board size and target tile (power of two) constraints
//   - Spawn value table: powers of two with positive weights, below the target
//   - Start tile count fits the board
//   - Layout (if present): square, values are zero or powers of two below the target
//   - Achievability: the target tile can actually be built on a board this size
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a game configuration.
type Config struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	BoardSize   int          `json:"board_size"`
	MaxPiece    int          `json:"max_piece"`
	StartTiles  int          `json:"start_tiles"`
	SpawnValues []SpawnValue `json:"spawn_values"`
	Layout      [][]int      `json:"layout,omitempty"`
}

// SpawnValue pairs a candidate spawn value with its weight.
type SpawnValue struct {
	Value  int `json:"value"`
	Weight int `json:"weight"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "name is required")
	}

	// Validate board dimensions
	if config.BoardSize < 2 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("board_size must be at least 2, got %d", config.BoardSize))
	}

	// Validate target tile
	if !isPowerOfTwo(config.MaxPiece) || config.MaxPiece < 4 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("max_piece must be a power of two >= 4, got %d", config.MaxPiece))
	}

	// Validate start tiles (zero is allowed when a preset layout seeds the board)
	cells := config.BoardSize * config.BoardSize
	if config.StartTiles < 1 && config.Layout == nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("start_tiles must be positive, got %d", config.StartTiles))
	} else if cells > 0 && config.StartTiles > cells {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("start_tiles (%d) cannot exceed board cells (%d)", config.StartTiles, cells))
	}

	// Validate spawn table
	largestSpawn := 0
	if len(config.SpawnValues) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "spawn_values must not be empty")
	}
	for i, sv := range config.SpawnValues {
		if !isPowerOfTwo(sv.Value) || sv.Value < 2 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("spawn_values[%d]: value must be a power of two >= 2, got %d", i, sv.Value))
		}
		if sv.Value >= config.MaxPiece && config.MaxPiece > 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("spawn_values[%d]: value %d must be below max_piece %d", i, sv.Value, config.MaxPiece))
		}
		if sv.Weight <= 0 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("spawn_values[%d]: weight must be positive, got %d", i, sv.Weight))
		}
		if sv.Value > largestSpawn {
			largestSpawn = sv.Value
		}
	}

	// Validate preset layout
	layoutTiles := 0
	if config.Layout != nil {
		if len(config.Layout) != config.BoardSize {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("layout must have %d rows, got %d", config.BoardSize, len(config.Layout)))
		}
		for r, row := range config.Layout {
			if len(row) != config.BoardSize {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("layout row %d must have %d values, got %d", r, config.BoardSize, len(row)))
			}
			for c, v := range row {
				if v == 0 {
					continue
				}
				layoutTiles++
				if !isPowerOfTwo(v) || v < 2 {
					result.Valid = false
					result.Errors = append(result.Errors, fmt.Sprintf("layout[%d][%d]: %d is not a valid tile value", r, c, v))
				}
				if v >= config.MaxPiece && config.MaxPiece > 0 {
					result.Valid = false
					result.Errors = append(result.Errors, fmt.Sprintf("layout[%d][%d]: tile %d already meets max_piece %d", r, c, v, config.MaxPiece))
				}
			}
		}
		if result.Valid && layoutTiles == 0 {
			result.Valid = false
			result.Errors = append(result.Errors, "layout must place at least one tile")
		}
	}

	// Achievability: with every cell holding the largest spawn value, repeated
	// merges can at best double it once per remaining cell.
	if result.Valid {
		achievability := validateAchievability(config.BoardSize, largestSpawn, config.MaxPiece)
		if !achievability.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, achievability.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", config.BoardSize, config.BoardSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Target tile: %d", config.MaxPiece))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Start tiles: %d", config.StartTiles))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Spawn values: %d", len(config.SpawnValues)))
		if config.Layout != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Preset layout with %d tiles", layoutTiles))
		}
	}

	return result
}

// validateAchievability checks that the target tile can be built at all on a
// board this size. A tile of value v occupies a cell, so the largest tile that
// can ever exist is the largest spawn value doubled once per additional cell.
func validateAchievability(boardSize, largestSpawn, maxPiece int) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if boardSize < 2 || largestSpawn < 2 || maxPiece < 4 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate achievability: invalid board, spawn or target values")
		return result
	}

	cells := boardSize * boardSize
	cap := largestSpawn
	for i := 1; i < cells && cap < maxPiece; i++ {
		cap *= 2
	}

	if cap < maxPiece {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Achievability failure: max_piece %d cannot be built on a %dx%d board (ceiling %d)",
			maxPiece, boardSize, boardSize, cap))
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Achievability: target %d fits a %dx%d board", maxPiece, boardSize, boardSize))
	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}

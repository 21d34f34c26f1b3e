// Command analyze prints quick, human-readable heuristics about configuration
// files in the project's configs directory. It summarizes board dimensions,
// spawn value distribution, merge depth to the target tile, and highlights
// targets that leave little headroom on the board.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AnalysisConfig is a light struct for reading config files used by analysis.
type AnalysisConfig struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	BoardSize   int           `json:"board_size"`
	MaxPiece    int           `json:"max_piece"`
	StartTiles  int           `json:"start_tiles"`
	SpawnValues []SpawnWeight `json:"spawn_values"`
	Layout      [][]int       `json:"layout,omitempty"`
}

// SpawnWeight pairs a candidate spawn value with its weight.
type SpawnWeight struct {
	Value  int `json:"value"`
	Weight int `json:"weight"`
}

func main() {
	configs := []string{
		"classic.json",
		"mini.json",
		"marathon.json",
		"puzzle_corner.json",
	}

	for _, configFile := range configs {
		fmt.Printf("\n=== Analyzing %s ===\n", configFile)
		analyzeConfig(filepath.Join("configs", configFile))
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config AnalysisConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Board: %d x %d (%d cells)\n", config.BoardSize, config.BoardSize, config.BoardSize*config.BoardSize)
	fmt.Printf("Target Tile: %d\n", config.MaxPiece)
	fmt.Printf("Start Tiles: %d\n", config.StartTiles)

	// Spawn distribution summary
	totalWeight := 0
	smallestSpawn := 0
	largestSpawn := 0
	weightedSum := 0
	for _, sv := range config.SpawnValues {
		totalWeight += sv.Weight
		weightedSum += sv.Value * sv.Weight
		if smallestSpawn == 0 || sv.Value < smallestSpawn {
			smallestSpawn = sv.Value
		}
		if sv.Value > largestSpawn {
			largestSpawn = sv.Value
		}
	}
	if totalWeight > 0 {
		fmt.Printf("Spawn Values: %d entries, expected value %.2f\n",
			len(config.SpawnValues), float64(weightedSum)/float64(totalWeight))
	}

	// Merge depth: how many doublings from the smallest spawn to the target
	if smallestSpawn > 0 && config.MaxPiece > smallestSpawn {
		depth := doublings(smallestSpawn, config.MaxPiece)
		smallestCount := 1 << depth
		fmt.Printf("Merge Depth: %d doublings from %d to %d (%d base tiles)\n",
			depth, smallestSpawn, config.MaxPiece, smallestCount)
	}

	// Headroom: the theoretical largest tile given the board size
	cells := config.BoardSize * config.BoardSize
	if largestSpawn > 0 && cells > 0 {
		ceiling := largestSpawn
		for i := 1; i < cells; i++ {
			ceiling *= 2
			if ceiling >= config.MaxPiece*1024 {
				break
			}
		}
		if ceiling < config.MaxPiece {
			fmt.Printf("⚠️  WARNING: target %d exceeds the board ceiling %d - unwinnable!\n",
				config.MaxPiece, ceiling)
		} else {
			margin := doublings(config.MaxPiece, ceiling)
			fmt.Printf("✅ Target fits the board (headroom: %d doublings)\n", margin)
		}
	}

	// Preset layout summary
	if config.Layout != nil {
		tiles := 0
		sum := 0
		largest := 0
		for _, row := range config.Layout {
			for _, v := range row {
				if v > 0 {
					tiles++
					sum += v
					if v > largest {
						largest = v
					}
				}
			}
		}
		fmt.Printf("Preset Layout: %d tiles, sum %d, largest %d\n", tiles, sum, largest)
		if config.BoardSize > 0 && tiles == cells {
			fmt.Printf("⚠️  WARNING: preset layout fills the board - no room to spawn\n")
		}
	}
}

// doublings counts how many times from must double to reach at least to.
func doublings(from, to int) int {
	count := 0
	for v := from; v < to; v *= 2 {
		count++
	}
	return count
}

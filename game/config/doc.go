// Package config provides configuration management for the game server.
//
// The config package handles:
//   - Loading game variant configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Board size and the tile value that ends the game
//   - Number of opening tiles spawned when a session starts
//   - Weighted spawn values for new tiles
//   - An optional preset board layout for puzzle variants
//
// Available Configurations:
//
// The package ships with several variants:
//   - classic: The original 4x4 game to 2048
//   - mini: A quick 3x3 game to 256
//   - marathon: An 8x8 board to 8192 for long games
//   - puzzle_corner: A preset layout starting mid-game
//
// Usage:
//
//	manager := config.NewManager("configs")
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("mini")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Board size within the supported range
//   - A max piece that is a power of two
//   - Spawn values that are powers of two below the max piece
//   - Preset layouts that match the board size
package config

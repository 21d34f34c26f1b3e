// Command play runs the game in a terminal against the local engine, either
// interactively or with a greedy autoplay strategy. It needs no server: it
// loads a config, builds a model and tilts it directly.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"tilt2048/game/engine"
)

func main() {
	cmd := &cli.Command{
		Name:  "play",
		Usage: "Play the sliding-tile game in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config name to load from the configs directory (empty for classic)",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Spawn RNG seed (0 for time-based)",
			},
		},
		Action: runInteractive,
		Commands: []*cli.Command{
			{
				Name:  "auto",
				Usage: "Autoplay with a greedy merge strategy",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "Config name to load from the configs directory (empty for classic)",
					},
					&cli.IntFlag{
						Name:  "seed",
						Usage: "Spawn RNG seed (0 for time-based)",
					},
					&cli.IntFlag{
						Name:  "games",
						Value: 1,
						Usage: "Number of games to play",
					},
					&cli.IntFlag{
						Name:  "max-tilts",
						Value: 10000,
						Usage: "Tilt cap per game",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Print the board after every tilt",
					},
				},
				Action: runAuto,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// newGame builds a model and spawner from the named config and places the
// starting tiles.
func newGame(configName string, seed int64) (*engine.Model, *engine.Spawner, *engine.GameConfig, error) {
	var config *engine.GameConfig
	var err error

	if configName == "" {
		config = engine.DefaultConfig()
	} else {
		config, err = engine.LoadGameConfig(configName)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("load config: %w", err)
		}
	}

	model, err := engine.NewModelFromConfig(config)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build model: %w", err)
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	spawner := engine.NewSpawner(seed, config.SpawnValues)

	if config.Layout == nil {
		for i := 0; i < config.StartTiles; i++ {
			tile, err := spawner.Next(model)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("spawn start tile: %w", err)
			}
			if err := model.AddTile(tile); err != nil {
				return nil, nil, nil, fmt.Errorf("place start tile: %w", err)
			}
		}
	}

	return model, spawner, config, nil
}

func runInteractive(ctx context.Context, cmd *cli.Command) error {
	model, spawner, config, err := newGame(cmd.String("config"), int64(cmd.Int("seed")))
	if err != nil {
		return err
	}

	fmt.Printf("%s — tilt toward %d. Directions: n/s/e/w (or north/south/east/west), q to quit.\n",
		config.Name, config.MaxPiece)
	fmt.Print(model.String())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if model.GameOver() {
			fmt.Println("Game over. Final:", model.Score(), "max:", model.MaxScore())
			return nil
		}

		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := strings.TrimSpace(strings.ToLower(scanner.Text()))

		switch input {
		case "q", "quit", "exit":
			return nil
		case "r", "reset":
			model.Clear()
			for i := 0; i < config.StartTiles; i++ {
				tile, err := spawner.Next(model)
				if err != nil {
					return err
				}
				if err := model.AddTile(tile); err != nil {
					return err
				}
			}
			fmt.Print(model.String())
			continue
		case "":
			continue
		}

		side, err := engine.ParseSide(input)
		if err != nil {
			fmt.Println("Unknown direction. Use n/s/e/w or q to quit.")
			continue
		}

		if !model.Tilt(side) {
			fmt.Println("That tilt does not change the board.")
			continue
		}

		if !model.GameOver() {
			if tile, err := spawner.Next(model); err == nil {
				if err := model.AddTile(tile); err != nil {
					return err
				}
			}
		}

		fmt.Print(model.String())
	}
}

func runAuto(ctx context.Context, cmd *cli.Command) error {
	games := int(cmd.Int("games"))
	maxTilts := int(cmd.Int("max-tilts"))
	verbose := cmd.Bool("verbose")

	bestScore := 0
	totalScore := 0
	wins := 0

	for g := 0; g < games; g++ {
		seed := int64(cmd.Int("seed"))
		if seed != 0 {
			seed += int64(g)
		}
		model, spawner, config, err := newGame(cmd.String("config"), seed)
		if err != nil {
			return err
		}

		tilts := 0
		for !model.GameOver() && tilts < maxTilts {
			side, ok := pickGreedy(model)
			if !ok {
				break
			}

			model.Tilt(side)
			tilts++

			if !model.GameOver() {
				if tile, err := spawner.Next(model); err == nil {
					if err := model.AddTile(tile); err != nil {
						return err
					}
				}
			}

			if verbose {
				fmt.Printf("tilt %d: %s\n%s", tilts, side, model.String())
			}
		}

		won := engine.MaxTileExists(model.Board(), model.MaxPiece())
		if won {
			wins++
		}
		if model.Score() > bestScore {
			bestScore = model.Score()
		}
		totalScore += model.Score()

		fmt.Printf("game %d/%d: score=%d tilts=%d won=%v (target %d)\n",
			g+1, games, model.Score(), tilts, won, config.MaxPiece)
	}

	if games > 1 {
		fmt.Printf("\nbest=%d avg=%d wins=%d/%d\n", bestScore, totalScore/games, wins, games)
	}
	return nil
}

// greedyOrder breaks score ties with a corner-building preference.
var greedyOrder = []engine.Side{engine.North, engine.West, engine.East, engine.South}

// pickGreedy simulates each direction on a copy of the board and returns the
// one with the highest immediate score gain. Returns false when no tilt
// changes the board.
func pickGreedy(model *engine.Model) (engine.Side, bool) {
	bestSide := engine.North
	bestDelta := -1
	found := false

	for _, side := range greedyOrder {
		trial, err := engine.RestoreModel(model.State())
		if err != nil {
			continue
		}
		before := trial.Score()
		if !trial.Tilt(side) {
			continue
		}
		delta := trial.Score() - before
		if delta > bestDelta {
			bestDelta = delta
			bestSide = side
			found = true
		}
	}

	return bestSide, found
}

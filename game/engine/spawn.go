package engine

import (
	"errors"
	"math/rand"
)

// ErrBoardFull reports a spawn attempt on a board with no empty cell.
var ErrBoardFull = errors.New("no empty cells")

// Spawner produces the random tiles added to a board when a game
// starts and after every tilt that changed it. Cell choice is uniform
// over the empty cells and value choice is weighted; under a fixed
// seed the sequence is deterministic, which the tests rely on.
type Spawner struct {
	rng    *rand.Rand
	values []SpawnValue
	total  int
}

// NewSpawner creates a spawner over the given weighted values. An
// empty value list falls back to the classic 9:1 weighting of 2s and
// 4s.
func NewSpawner(seed int64, values []SpawnValue) *Spawner {
	if len(values) == 0 {
		values = DefaultConfig().SpawnValues
	}
	total := 0
	for _, sv := range values {
		total += sv.Weight
	}
	return &Spawner{
		rng:    rand.New(rand.NewSource(seed)),
		values: values,
		total:  total,
	}
}

// Next picks an empty cell and a weighted value and returns the tile
// to add there. The tile is not placed; the caller adds it through
// the model so the change is signalled once. ErrBoardFull when no
// cell is empty.
func (sp *Spawner) Next(m *Model) (*Tile, error) {
	empty := m.EmptyCells()
	if len(empty) == 0 {
		return nil, ErrBoardFull
	}
	cell := empty[sp.rng.Intn(len(empty))]

	pick := sp.rng.Intn(sp.total)
	value := sp.values[len(sp.values)-1].Value
	for _, sv := range sp.values {
		if pick < sv.Weight {
			value = sv.Value
			break
		}
		pick -= sv.Weight
	}
	return NewTile(value, cell.Col, cell.Row), nil
}

package engine

import (
	"fmt"
	"math/rand"
)

// ShuffleFunc permutes n elements through swap. The default is
// math/rand.Shuffle; tests substitute a deterministic implementation to
// assert distribution properties independent of randomness.
type ShuffleFunc func(n int, swap func(i, j int))

// GenerateTiles builds a fresh board for the given grid size: pair values
// 1..ceil(gridSize²/2) duplicated, shuffled, truncated to exactly gridSize²
// tiles (dropping one pair member on odd squares), with sequential IDs
// assigned in final order.
func GenerateTiles(gridSize int, shuffle ShuffleFunc) ([]Tile, error) {
	if gridSize < MinGridSize || gridSize > MaxGridSize {
		return nil, fmt.Errorf("grid size must be between %d and %d, got %d", MinGridSize, MaxGridSize, gridSize)
	}
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	total := gridSize * gridSize
	pairCount := (total + 1) / 2

	values := make([]int, 0, pairCount*2)
	for v := 1; v <= pairCount; v++ {
		values = append(values, v, v)
	}

	shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	// Truncation, not re-padding: on odd squares one pair loses a member.
	values = values[:total]

	tiles := make([]Tile, total)
	for i, v := range values {
		tiles[i] = Tile{ID: i, Value: v}
	}
	return tiles, nil
}

// PairCount reports how many distinct pair values a board of the given grid
// size carries, which is also the minimum number of comparisons to win.
func PairCount(gridSize int) int {
	return (gridSize*gridSize + 1) / 2
}

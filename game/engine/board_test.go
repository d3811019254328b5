package engine

import "testing"

// identityShuffle keeps the generated pair sequence in place, so a board is
// laid out as 1,1,2,2,3,3,... before truncation.
func identityShuffle(n int, swap func(i, j int)) {}

// reverseShuffle reverses the sequence.
func reverseShuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func TestGenerateTiles_TileCountAndPairDistribution(t *testing.T) {
	for gridSize := MinGridSize; gridSize <= MaxGridSize; gridSize++ {
		tiles, err := GenerateTiles(gridSize, nil)
		if err != nil {
			t.Fatalf("GenerateTiles(%d) failed: %v", gridSize, err)
		}

		total := gridSize * gridSize
		if len(tiles) != total {
			t.Errorf("grid %d: expected %d tiles, got %d", gridSize, total, len(tiles))
		}

		counts := make(map[int]int)
		for i, tile := range tiles {
			if tile.ID != i {
				t.Errorf("grid %d: tile %d has ID %d, IDs must be sequential in final order", gridSize, i, tile.ID)
			}
			counts[tile.Value]++
		}

		singles := 0
		for value, n := range counts {
			switch n {
			case 2:
			case 1:
				singles++
			default:
				t.Errorf("grid %d: value %d appears %d times", gridSize, value, n)
			}
		}

		if total%2 == 0 && singles != 0 {
			t.Errorf("grid %d: even board must have no singleton values, got %d", gridSize, singles)
		}
		if total%2 == 1 && singles != 1 {
			t.Errorf("grid %d: odd board must have exactly one singleton value, got %d", gridSize, singles)
		}
	}
}

func TestGenerateTiles_InvalidGridSize(t *testing.T) {
	for _, gridSize := range []int{-1, 0, 1, 11, 100} {
		if _, err := GenerateTiles(gridSize, nil); err == nil {
			t.Errorf("expected error for grid size %d", gridSize)
		}
	}
}

func TestGenerateTiles_ShuffleInjection(t *testing.T) {
	tiles, err := GenerateTiles(2, identityShuffle)
	if err != nil {
		t.Fatalf("GenerateTiles failed: %v", err)
	}

	expected := []int{1, 1, 2, 2}
	for i, tile := range tiles {
		if tile.Value != expected[i] {
			t.Errorf("tile %d: expected value %d, got %d", i, expected[i], tile.Value)
		}
	}

	reversed, err := GenerateTiles(2, reverseShuffle)
	if err != nil {
		t.Fatalf("GenerateTiles failed: %v", err)
	}
	expected = []int{2, 2, 1, 1}
	for i, tile := range reversed {
		if tile.Value != expected[i] {
			t.Errorf("reversed tile %d: expected value %d, got %d", i, expected[i], tile.Value)
		}
	}
}

func TestGenerateTiles_OddSquareTruncation(t *testing.T) {
	// 3x3 = 9 tiles from 5 generated pairs; the identity layout drops the
	// trailing member of the last pair.
	tiles, err := GenerateTiles(3, identityShuffle)
	if err != nil {
		t.Fatalf("GenerateTiles failed: %v", err)
	}
	if len(tiles) != 9 {
		t.Fatalf("expected 9 tiles, got %d", len(tiles))
	}
	if tiles[8].Value != 5 {
		t.Errorf("expected singleton value 5 at final position, got %d", tiles[8].Value)
	}
}

func TestGenerateTiles_FreshPermutations(t *testing.T) {
	// Two independently generated 10x10 boards sharing a layout would mean
	// the shuffle is not re-drawn per call.
	first, err := GenerateTiles(10, nil)
	if err != nil {
		t.Fatalf("GenerateTiles failed: %v", err)
	}
	second, err := GenerateTiles(10, nil)
	if err != nil {
		t.Fatalf("GenerateTiles failed: %v", err)
	}

	same := true
	for i := range first {
		if first[i].Value != second[i].Value {
			same = false
			break
		}
	}
	if same {
		t.Error("two generated boards share the same permutation")
	}
}

func TestPairCount(t *testing.T) {
	cases := []struct {
		gridSize int
		want     int
	}{
		{2, 2},
		{3, 5},
		{4, 8},
		{5, 13},
		{10, 50},
	}
	for _, tc := range cases {
		if got := PairCount(tc.gridSize); got != tc.want {
			t.Errorf("PairCount(%d): expected %d, got %d", tc.gridSize, tc.want, got)
		}
	}
}

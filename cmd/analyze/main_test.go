package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestSimulateGame_ClearsEveryPair(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, gridSize := range []int{2, 4, 6} {
		pairs := gridSize * gridSize / 2
		for i := 0; i < 50; i++ {
			comparisons := simulateGame(gridSize, rng)
			if comparisons < pairs {
				t.Fatalf("grid %d: %d comparisons is below the pair count %d", gridSize, comparisons, pairs)
			}
			// A perfect-memory player never needs more than one extra
			// comparison per pair: every mismatch reveals two new tiles.
			if comparisons > pairs*2 {
				t.Fatalf("grid %d: %d comparisons exceeds the perfect-memory ceiling %d", gridSize, comparisons, pairs*2)
			}
		}
	}
}

func TestSimulateGame_TwoByTwo(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// A 2x2 board has 2 pairs. The first comparison either matches (then the
	// rest is forced) or mismatches (then both pairs are known). Either way
	// the game ends in 2 or 3 comparisons.
	for i := 0; i < 200; i++ {
		comparisons := simulateGame(2, rng)
		if comparisons < 2 || comparisons > 3 {
			t.Fatalf("expected 2 or 3 comparisons on 2x2, got %d", comparisons)
		}
	}
}

func TestSimulateGames_Stats(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	stats := simulateGames(4, 12, 500, rng)

	if stats.Games != 500 {
		t.Errorf("expected 500 games, got %d", stats.Games)
	}
	if stats.Min < 8 {
		t.Errorf("min %d is below the pair count", stats.Min)
	}
	if stats.Max > 16 {
		t.Errorf("max %d exceeds the perfect-memory ceiling", stats.Max)
	}
	if stats.Mean < float64(stats.Min) || stats.Mean > float64(stats.Max) {
		t.Errorf("mean %.1f outside [min, max] = [%d, %d]", stats.Mean, stats.Min, stats.Max)
	}
	if stats.P90 < stats.Min || stats.P90 > stats.Max {
		t.Errorf("p90 %d outside [min, max]", stats.P90)
	}
	if stats.Wins <= 0 {
		t.Error("expected some games to finish within a 12-move budget on 4x4")
	}
}

func TestSimulateGames_UnlimitedBudgetCountsNoWins(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	stats := simulateGames(4, 0, 100, rng)
	if stats.Wins != 0 {
		t.Errorf("win counting only applies to limited budgets, got %d", stats.Wins)
	}
}

func TestAnalyzePreset_ValidFile(t *testing.T) {
	preset := `{
		"name": "Test",
		"grid_size": 4,
		"move_limit": 12
	}`
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(preset), 0644); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	if err := analyzePreset(path, 100, rng); err != nil {
		t.Errorf("analyzePreset failed: %v", err)
	}
}

func TestAnalyzePreset_OddGridSkipsSimulation(t *testing.T) {
	preset := `{
		"name": "Odd",
		"grid_size": 3,
		"move_limit": 0
	}`
	path := filepath.Join(t.TempDir(), "odd.json")
	if err := os.WriteFile(path, []byte(preset), 0644); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	if err := analyzePreset(path, 100, rng); err != nil {
		t.Errorf("analyzePreset should warn, not fail, on odd grids: %v", err)
	}
}

func TestAnalyzePreset_MissingFile(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if err := analyzePreset("/non/existent/preset.json", 10, rng); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAnalyzePreset_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	if err := analyzePreset(path, 10, rng); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

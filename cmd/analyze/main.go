// Command analyze prints quick, human-readable heuristics about board preset
// files in the project's configs directory. For each preset it summarizes the
// grid, pair count, and move budget, then estimates difficulty by simulating
// a perfect-memory player and reporting the expected number of comparisons
// and the win rate within the preset's budget.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"
)

// AnalysisPreset is a light struct for reading preset files used by analysis.
type AnalysisPreset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	MoveLimit   int    `json:"move_limit"`
}

// SimulationStats aggregates comparison counts across simulated games.
type SimulationStats struct {
	Games  int
	Mean   float64
	Min    int
	Max    int
	P90    int
	Wins   int // games finishing within the move budget
	Budget int
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "estimate the difficulty of board presets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "configs",
				Value: "configs",
				Usage: "directory containing preset JSON files",
			},
			&cli.IntFlag{
				Name:  "games",
				Value: 10000,
				Usage: "number of games to simulate per preset",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "random seed for the simulation",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	configDir := cmd.String("configs")
	games := int(cmd.Int("games"))
	seed := int64(cmd.Int("seed"))

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no preset files found in %s", configDir)
	}

	rng := rand.New(rand.NewSource(seed))

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		if err := analyzePreset(file, games, rng); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}

	return nil
}

// analyzePreset loads one preset, prints its static properties and the
// simulation summary.
func analyzePreset(path string, games int, rng *rand.Rand) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var preset AnalysisPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		return err
	}

	tiles := preset.GridSize * preset.GridSize
	pairs := (tiles + 1) / 2

	fmt.Printf("Name: %s\n", preset.Name)
	fmt.Printf("Grid: %dx%d (%d tiles, %d pairs)\n", preset.GridSize, preset.GridSize, tiles, pairs)
	if preset.MoveLimit > 0 {
		fmt.Printf("Move budget: %d (minimum winning line: %d)\n", preset.MoveLimit, pairs)
	} else {
		fmt.Printf("Move budget: unlimited\n")
	}

	if preset.GridSize%2 != 0 {
		fmt.Printf("⚠️  WARNING: odd grid leaves one tile without a partner; the board can never be fully cleared\n")
		return nil
	}

	stats := simulateGames(preset.GridSize, preset.MoveLimit, games, rng)

	fmt.Printf("Simulated %d perfect-memory games:\n", stats.Games)
	fmt.Printf("  Comparisons: mean %.1f, min %d, p90 %d, max %d\n", stats.Mean, stats.Min, stats.P90, stats.Max)

	if preset.MoveLimit > 0 {
		winRate := float64(stats.Wins) / float64(stats.Games) * 100
		fmt.Printf("  Win rate within budget: %.1f%%\n", winRate)
		switch {
		case winRate >= 99:
			fmt.Printf("✅ Comfortable budget even for careful human play\n")
		case winRate >= 75:
			fmt.Printf("✅ Fair budget for a player with good memory\n")
		case winRate >= 25:
			fmt.Printf("⚠️  Tight budget: perfect memory required, luck still matters\n")
		default:
			fmt.Printf("⚠️  CRITICAL: budget is rarely enough even with perfect memory\n")
		}
	} else {
		fmt.Printf("✅ Unlimited moves: the board cannot be lost\n")
	}

	return nil
}

// simulateGames plays the given number of perfect-memory games and aggregates
// comparison counts.
func simulateGames(gridSize, moveLimit, games int, rng *rand.Rand) SimulationStats {
	counts := make([]int, games)
	total := 0

	for i := range counts {
		c := simulateGame(gridSize, rng)
		counts[i] = c
		total += c
	}

	sort.Ints(counts)

	stats := SimulationStats{
		Games:  games,
		Mean:   float64(total) / float64(games),
		Min:    counts[0],
		Max:    counts[games-1],
		P90:    counts[games*9/10],
		Budget: moveLimit,
	}

	if moveLimit > 0 {
		for _, c := range counts {
			if c <= moveLimit {
				stats.Wins++
			}
		}
	}

	return stats
}

// simulateGame plays one game with a perfect-memory strategy and returns the
// number of comparisons it took to clear the board. The strategy is:
//  1. If two unmatched tiles with the same value have been seen, pair them.
//  2. Otherwise flip an unseen tile; if its partner is known, take the
//     guaranteed match, else flip a second unseen tile and hope.
// Grid size must be even.
func simulateGame(gridSize int, rng *rand.Rand) int {
	total := gridSize * gridSize
	pairs := total / 2

	values := make([]int, 0, total)
	for v := 1; v <= pairs; v++ {
		values = append(values, v, v)
	}
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})

	seen := make(map[int]int)     // position -> value
	known := make(map[int][]int)  // value -> seen unmatched positions
	matched := make(map[int]bool) // position -> solved

	unseen := make([]int, total)
	for i := range unseen {
		unseen[i] = i
	}

	drawUnseen := func() int {
		idx := rng.Intn(len(unseen))
		pos := unseen[idx]
		unseen[idx] = unseen[len(unseen)-1]
		unseen = unseen[:len(unseen)-1]
		return pos
	}

	reveal := func(pos int) int {
		v := values[pos]
		seen[pos] = v
		known[v] = append(known[v], pos)
		return v
	}

	solve := func(a, b int) {
		matched[a] = true
		matched[b] = true
		delete(known, values[a])
	}

	comparisons := 0
	for len(matched) < total {
		comparisons++

		// Known pair available: take the guaranteed match.
		var pairValue int
		for v, positions := range known {
			if len(positions) == 2 {
				pairValue = v
				break
			}
		}
		if pairValue != 0 {
			positions := known[pairValue]
			solve(positions[0], positions[1])
			continue
		}

		// Flip an unseen tile.
		first := drawUnseen()
		v1 := reveal(first)
		if positions := known[v1]; len(positions) == 2 {
			solve(positions[0], positions[1])
			continue
		}

		// No known partner: flip a second unseen tile.
		second := drawUnseen()
		v2 := reveal(second)
		if v1 == v2 {
			solve(first, second)
		}
	}

	return comparisons
}

// Command validate provides a small CLI that validates board preset JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Grid size within the supported range (2-10)
//   - Even grid sizes, since an odd board leaves one tile without a partner
//     and can never be fully cleared
//   - Move limit is non-negative and, when set, at least the number of pairs
//     (fewer moves than pairs makes the board unwinnable even with perfect play)
//   - Presence of all required message keys
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Preset mirrors the JSON schema for a board preset.
type Preset struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	GridSize    int               `json:"grid_size"`
	MoveLimit   int               `json:"move_limit"`
	Messages    map[string]string `json:"messages"`
}

const (
	minGridSize = 2
	maxGridSize = 10
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single preset JSON file.
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

	var preset Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if preset.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}

	if preset.GridSize < minGridSize || preset.GridSize > maxGridSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("grid_size must be between %d and %d, got %d", minGridSize, maxGridSize, preset.GridSize))
	}

	if preset.GridSize >= minGridSize && preset.GridSize%2 != 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("grid_size %d leaves one tile without a partner; the board can never be fully cleared", preset.GridSize))
	}

	if preset.MoveLimit < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("move_limit must be >= 0 (0 means unlimited), got %d", preset.MoveLimit))
	}

	// Winnability: every pair takes at least one comparison, so a positive
	// budget below the pair count cannot be won even with perfect luck.
	pairs := (preset.GridSize*preset.GridSize + 1) / 2
	if preset.GridSize >= minGridSize && preset.MoveLimit > 0 && preset.MoveLimit < pairs {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("move_limit %d is below the pair count %d; the board is unwinnable", preset.MoveLimit, pairs))
	}

	requiredMessages := []string{
		"welcome",
		"match",
		"mismatch",
		"cancel",
		"win",
		"loss",
		"moves_status",
	}
	for _, msg := range requiredMessages {
		if _, exists := preset.Messages[msg]; !exists {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Missing required message: %s", msg))
		}
	}

	// Add informational data
	if result.Valid {
		budget := "unlimited"
		if preset.MoveLimit > 0 {
			budget = fmt.Sprintf("%d moves (minimum winning line: %d)", preset.MoveLimit, pairs)
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", preset.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d (%d tiles, %d pairs)", preset.GridSize, preset.GridSize, preset.GridSize*preset.GridSize, pairs))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Budget: %s", budget))
	}

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

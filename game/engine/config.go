package engine

import "fmt"

// ValidateGameConfig validates a board preset for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is required")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.GridSize < MinGridSize || config.GridSize > MaxGridSize {
		return fmt.Errorf("config validation: grid_size must be between %d and %d, got %d",
			MinGridSize, MaxGridSize, config.GridSize)
	}

	if config.MoveLimit < 0 {
		return fmt.Errorf("config validation: move_limit must be zero (unlimited) or positive, got %d", config.MoveLimit)
	}

	if config.Messages.Welcome == "" {
		return fmt.Errorf("config validation: messages.welcome is required")
	}
	if config.Messages.Win == "" {
		return fmt.Errorf("config validation: messages.win is required")
	}
	if config.Messages.Loss == "" {
		return fmt.Errorf("config validation: messages.loss is required")
	}

	return nil
}

// DefaultConfig returns the built-in preset: a 4x4 board with no move limit.
func DefaultConfig() *GameConfig {
	cfg := &GameConfig{
		Name:        "default",
		Description: "Default 4x4 board with unlimited moves",
		GridSize:    4,
		MoveLimit:   UnlimitedMoves,
	}
	cfg.Messages.Welcome = "Flip two tiles to find a matching pair."
	cfg.Messages.Match = "Match!"
	cfg.Messages.Mismatch = "No match, try again."
	cfg.Messages.Cancel = "Flip cancelled."
	cfg.Messages.Win = "You won! All pairs found."
	cfg.Messages.Loss = "Out of moves. Game over."
	cfg.Messages.MovesStatus = "Moves left: %d of %d"
	return cfg
}

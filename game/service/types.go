package service

import (
	"time"

	"github.com/tilepairs/tilepairs/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	Board          *engine.BoardView  `json:"board"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ClickResult contains the result of a tile click
type ClickResult struct {
	Outcome engine.Outcome    `json:"outcome"`
	Board   *engine.BoardView `json:"board"`
	Message string            `json:"message"`
	Events  []GameEvent       `json:"events,omitempty"`
}

// ConfigChangeResult reports whether a configuration edit was applied.
// Refused edits are not errors: out-of-range grid sizes and post-start
// move-limit edits degrade to no-ops.
type ConfigChangeResult struct {
	Accepted bool              `json:"accepted"`
	Board    *engine.BoardView `json:"board"`
	Message  string            `json:"message,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // "flip", "cancel", "match", "mismatch", "win", "loss", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	TileID    *int      `json:"tile_id,omitempty"`
}

// HistoryOptions configures selection history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated selection history
type HistoryResponse struct {
	Selections  []engine.SelectionEntry `json:"selections"`
	Total       int                     `json:"total"`
	Page        int                     `json:"page"`
	PageSize    int                     `json:"page_size"`
	TotalPages  int                     `json:"total_pages"`
	HasNext     bool                    `json:"has_next"`
	HasPrevious bool                    `json:"has_previous"`
}

// ConfigInfo provides information about a board preset
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	MoveLimit   int    `json:"move_limit"`
}

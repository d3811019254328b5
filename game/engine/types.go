package engine

// Phase is the coarse game status derived after every mutating operation.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseWon        Phase = "won"
	PhaseLost       Phase = "lost"
)

const (
	// Validation constants
	MinGridSize = 2
	MaxGridSize = 10

	// UnlimitedMoves disables the loss condition for the whole game.
	UnlimitedMoves = 0

	// MaxFlipped is the hard ceiling on simultaneously face-up unsolved tiles.
	MaxFlipped = 2

	WebSocketBufferSize = 256
)

// Tile is a single grid cell: a unique sequence index and a pair value.
// Every value appears exactly twice on the board, except one singleton
// value on odd-square grids.
type Tile struct {
	ID    int `json:"id"`
	Value int `json:"value"`
}

// Messages holds the player-facing text a preset shows for each game event.
type Messages struct {
	Welcome     string `json:"welcome"`
	Match       string `json:"match"`
	Mismatch    string `json:"mismatch"`
	Cancel      string `json:"cancel"`
	Win         string `json:"win"`
	Loss        string `json:"loss"`
	MovesStatus string `json:"moves_status"`
}

// GameConfig is a board preset loaded from JSON.
type GameConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	GridSize    int      `json:"grid_size"`
	MoveLimit   int      `json:"move_limit"` // 0 means unlimited
	Messages    Messages `json:"messages"`
}

// Outcome classifies what a single tile selection did.
type Outcome string

const (
	OutcomeIgnored    Outcome = "ignored"
	OutcomeFlipped    Outcome = "flipped"
	OutcomeCancelled  Outcome = "cancelled"
	OutcomeMatched    Outcome = "matched"
	OutcomeMismatched Outcome = "mismatched"
)

// SelectionEntry records one accepted tile selection.
type SelectionEntry struct {
	TileID         int     `json:"tile_id"`
	Outcome        Outcome `json:"outcome"`
	Comparison     int     `json:"comparison,omitempty"` // 1-based, set when the selection completed a comparison
	RemainingMoves int     `json:"remaining_moves"`
	Timestamp      int64   `json:"timestamp"`
}

// GameState is the complete internal game state. Persistence stores it as-is;
// clients receive the derived BoardView instead so face-down tile values are
// never exposed.
type GameState struct {
	Tiles          []Tile       `json:"tiles"`
	GridSize       int          `json:"grid_size"`
	MoveLimit      int          `json:"move_limit"`
	RemainingMoves int          `json:"remaining_moves"`
	Flipped        []int        `json:"flipped"`
	Solved         map[int]bool `json:"solved"`
	Phase          Phase        `json:"phase"`
	InputLocked    bool         `json:"input_locked"`
	Comparisons    int          `json:"comparisons"`
	Generation     string       `json:"generation"`
	Message        string       `json:"message"`
	ConfigName     string       `json:"config_name"`

	// History is cumulative across re-initializations. CurrentHistory
	// mirrors it but is cleared on every re-init.
	History         []SelectionEntry `json:"history"`
	CurrentHistory  []SelectionEntry `json:"current_history"`
	TotalSelections int              `json:"total_selections"`
}

// TileView is the client-facing representation of a tile. DisplayValue is
// nil unless the tile is face up.
type TileView struct {
	ID           int  `json:"id"`
	FaceUp       bool `json:"face_up"`
	Solved       bool `json:"solved"`
	DisplayValue *int `json:"display_value,omitempty"`
}

// BoardView is the derived read-only state handed to the presentation layer.
type BoardView struct {
	Tiles          []TileView `json:"tiles"`
	GridSize       int        `json:"grid_size"`
	MoveLimit      int        `json:"move_limit"`
	RemainingMoves int        `json:"remaining_moves"`
	MovesUnlimited bool       `json:"moves_unlimited"`
	Comparisons    int        `json:"comparisons"`
	Phase          Phase      `json:"phase"`
	Won            bool       `json:"won"`
	Lost           bool       `json:"lost"`
	ConfigEditable bool       `json:"config_editable"`
	ResetLabel     string     `json:"reset_label"`
	Message        string     `json:"message"`
	ConfigName     string     `json:"config_name"`
	Generation     string     `json:"generation"`
}

// SelectResult is what SelectTile reports back to callers.
type SelectResult struct {
	Outcome Outcome    `json:"outcome"`
	Board   *BoardView `json:"board"`
}

package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Lifecycle
	Initialize() *BoardView
	Reset() *BoardView
	SetGridSize(n int) bool
	SetMoveLimit(n int) bool

	// Play
	SelectTile(id int) *SelectResult

	// Queries
	Board() *BoardView
	IsFaceUp(id int) bool
	IsSolved(id int) bool
	CurrentPhase() Phase
	Won() bool
	Lost() bool
	RemainingMoves() int
	MovesUnlimited() bool
	ConfigEditable() bool
	ResetLabel() string

	// Persistence
	GetState() *GameState
	SetState(state *GameState) error
	GetConfig() *GameConfig

	// History
	GetHistory() []SelectionEntry
	GetLastSelection() *SelectionEntry
}

// GameEngine implements the Engine interface. All state transitions run
// under a single mutex; the input-locked flag is the game-level mutual
// exclusion that keeps a third tile out of a pending comparison.
type GameEngine struct {
	mu            sync.Mutex
	config        *GameConfig // engine-owned copy, mutated by SetGridSize/SetMoveLimit
	state         *GameState
	shuffle       ShuffleFunc
	scheduler     Scheduler
	cancelPending CancelFunc
	onAsyncClear  func(*BoardView)
}

// Option customizes engine construction.
type Option func(*GameEngine)

// WithShuffle substitutes the board shuffle step.
func WithShuffle(fn ShuffleFunc) Option {
	return func(e *GameEngine) { e.shuffle = fn }
}

// WithScheduler substitutes the deferred-task scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *GameEngine) { e.scheduler = s }
}

// NewEngine creates a new game engine with the provided preset.
func NewEngine(config *GameConfig, opts ...Option) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	// Copy the preset: grid size and move limit are per-game mutable and
	// must not write through to a shared cached config.
	cfg := *config

	engine := &GameEngine{
		config:    &cfg,
		scheduler: NewTimerScheduler(),
	}
	for _, opt := range opts {
		opt(engine)
	}
	engine.initializeLocked()

	return engine, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in preset.
func NewEngineWithDefaults() *GameEngine {
	engine, err := NewEngine(DefaultConfig())
	if err != nil {
		// The built-in preset always validates.
		panic(err)
	}
	return engine
}

// SetAsyncClearHook registers a callback invoked (outside the engine lock)
// whenever the deferred mismatch clear fires, so transports can push the
// updated board to clients without polling.
func (e *GameEngine) SetAsyncClearHook(fn func(*BoardView)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onAsyncClear = fn
}

// Initialize generates a fresh shuffled board, resets all counters and
// flags, and invalidates any pending mismatch clear from the previous game.
func (e *GameEngine) Initialize() *BoardView {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initializeLocked()
	return e.boardViewLocked()
}

// Reset is Initialize under the name the reset control uses.
func (e *GameEngine) Reset() *BoardView {
	return e.Initialize()
}

// initializeLocked rebuilds the game. Cumulative history survives, the
// current-game segment does not. Callers hold e.mu.
func (e *GameEngine) initializeLocked() {
	if e.cancelPending != nil {
		e.cancelPending()
		e.cancelPending = nil
	}

	tiles, err := GenerateTiles(e.config.GridSize, e.shuffle)
	if err != nil {
		// Config is validated before it reaches here.
		panic(err)
	}

	var history []SelectionEntry
	total := 0
	if e.state != nil {
		history = e.state.History
		total = e.state.TotalSelections
	}

	e.state = &GameState{
		Tiles:           tiles,
		GridSize:        e.config.GridSize,
		MoveLimit:       e.config.MoveLimit,
		RemainingMoves:  e.config.MoveLimit,
		Solved:          make(map[int]bool),
		Phase:           PhaseNotStarted,
		Generation:      uuid.NewString(),
		Message:         e.config.Messages.Welcome,
		ConfigName:      e.config.Name,
		History:         history,
		CurrentHistory:  []SelectionEntry{},
		TotalSelections: total,
	}
}

// SetGridSize changes the grid size and forces a full re-initialize, even
// mid-game. Out-of-range sizes are ignored and report false.
func (e *GameEngine) SetGridSize(n int) bool {
	if n < MinGridSize || n > MaxGridSize {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.GridSize = n
	e.initializeLocked()
	return true
}

// SetMoveLimit changes the move limit. Accepted only before the game has
// started; negative values and post-start edits are ignored.
func (e *GameEngine) SetMoveLimit(n int) bool {
	if n < 0 {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Phase != PhaseNotStarted {
		return false
	}
	e.config.MoveLimit = n
	e.state.MoveLimit = n
	e.state.RemainingMoves = n
	return true
}

// Board returns the derived view of the current state.
func (e *GameEngine) Board() *BoardView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.boardViewLocked()
}

// IsFaceUp reports whether the tile is currently revealed (flipped or solved).
func (e *GameEngine) IsFaceUp(id int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.isFaceUp(id)
}

// IsSolved reports whether the tile belongs to a matched pair.
func (e *GameEngine) IsSolved(id int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Solved[id]
}

// CurrentPhase returns the game phase.
func (e *GameEngine) CurrentPhase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Phase
}

// Won reports whether every tile is solved.
func (e *GameEngine) Won() bool {
	return e.CurrentPhase() == PhaseWon
}

// Lost reports whether the move limit ran out first.
func (e *GameEngine) Lost() bool {
	return e.CurrentPhase() == PhaseLost
}

// RemainingMoves returns the remaining-moves counter. Meaningless when
// MovesUnlimited reports true.
func (e *GameEngine) RemainingMoves() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.RemainingMoves
}

// MovesUnlimited reports whether this game has no move limit.
func (e *GameEngine) MovesUnlimited() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.MoveLimit == UnlimitedMoves
}

// ConfigEditable reports whether configuration inputs may be edited, which
// is only the case before the first tile of a game is selected.
func (e *GameEngine) ConfigEditable() bool {
	return e.CurrentPhase() == PhaseNotStarted
}

// ResetLabel returns the label for the reset control.
func (e *GameEngine) ResetLabel() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.resetLabel()
}

// GetConfig returns a copy of the engine's current preset.
func (e *GameEngine) GetConfig() *GameConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg := *e.config
	return &cfg
}

// GetState returns a deep copy of the internal state for persistence.
func (e *GameEngine) GetState() *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// SetState restores a persisted state. A pending mismatch timer does not
// survive a restart, so a restored half-finished comparison is normalized:
// the flipped pair is cleared and input unlocked unless the game is over.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancelPending != nil {
		e.cancelPending()
		e.cancelPending = nil
	}

	st := state.clone()
	if st.Solved == nil {
		st.Solved = make(map[int]bool)
	}
	if len(st.Flipped) >= MaxFlipped {
		st.Flipped = nil
		if st.Phase == PhaseInProgress {
			st.InputLocked = false
		}
	}
	if st.Generation == "" {
		st.Generation = uuid.NewString()
	}

	e.state = st
	e.config.GridSize = st.GridSize
	e.config.MoveLimit = st.MoveLimit
	return nil
}

// GetHistory returns the cumulative selection history.
func (e *GameEngine) GetHistory() []SelectionEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]SelectionEntry, len(e.state.History))
	copy(out, e.state.History)
	return out
}

// GetLastSelection returns the most recent selection, or nil.
func (e *GameEngine) GetLastSelection() *SelectionEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.state.History) == 0 {
		return nil
	}
	entry := e.state.History[len(e.state.History)-1]
	return &entry
}

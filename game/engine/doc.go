// Package engine provides the core game logic for the tile-pair memory game.
//
// The engine package implements the game mechanics including:
//   - Board generation: shuffled numeric pairs on a square grid
//   - Flip, cancel, match, and mismatch handling for tile selections
//   - Move counting under an optional move limit
//   - Win/loss detection and the NotStarted/InProgress/Won/Lost phases
//   - Game state management and persistence
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState is the internal state persisted to
// disk; BoardView is the derived read-only state handed to presentation
// layers, with face-down tile values withheld. GameConfig is a board preset
// loaded from JSON.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result := gameEngine.SelectTile(0)
//	view := result.Board
//
// Game Rules:
//
// Players flip tiles two at a time looking for matching pair values. A
// matching pair stays face up permanently; a mismatched pair turns back
// face down after a short delay. Each completed two-tile comparison
// consumes one move when a move limit is configured. The game is won when
// every tile is solved, and lost when the move limit runs out first. With
// no move limit the loss condition never fires.
//
// Concurrency:
//
// Transitions happen one at a time under an internal mutex. The only
// asynchronous element is the deferred mismatch clear, a cancellable
// scheduled task tied to a per-game generation identifier so a callback
// from a previous game can never touch a newer game's state.
package engine

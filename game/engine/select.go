package engine

import "time"

// SelectTile processes one tile click. Every invalid input degrades to an
// ignored no-op: clicks while input is locked, clicks on a finished game,
// unknown IDs, and clicks on solved tiles. Re-clicking the single flipped
// tile cancels it without consuming a move.
func (e *GameEngine) SelectTile(id int) *SelectResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	st := e.state

	if st.InputLocked || st.Phase == PhaseWon || st.Phase == PhaseLost {
		return e.ignoredLocked()
	}
	if id < 0 || id >= len(st.Tiles) || st.Solved[id] {
		return e.ignoredLocked()
	}

	// First accepted selection starts the game.
	if st.Phase == PhaseNotStarted {
		st.Phase = PhaseInProgress
	}

	switch len(st.Flipped) {
	case 0:
		st.Flipped = []int{id}
		e.recordLocked(id, OutcomeFlipped)
		return &SelectResult{Outcome: OutcomeFlipped, Board: e.boardViewLocked()}

	case 1:
		first := st.Flipped[0]
		if id == first {
			// Cancel: no comparison completed, no move consumed.
			st.Flipped = nil
			st.Message = e.config.Messages.Cancel
			e.recordLocked(id, OutcomeCancelled)
			return &SelectResult{Outcome: OutcomeCancelled, Board: e.boardViewLocked()}
		}
		st.Flipped = append(st.Flipped, id)
		st.InputLocked = true
		outcome := e.evaluateComparisonLocked(first, id)
		e.recordLocked(id, outcome)
		return &SelectResult{Outcome: outcome, Board: e.boardViewLocked()}

	default:
		// Unreachable while the input lock holds; kept as a no-op so a
		// logic regression cannot corrupt the flipped set.
		return e.ignoredLocked()
	}
}

func (e *GameEngine) ignoredLocked() *SelectResult {
	return &SelectResult{Outcome: OutcomeIgnored, Board: e.boardViewLocked()}
}

// evaluateComparisonLocked resolves a completed two-tile comparison. A match
// solves both tiles synchronously; a mismatch schedules the deferred clear.
// The move counter decrements once per comparison regardless of outcome.
func (e *GameEngine) evaluateComparisonLocked(a, b int) Outcome {
	st := e.state
	st.Comparisons++

	matched := st.Tiles[a].Value == st.Tiles[b].Value
	if matched {
		st.Solved[a] = true
		st.Solved[b] = true
		st.Flipped = nil
		st.InputLocked = false
		st.Message = e.config.Messages.Match
	} else {
		st.Message = e.config.Messages.Mismatch
		gen := st.Generation
		e.cancelPending = e.scheduler.AfterFunc(MismatchDelay, func() {
			e.clearMismatch(gen)
		})
	}

	if st.MoveLimit > UnlimitedMoves {
		st.RemainingMoves--
	}

	e.refreshPhaseLocked()

	if matched {
		return OutcomeMatched
	}
	return OutcomeMismatched
}

// refreshPhaseLocked recomputes won/lost from current counts after every
// comparison. Won takes priority when the final comparison both completes
// the board and exhausts the move limit.
func (e *GameEngine) refreshPhaseLocked() {
	st := e.state

	if len(st.Tiles) > 0 && len(st.Solved) == len(st.Tiles) {
		st.Phase = PhaseWon
		st.InputLocked = true
		st.Message = e.config.Messages.Win
		return
	}

	if st.MoveLimit > UnlimitedMoves && st.RemainingMoves <= 0 && st.Phase == PhaseInProgress {
		st.Phase = PhaseLost
		st.InputLocked = true
		st.Message = e.config.Messages.Loss
	}
}

// clearMismatch is the deferred task that turns a mismatched pair back face
// down. The generation check makes a callback left over from an earlier
// game provably inert even if its timer was never stopped.
func (e *GameEngine) clearMismatch(generation string) {
	e.mu.Lock()

	if generation != e.state.Generation {
		e.mu.Unlock()
		return
	}

	e.cancelPending = nil
	e.state.Flipped = nil
	// A lost game stays locked until the next initialize.
	if e.state.Phase == PhaseInProgress {
		e.state.InputLocked = false
	}

	hook := e.onAsyncClear
	var view *BoardView
	if hook != nil {
		view = e.boardViewLocked()
	}
	e.mu.Unlock()

	if hook != nil {
		hook(view)
	}
}

// recordLocked appends a selection to both history segments.
func (e *GameEngine) recordLocked(id int, outcome Outcome) {
	st := e.state
	entry := SelectionEntry{
		TileID:         id,
		Outcome:        outcome,
		RemainingMoves: st.RemainingMoves,
		Timestamp:      time.Now().UnixMilli(),
	}
	if outcome == OutcomeMatched || outcome == OutcomeMismatched {
		entry.Comparison = st.Comparisons
	}
	st.History = append(st.History, entry)
	st.CurrentHistory = append(st.CurrentHistory, entry)
	st.TotalSelections++
}

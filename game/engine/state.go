package engine

func (gs *GameState) isFaceUp(id int) bool {
	if gs.Solved[id] {
		return true
	}
	for _, f := range gs.Flipped {
		if f == id {
			return true
		}
	}
	return false
}

func (gs *GameState) resetLabel() string {
	if gs.Phase == PhaseWon || gs.Phase == PhaseLost {
		return "Play Again"
	}
	return "Reset"
}

// clone deep-copies the state so callers can hold it outside the engine lock.
func (gs *GameState) clone() *GameState {
	out := *gs

	out.Tiles = make([]Tile, len(gs.Tiles))
	copy(out.Tiles, gs.Tiles)

	if gs.Flipped != nil {
		out.Flipped = make([]int, len(gs.Flipped))
		copy(out.Flipped, gs.Flipped)
	}

	out.Solved = make(map[int]bool, len(gs.Solved))
	for id, v := range gs.Solved {
		out.Solved[id] = v
	}

	out.History = make([]SelectionEntry, len(gs.History))
	copy(out.History, gs.History)
	out.CurrentHistory = make([]SelectionEntry, len(gs.CurrentHistory))
	copy(out.CurrentHistory, gs.CurrentHistory)

	return &out
}

// boardViewLocked builds the client-facing view. Face-down tiles carry no
// display value, so a view is safe to hand to any client. Callers hold e.mu.
func (e *GameEngine) boardViewLocked() *BoardView {
	st := e.state

	tiles := make([]TileView, len(st.Tiles))
	for i, tile := range st.Tiles {
		tv := TileView{
			ID:     tile.ID,
			FaceUp: st.isFaceUp(tile.ID),
			Solved: st.Solved[tile.ID],
		}
		if tv.FaceUp {
			value := tile.Value
			tv.DisplayValue = &value
		}
		tiles[i] = tv
	}

	return &BoardView{
		Tiles:          tiles,
		GridSize:       st.GridSize,
		MoveLimit:      st.MoveLimit,
		RemainingMoves: st.RemainingMoves,
		MovesUnlimited: st.MoveLimit == UnlimitedMoves,
		Comparisons:    st.Comparisons,
		Phase:          st.Phase,
		Won:            st.Phase == PhaseWon,
		Lost:           st.Phase == PhaseLost,
		ConfigEditable: st.Phase == PhaseNotStarted,
		ResetLabel:     st.resetLabel(),
		Message:        st.Message,
		ConfigName:     st.ConfigName,
		Generation:     st.Generation,
	}
}

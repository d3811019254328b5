package engine

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBoardView_HidesFaceDownValues(t *testing.T) {
	engine, _ := newTestEngine(t, 2, 0)

	for _, tile := range engine.Board().Tiles {
		if tile.DisplayValue != nil {
			t.Errorf("face-down tile %d exposes value %d", tile.ID, *tile.DisplayValue)
		}
	}
}

func TestBoardView_FaceUpTilesShowValues(t *testing.T) {
	engine, _ := newTestEngine(t, 2, 0)

	engine.SelectTile(0)
	board := engine.Board()

	if board.Tiles[0].DisplayValue == nil {
		t.Fatal("flipped tile must expose its display value")
	}
	if *board.Tiles[0].DisplayValue != 1 {
		t.Errorf("expected display value 1, got %d", *board.Tiles[0].DisplayValue)
	}
	if board.Tiles[1].DisplayValue != nil {
		t.Error("unflipped tile must not expose a value")
	}
}

func TestBoardView_SolvedTilesStayVisible(t *testing.T) {
	engine, _ := newTestEngine(t, 2, 0)

	engine.SelectTile(0)
	engine.SelectTile(1)
	board := engine.Board()

	one := 1
	want := []TileView{
		{ID: 0, FaceUp: true, Solved: true, DisplayValue: &one},
		{ID: 1, FaceUp: true, Solved: true, DisplayValue: &one},
		{ID: 2},
		{ID: 3},
	}
	if diff := cmp.Diff(want, board.Tiles); diff != "" {
		t.Errorf("tile views mismatch (-want +got):\n%s", diff)
	}
}

func TestBoardView_Flags(t *testing.T) {
	engine, _ := newTestEngine(t, 2, 4)

	board := engine.Board()
	if board.MovesUnlimited {
		t.Error("limited game must not report unlimited moves")
	}
	if !board.ConfigEditable {
		t.Error("config must be editable before start")
	}
	if board.ResetLabel != "Reset" {
		t.Errorf("expected reset label %q, got %q", "Reset", board.ResetLabel)
	}
	if board.MoveLimit != 4 || board.RemainingMoves != 4 {
		t.Errorf("expected limit and remaining of 4, got %d/%d", board.MoveLimit, board.RemainingMoves)
	}

	engine.SelectTile(0)
	engine.SelectTile(1)
	engine.SelectTile(2)
	engine.SelectTile(3)

	board = engine.Board()
	if !board.Won || board.Lost {
		t.Errorf("expected won board, got won=%v lost=%v", board.Won, board.Lost)
	}
	if board.ResetLabel != "Play Again" {
		t.Errorf("expected reset label %q on finished board, got %q", "Play Again", board.ResetLabel)
	}
	if board.ConfigEditable {
		t.Error("finished board must not allow config edits")
	}
}

func TestTileViewJSON_FaceDownOmitsValue(t *testing.T) {
	data, err := json.Marshal(TileView{ID: 3})
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["display_value"]; ok {
		t.Error("face-down tile JSON must not contain display_value")
	}
}

func TestGameState_Clone(t *testing.T) {
	engine, _ := newTestEngine(t, 2, 3)
	engine.SelectTile(0)

	snapshot := engine.GetState()
	snapshot.Solved[3] = true
	snapshot.Flipped = append(snapshot.Flipped, 2)

	if engine.IsSolved(3) {
		t.Error("mutating a snapshot leaked into the engine's solved set")
	}
	if engine.IsFaceUp(2) {
		t.Error("mutating a snapshot leaked into the engine's flipped set")
	}
}

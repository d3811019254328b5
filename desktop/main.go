// Command desktop is a terminal client for the tile matching game. It talks
// to a running game server over the REST API and subscribes to the session's
// WebSocket feed, so deferred board changes (a mismatched pair flipping back)
// appear without polling.
//
// Keys: arrows move the cursor, Enter or Space flips the selected tile,
// r resets the board, n starts a fresh session with the next preset, q quits.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
	"github.com/rivo/tview"
)

type TileView struct {
	ID           int  `json:"id"`
	FaceUp       bool `json:"face_up"`
	Solved       bool `json:"solved"`
	DisplayValue *int `json:"display_value,omitempty"`
}

type BoardView struct {
	Tiles          []TileView `json:"tiles"`
	GridSize       int        `json:"grid_size"`
	MoveLimit      int        `json:"move_limit"`
	RemainingMoves int        `json:"remaining_moves"`
	MovesUnlimited bool       `json:"moves_unlimited"`
	Comparisons    int        `json:"comparisons"`
	Phase          string     `json:"phase"`
	Won            bool       `json:"won"`
	Lost           bool       `json:"lost"`
	ResetLabel     string     `json:"reset_label"`
	Message        string     `json:"message"`
	ConfigName     string     `json:"config_name"`
}

type SessionResponse struct {
	ID         string     `json:"id"`
	ConfigName string     `json:"config_name"`
	Board      *BoardView `json:"board"`
}

type ClickResponse struct {
	Outcome string     `json:"outcome"`
	Board   *BoardView `json:"board"`
}

type ResetResponse struct {
	Message string     `json:"message"`
	Board   *BoardView `json:"board"`
}

type ConfigInfo struct {
	ConfigID  string `json:"config_id"`
	Name      string `json:"name"`
	GridSize  int    `json:"grid_size"`
	MoveLimit int    `json:"move_limit"`
}

// WSMessage mirrors the server's WebSocket envelope.
type WSMessage struct {
	SessionID string     `json:"session_id"`
	Board     *BoardView `json:"board,omitempty"`
	Event     string     `json:"event,omitempty"`
}

// App holds the UI widgets and the connection to one game session.
type App struct {
	serverURL  string
	wsHost     string
	sessionID  string
	configID   string
	httpClient *http.Client
	wsConn     *websocket.Conn

	app    *tview.Application
	table  *tview.Table
	status *tview.TextView

	mu    sync.Mutex
	board *BoardView
}

func NewApp(serverURL string) *App {
	return &App{
		serverURL:  serverURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		app:        tview.NewApplication(),
		table:      tview.NewTable(),
		status:     tview.NewTextView().SetDynamicColors(true),
	}
}

func (a *App) apiPost(path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	resp, err := a.httpClient.Post(a.serverURL+path, "application/json", reqBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s", resp.Status, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (a *App) apiGet(path string, result interface{}) error {
	resp, err := a.httpClient.Get(a.serverURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s: %s", resp.Status, string(respBody))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (a *App) createSession(configID string) error {
	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session SessionResponse
	if err := a.apiPost("/api/sessions", body, &session); err != nil {
		return err
	}

	a.sessionID = session.ID
	a.configID = configID
	a.setBoard(session.Board)
	return nil
}

// cyclePreset abandons the current session and starts a new one with the
// next shipped preset, reconnecting the WebSocket feed to the new session.
func (a *App) cyclePreset() {
	var configs []ConfigInfo
	if err := a.apiGet("/api/configs", &configs); err != nil {
		a.showError(err)
		return
	}
	if len(configs) == 0 {
		return
	}

	next := configs[0]
	for i, c := range configs {
		if c.ConfigID == a.configID {
			next = configs[(i+1)%len(configs)]
			break
		}
	}

	if a.wsConn != nil {
		a.wsConn.Close()
		a.wsConn = nil
	}

	if err := a.createSession(next.ConfigID); err != nil {
		a.showError(err)
		return
	}

	a.table.Clear()
	if err := a.connectWebSocket(a.wsHost); err != nil {
		a.showError(err)
	}
	a.render()
}

func (a *App) loadSession(sessionID string) error {
	var board BoardView
	if err := a.apiGet(fmt.Sprintf("/api/sessions/%s/board", sessionID), &board); err != nil {
		return err
	}

	a.sessionID = sessionID
	a.setBoard(&board)
	return nil
}

func (a *App) clickTile(tileID int) {
	var resp ClickResponse
	err := a.apiPost(fmt.Sprintf("/api/sessions/%s/click", a.sessionID), map[string]int{"tile_id": tileID}, &resp)
	if err != nil {
		a.showError(err)
		return
	}
	a.setBoard(resp.Board)
	a.render()
}

func (a *App) reset() {
	var resp ResetResponse
	err := a.apiPost(fmt.Sprintf("/api/sessions/%s/reset", a.sessionID), nil, &resp)
	if err != nil {
		a.showError(err)
		return
	}
	a.setBoard(resp.Board)
	a.render()
}

func (a *App) setBoard(board *BoardView) {
	a.mu.Lock()
	a.board = board
	a.mu.Unlock()
}

func (a *App) currentBoard() *BoardView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.board
}

// connectWebSocket subscribes to the session feed and applies pushed board
// updates to the UI.
func (a *App) connectWebSocket(host string) error {
	a.wsHost = host
	wsURL := url.URL{Scheme: "ws", Host: host, Path: "/ws"}
	q := wsURL.Query()
	q.Set("session", a.sessionID)
	wsURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return err
	}

	a.wsConn = conn
	go a.listenWebSocket()
	return nil
}

func (a *App) listenWebSocket() {
	defer a.wsConn.Close()

	for {
		_, message, err := a.wsConn.ReadMessage()
		if err != nil {
			return
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			continue
		}
		if wsMsg.Board == nil {
			continue
		}

		a.setBoard(wsMsg.Board)
		a.app.QueueUpdateDraw(a.render)
	}
}

// render redraws the table and status bar from the current board. Must run
// on the UI goroutine.
func (a *App) render() {
	board := a.currentBoard()
	if board == nil {
		return
	}

	for _, tile := range board.Tiles {
		row := tile.ID / board.GridSize
		col := tile.ID % board.GridSize

		text := " ■ "
		color := tcell.ColorGray
		switch {
		case tile.Solved && tile.DisplayValue != nil:
			text = fmt.Sprintf("(%d)", *tile.DisplayValue)
			color = tcell.ColorGreen
		case tile.FaceUp && tile.DisplayValue != nil:
			text = fmt.Sprintf(" %d ", *tile.DisplayValue)
			color = tcell.ColorYellow
		}

		cell := tview.NewTableCell(text).
			SetAlign(tview.AlignCenter).
			SetTextColor(color).
			SetSelectable(true)
		a.table.SetCell(row, col, cell)
	}

	moves := "unlimited"
	if !board.MovesUnlimited {
		moves = fmt.Sprintf("%d/%d", board.RemainingMoves, board.MoveLimit)
	}

	banner := ""
	if board.Won {
		banner = " [green::b]YOU WON![-:-:-]"
	} else if board.Lost {
		banner = " [red::b]OUT OF MOVES[-:-:-]"
	}

	a.status.SetText(fmt.Sprintf(
		"[::b]%s[-:-:-]  session %s  phase %s  moves %s  comparisons %d%s\n%s\n[gray]enter/space flip · r %s · n next preset · q quit[-]",
		board.ConfigName, a.sessionID, board.Phase, moves, board.Comparisons, banner, board.Message, board.ResetLabel))
}

func (a *App) showError(err error) {
	a.status.SetText(fmt.Sprintf("[red]error: %v[-]", err))
}

func (a *App) run() error {
	a.table.SetSelectable(true, true)
	a.table.SetBorder(true).SetTitle(" Tile Pairs ")

	a.table.SetSelectedFunc(func(row, col int) {
		board := a.currentBoard()
		if board == nil {
			return
		}
		a.clickTile(row*board.GridSize + col)
	})

	a.table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'q':
			a.app.Stop()
			return nil
		case 'r':
			a.reset()
			return nil
		case 'n':
			a.cyclePreset()
			return nil
		case ' ':
			row, col := a.table.GetSelection()
			board := a.currentBoard()
			if board != nil {
				a.clickTile(row*board.GridSize + col)
			}
			return nil
		}
		return event
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.table, 0, 1, true).
		AddItem(a.status, 4, 0, false)

	a.render()
	return a.app.SetRoot(layout, true).Run()
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	host := flag.String("host", "localhost:8080", "Game server host for the WebSocket connection")
	sessionID := flag.String("session", "", "Join an existing session by ID")
	configID := flag.String("config", "", "Board preset ID for a new session")
	flag.Parse()

	app := NewApp(*serverURL)

	var err error
	if *sessionID != "" {
		err = app.loadSession(*sessionID)
	} else {
		err = app.createSession(*configID)
	}
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if err := app.connectWebSocket(*host); err != nil {
		log.Printf("WebSocket unavailable, updates require manual interaction: %v", err)
	}

	if err := app.run(); err != nil {
		log.Fatalf("UI error: %v", err)
	}
}

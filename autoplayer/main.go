package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
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

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(configID string) (*BoardView, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.Board, nil
}

func (c *Client) GetBoard() (*BoardView, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/board", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get board: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get board failed: %s - %s", resp.Status, string(body))
	}

	var board BoardView
	if err := json.NewDecoder(resp.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("parse board: %w", err)
	}

	return &board, nil
}

func (c *Client) Click(tileID int) (*ClickResponse, error) {
	body, err := json.Marshal(map[string]int{"tile_id": tileID})
	if err != nil {
		return nil, fmt.Errorf("marshal click: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/click", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("click tile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("click failed: %s - %s", resp.Status, string(respBody))
	}

	var clickResp ClickResponse
	if err := json.NewDecoder(resp.Body).Decode(&clickResp); err != nil {
		return nil, fmt.Errorf("parse click response: %w", err)
	}

	return &clickResp, nil
}

func (c *Client) Reset() (*BoardView, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var resetResp ResetResponse
	if err := json.NewDecoder(resp.Body).Decode(&resetResp); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}

	return resetResp.Board, nil
}

// waitForClear polls the board until no unsolved tile is face up, which is
// how the reveal window after a mismatch ends. The strategy observes each
// poll so no revealed value is lost.
func (c *Client) waitForClear(strategy *MemoryStrategy) (*BoardView, error) {
	deadline := time.Now().Add(5 * time.Second)
	for {
		board, err := c.GetBoard()
		if err != nil {
			return nil, err
		}
		strategy.Observe(board)

		pending := false
		for _, tile := range board.Tiles {
			if tile.FaceUp && !tile.Solved {
				pending = true
				break
			}
		}
		if !pending {
			return board, nil
		}
		if time.Now().After(deadline) {
			return board, fmt.Errorf("mismatch never cleared")
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	configID := flag.String("config", "", "Board preset ID (classic, blitz, challenge, expert)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxAttempts := flag.Int("max-attempts", 20, "Maximum attempts before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between clicks in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var board *BoardView
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		savedSessionID = *continueSession
	} else {
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		client.sessionID = savedSessionID
		log.Printf("Resuming session: %s", client.sessionID)
		board, err = client.GetBoard()
		if err != nil {
			log.Printf("Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = ""
		}
	}

	if savedSessionID == "" {
		board, err = client.CreateSession(*configID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("Session created: %s", client.sessionID)

		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	pairs := (board.GridSize*board.GridSize + 1) / 2
	budget := "unlimited"
	if !board.MovesUnlimited {
		budget = fmt.Sprintf("%d", board.MoveLimit)
	}
	log.Printf("Board: %dx%d, %d pairs, budget: %s, preset: %s",
		board.GridSize, board.GridSize, pairs, budget, board.ConfigName)

	if board.GridSize%2 != 0 {
		log.Fatalf("Odd grid size %d leaves one tile without a partner; the board cannot be fully cleared", board.GridSize)
	}

	attemptNum := 0
	for attemptNum < *maxAttempts {
		attemptNum++

		log.Printf("\n=== Attempt %d/%d ===", attemptNum, *maxAttempts)

		board, err = client.Reset()
		if err != nil {
			log.Fatalf("Failed to reset game: %v", err)
		}

		strategy := NewMemoryStrategy()
		strategy.Observe(board)

		board, err = playGame(client, strategy, board, *verbose, *delayMs)
		if err != nil {
			log.Printf("Attempt aborted: %v", err)
			continue
		}

		log.Printf("Attempt %d: comparisons=%d, phase=%s", attemptNum, board.Comparisons, board.Phase)

		if board.Won {
			log.Printf("\n🎉 WON in attempt %d with %d comparisons!", attemptNum, board.Comparisons)
			log.Printf("Session: %s", client.sessionID)
			os.Exit(0)
		}
	}

	log.Printf("\n❌ Failed to win after %d attempts", attemptNum)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}

// playGame runs one game to completion with the given strategy.
func playGame(client *Client, strategy *MemoryStrategy, board *BoardView, verbose bool, delayMs int) (*BoardView, error) {
	for !board.Won && !board.Lost {
		first := strategy.ChooseFirst(board)
		if first < 0 {
			return board, fmt.Errorf("no tile left to flip")
		}

		resp, err := client.Click(first)
		if err != nil {
			return board, err
		}
		if resp.Outcome == "ignored" {
			// Input still locked from a previous mismatch.
			board, err = client.waitForClear(strategy)
			if err != nil {
				return board, err
			}
			continue
		}
		strategy.Observe(resp.Board)
		board = resp.Board

		second := strategy.ChooseSecond(board, first)
		if second < 0 {
			return board, fmt.Errorf("no second tile to flip")
		}

		resp, err = client.Click(second)
		if err != nil {
			return board, err
		}
		strategy.Observe(resp.Board)
		board = resp.Board

		if verbose {
			log.Printf("flip %d + %d -> %s (comparisons=%d, remaining=%d)",
				first, second, resp.Outcome, board.Comparisons, board.RemainingMoves)
		}

		if resp.Outcome == "mismatched" && !board.Lost {
			board, err = client.waitForClear(strategy)
			if err != nil {
				return board, err
			}
		}

		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}
	}

	return board, nil
}

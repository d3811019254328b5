package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tilepairs/tilepairs/game/engine"
	"github.com/tilepairs/tilepairs/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tile Pairs Game",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Pairs Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Find every matching pair on a face-down grid of tiles. Flip two tiles per
move; matching pairs stay face up, mismatches flip back after a second.
Some presets limit the number of comparisons you get.

AVAILABLE TOOLS:
- board: Get the current board (face-down tiles hide their values)
- click_tile: Flip a tile - requires intent explanation
- reset_game: Reshuffle and restart the board
- click_history: View past selections
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- set_grid_size: Change the board dimensions (restarts the game)
- set_move_limit: Change the move budget (before the first flip only)
- list_configs: List available board presets
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on click_tile serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional preset selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "ID of the board preset to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board",
		Description: "Get the current board. Face-down tiles show as ■ and never reveal their value.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoard)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "click_tile",
		Description: "Flip a tile by its ID. Clicking the sole flipped tile again cancels the flip without spending a move.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"tile_id": map[string]interface{}{
					"type":        "integer",
					"description": "ID of the tile to flip (0-based, row-major)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this flip (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "tile_id"},
		},
	}, c.handleClickTile)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reshuffle the board and restart the game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_grid_size",
		Description: "Change the board dimensions (2-10). Restarts the game with a fresh shuffle.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"grid_size": map[string]interface{}{
					"type":        "integer",
					"description": "New grid size (2-10)",
				},
			},
			Required: []string{"session_id", "grid_size"},
		},
	}, c.handleSetGridSize)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "set_move_limit",
		Description: "Change the move budget. Only accepted before the first flip of a game; 0 means unlimited.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"move_limit": map[string]interface{}{
					"type":        "integer",
					"description": "New move limit (0 for unlimited)",
				},
			},
			Required: []string{"session_id", "move_limit"},
		},
	}, c.handleSetMoveLimit)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "click_history",
		Description: "Get selection history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleClickHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_id"] = configName
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPreset: %s\n\n%s",
		session.ID, session.ConfigName, formatBoard(session.Board))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		phase := ""
		if s.Board != nil {
			phase = string(s.Board.Phase)
		}
		result += fmt.Sprintf("- %s (Preset: %s, Phase: %s, Created: %s)\n",
			s.ID, s.ConfigName, phase, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Session: %s\nPreset: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatBoard(session.Board))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var board engine.BoardView
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/board", sessionID), nil, &board)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoard(&board)), nil
}

func (c *Client) handleClickTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	tileIDRaw, ok := args["tile_id"].(float64)
	if !ok {
		return mcp.NewToolResultError("tile_id is required"), nil
	}
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"tile_id": int(tileIDRaw),
	}

	var result service.ClickResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/click", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatClickResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		Board   *engine.BoardView `json:"board"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatBoard(response.Board))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSetGridSize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	gridSizeRaw, ok := args["grid_size"].(float64)
	if !ok {
		return mcp.NewToolResultError("grid_size is required"), nil
	}

	body := map[string]interface{}{
		"grid_size": int(gridSizeRaw),
	}

	var result service.ConfigChangeResult
	err := c.apiCall("PUT", fmt.Sprintf("/api/sessions/%s/grid-size", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatConfigChange("Grid size", &result)), nil
}

func (c *Client) handleSetMoveLimit(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	moveLimitRaw, ok := args["move_limit"].(float64)
	if !ok {
		return mcp.NewToolResultError("move_limit is required"), nil
	}

	body := map[string]interface{}{
		"move_limit": int(moveLimitRaw),
	}

	var result service.ConfigChangeResult
	err := c.apiCall("PUT", fmt.Sprintf("/api/sessions/%s/move-limit", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatConfigChange("Move limit", &result)), nil
}

func (c *Client) handleClickHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Presets:\n\n"
	for _, config := range configs {
		limit := "unlimited moves"
		if config.MoveLimit > 0 {
			limit = fmt.Sprintf("%d moves", config.MoveLimit)
		}
		result += fmt.Sprintf("• %s (id: %s)\n  %s\n  Grid: %dx%d, %s\n\n",
			config.Name, config.ConfigID, config.Description,
			config.GridSize, config.GridSize, limit)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Tile Pairs Game - Complete Instructions

GAME OBJECTIVE:
Match every pair on a face-down grid of tiles before the move budget runs
out (some presets have no budget at all).

GAME MECHANICS:
• Click a tile to flip it face up.
• Click a second tile to compare. A completed comparison is one move.
• Matching values lock both tiles face up permanently.
• Mismatched tiles stay visible for one second, then flip back face down.
• Clicking the sole face-up tile again cancels the flip. NO move is spent.
• While a mismatched pair is showing, clicks are ignored. Wait for the
  board to flip the pair back before selecting again.
• On odd-sized boards (3x3, 5x5...) one value appears on a single tile.
  That tile can never be matched, so a full clear needs an even grid.

MOVE BUDGET:
• A preset's move_limit is the number of comparisons you may complete.
• Every completed comparison costs one move, match or mismatch.
• move_limit 0 means unlimited: the game cannot be lost.
• Matching the final pair on your last move is still a win.

BOARD DISPLAY:
• ■  - face-down tile (value hidden; the server never reveals it)
• 7  - face-up tile showing its value
• (7) - solved tile, permanently face up

AI AGENTS - STRATEGY:
1. Remember everything. Each mismatch reveals two values. With perfect
   recall, a revealed value's partner is a guaranteed match later.
2. Prefer flipping unseen tiles first; only pair up when you know both
   positions of a value.
3. On move-limited presets, never complete a comparison you are not
   confident about if an information-gathering flip can be cancelled.
4. Use click_history to audit what has been revealed so far.

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and configuration
- set_grid_size restarts the board; set_move_limit works only before the
  first flip of a game

Good luck, and keep a tidy memory of the board!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

// formatBoard renders the board as a text grid with a status header.
func formatBoard(board *engine.BoardView) string {
	if board == nil {
		return "No board available"
	}

	var result strings.Builder

	moves := "unlimited"
	if !board.MovesUnlimited {
		moves = fmt.Sprintf("%d/%d", board.RemainingMoves, board.MoveLimit)
	}
	result.WriteString(fmt.Sprintf("Phase: %s | Moves left: %s | Comparisons: %d\n\n",
		board.Phase, moves, board.Comparisons))

	// Cell width must fit the largest possible value plus solved parens.
	width := len(fmt.Sprintf("(%d)", engine.PairCount(board.GridSize)))
	for i, tile := range board.Tiles {
		var cell string
		switch {
		case tile.Solved && tile.DisplayValue != nil:
			cell = fmt.Sprintf("(%d)", *tile.DisplayValue)
		case tile.FaceUp && tile.DisplayValue != nil:
			cell = fmt.Sprintf("%d", *tile.DisplayValue)
		default:
			cell = "■"
		}
		result.WriteString(fmt.Sprintf("%*s", width, cell))

		if (i+1)%board.GridSize == 0 {
			result.WriteString("\n")
		} else {
			result.WriteString(" ")
		}
	}

	if board.Won {
		result.WriteString("\n🎉 YOU WON!")
	} else if board.Lost {
		result.WriteString("\n💀 OUT OF MOVES")
	}

	if board.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", board.Message))
	}

	return result.String()
}

func formatClickResult(result *service.ClickResult) string {
	var response string
	switch result.Outcome {
	case engine.OutcomeMatched:
		response = "✓ Match!\n"
	case engine.OutcomeMismatched:
		response = "✗ No match. The pair flips back in one second.\n"
	case engine.OutcomeFlipped:
		response = "Tile flipped. Pick a second tile, or click it again to cancel.\n"
	case engine.OutcomeCancelled:
		response = "Flip cancelled. No move spent.\n"
	case engine.OutcomeIgnored:
		response = "Click ignored (input locked, game over, or invalid tile).\n"
	default:
		response = fmt.Sprintf("Outcome: %s\n", result.Outcome)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatBoard(result.Board)
	return response
}

func formatConfigChange(what string, result *service.ConfigChangeResult) string {
	if !result.Accepted {
		msg := result.Message
		if msg == "" {
			msg = "change refused"
		}
		return fmt.Sprintf("%s not changed: %s\n\n%s", what, msg, formatBoard(result.Board))
	}
	return fmt.Sprintf("%s updated.\n\n%s", what, formatBoard(result.Board))
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Selection History (Page %d/%d) - Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.Total)

	for i, entry := range history.Selections {
		num := (history.Page-1)*history.PageSize + i + 1
		line := fmt.Sprintf("%d. tile %d: %s", num, entry.TileID, entry.Outcome)
		if entry.Comparison > 0 {
			line += fmt.Sprintf(" (comparison #%d)", entry.Comparison)
		}
		result += line + "\n"
	}

	return result
}

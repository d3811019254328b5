// Package mcp provides a Model Context Protocol server for the tile
// matching game.
//
// The package is a thin proxy: every tool call is translated into a REST
// request against the game's HTTP API, so the MCP surface and the web
// surface always agree on game state.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - board: Get the current board rendered as a text grid
//   - click_tile: Flip a tile, with an intent explanation
//   - reset_game: Reshuffle and restart the board
//   - click_history: Retrieve selection history with pagination
//   - create_session: Create new game session with preset selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - set_grid_size: Change the board dimensions
//   - set_move_limit: Change the move budget before a game starts
//   - list_configs: List available board presets
//   - game_instructions: Full rules and strategy notes
//
// Anti-cheat:
//
// Tool output is built from the BoardView the API returns, which never
// carries the value of a face-down tile. An agent therefore plays under
// the same information constraints as a human player.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp

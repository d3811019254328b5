// Package api provides the HTTP REST API for the tile pairs game.
//
// The api package implements:
//   - RESTful endpoints for tile selection and board retrieval
//   - Session management endpoints
//   - Board preset listing, retrieval, and creation
//   - WebSocket upgrade handling for live board updates
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional config_id in body)
//   - GET /api/sessions - List all sessions (sort, order, limit query params)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/board - Get the current board view
//   - POST /api/sessions/{id}/click - Select a tile ({"tile_id": N})
//   - POST /api/sessions/{id}/reset - Reshuffle and restart the board
//   - PUT /api/sessions/{id}/grid-size - Change grid size ({"grid_size": N})
//   - PUT /api/sessions/{id}/move-limit - Change move limit ({"move_limit": N})
//   - GET /api/sessions/{id}/history - Paginated selection history
//
// Presets:
//   - GET /api/configs - List available board presets
//   - GET /api/configs/{name} - Get a preset by ID
//   - POST /api/configs - Save a new preset
//
// All endpoints accept and return JSON. Board responses use the
// engine.BoardView shape, which hides the values of face-down tiles. A
// click response carries the selection outcome (flipped, cancelled,
// matched, mismatched, ignored), the updated board, and derived events.
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Clients wanting to see mismatched pairs flip back without polling should
// also open GET /ws?session={id}, where the hub pushes board updates
// including those produced by the deferred mismatch clear.
package api

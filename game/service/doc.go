// Package service provides the application layer between the transports
// (REST, websocket, MCP) and the game engine.
//
// The GameService interface is the single entry point for gameplay. It
// resolves sessions through a SessionManager, board presets through a
// ConfigManager, and translates engine results into transport-friendly
// structures (ClickResult, ConfigChangeResult, HistoryResponse).
//
// Deferred board changes, such as a mismatched pair flipping back face
// down after the reveal window, are pushed through the notifier callback
// registered with SetNotifier so connected clients do not have to poll.
package service

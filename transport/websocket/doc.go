// Package websocket pushes live board updates to connected clients.
//
// The Hub tracks clients by session ID and fans out Message envelopes when
// the board changes, including changes the player did not trigger directly,
// like a mismatched pair flipping back after the reveal window. Connections
// are push-only: the read side exists to service pings and detect closes.
//
// Only engine.BoardView crosses the wire, so spectators never see the value
// of a face-down tile.
package websocket

// Package session manages game session lifecycle and storage.
//
// Manager keeps sessions in memory keyed by a case-insensitive ID and can be
// backed by a SessionPersistence implementation. With persistence enabled,
// sessions survive restarts: Get falls back to storage when a session is not
// in memory, LoadPersistedSessions warms the cache at startup, and
// CleanupExpiredSessions evicts idle sessions from memory without touching
// their files.
//
// FilePersistence stores one JSON document per session, containing the
// complete game state (tile layout included) plus the preset ID needed to
// rebuild the engine on load.
package session

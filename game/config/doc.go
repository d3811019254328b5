// Package config loads board presets from JSON files.
//
// Each preset file defines a complete engine.GameConfig (grid size, move
// limit, player-facing messages) and is addressed by its filename without
// the .json extension. The Manager caches parsed presets and falls back to
// the built-in classic board when no preset files are available.
package config

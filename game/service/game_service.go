package service

import (
	"context"
	"time"

	"github.com/tilepairs/tilepairs/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	ClickTile(ctx context.Context, sessionID string, tileID int) (*ClickResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.BoardView, error)
	SetGridSize(ctx context.Context, sessionID string, gridSize int) (*ConfigChangeResult, error)
	SetMoveLimit(ctx context.Context, sessionID string, moveLimit int) (*ConfigChangeResult, error)

	// Game State
	GetBoard(ctx context.Context, sessionID string) (*engine.BoardView, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error

	// SetNotifier registers the callback used to push board updates that
	// happen outside a request, i.e. deferred mismatch clears.
	SetNotifier(fn func(sessionID string, board *engine.BoardView))
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles board preset loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

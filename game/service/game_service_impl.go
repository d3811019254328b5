package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/inconshreveable/log15/v3"

	"github.com/tilepairs/tilepairs/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	notify   func(sessionID string, board *engine.BoardView)
	logger   log.Logger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		logger:   log.New("component", "game-service"),
	}
}

// SetNotifier registers the push callback for asynchronous board updates.
func (s *gameServiceImpl) SetNotifier(fn func(sessionID string, board *engine.BoardView)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// getConfigID returns the config_id for a given preset display name.
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// attachAsyncHook wires the engine's deferred mismatch clear to the push
// notifier, so websocket clients see the pair turn back face down without
// another request. Safe to call repeatedly on the same session.
func (s *gameServiceImpl) attachAsyncHook(sess *Session) {
	sessionID := sess.ID
	sess.Engine.SetAsyncClearHook(func(board *engine.BoardView) {
		s.mu.RLock()
		notify := s.notify
		s.mu.RUnlock()
		if notify != nil {
			notify(sessionID, board)
		}
		if err := s.sessions.Save(sessionID); err != nil {
			s.logger.Warn("failed to persist session after deferred clear", "session", sessionID, "err", err)
		}
	})
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available presets", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.attachAsyncHook(session)

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Board:          session.Engine.Board(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.attachAsyncHook(session)

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Board:          session.Engine.Board(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			Board:          sess.Engine.Board(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// ClickTile processes a tile selection for a session
func (s *gameServiceImpl) ClickTile(ctx context.Context, sessionID string, tileID int) (*ClickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.attachAsyncHook(sess)

	s.sessions.UpdateLastAccessed(sessionID)

	selection := sess.Engine.SelectTile(tileID)
	board := selection.Board

	result := &ClickResult{
		Outcome: selection.Outcome,
		Board:   board,
		Message: board.Message,
		Events:  buildClickEvents(tileID, selection.Outcome, board),
	}

	if err := s.sessions.Save(sessionID); err != nil {
		s.logger.Warn("failed to persist session after click", "session", sessionID, "err", err)
	}

	return result, nil
}

// buildClickEvents derives gameplay events from a selection outcome.
func buildClickEvents(tileID int, outcome engine.Outcome, board *engine.BoardView) []GameEvent {
	if outcome == engine.OutcomeIgnored {
		return nil
	}

	now := time.Now()
	id := tileID
	events := []GameEvent{{
		Type:      string(outcome),
		Message:   board.Message,
		Timestamp: now,
		TileID:    &id,
	}}

	if board.Won {
		events = append(events, GameEvent{Type: "win", Message: board.Message, Timestamp: now})
	} else if board.Lost {
		events = append(events, GameEvent{Type: "loss", Message: board.Message, Timestamp: now})
	}

	return events
}

// Reset re-initializes the session's game
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.BoardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.attachAsyncHook(sess)

	s.sessions.UpdateLastAccessed(sessionID)

	board := sess.Engine.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		s.logger.Warn("failed to persist session after reset", "session", sessionID, "err", err)
	}

	return board, nil
}

// SetGridSize changes the session's grid size, forcing a re-initialize.
// Out-of-range sizes are refused without error.
func (s *gameServiceImpl) SetGridSize(ctx context.Context, sessionID string, gridSize int) (*ConfigChangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.attachAsyncHook(sess)

	s.sessions.UpdateLastAccessed(sessionID)

	accepted := sess.Engine.SetGridSize(gridSize)
	result := &ConfigChangeResult{
		Accepted: accepted,
		Board:    sess.Engine.Board(),
	}
	if !accepted {
		result.Message = fmt.Sprintf("grid size must be between %d and %d", engine.MinGridSize, engine.MaxGridSize)
		return result, nil
	}

	if err := s.sessions.Save(sessionID); err != nil {
		s.logger.Warn("failed to persist session after grid size change", "session", sessionID, "err", err)
	}

	return result, nil
}

// SetMoveLimit changes the session's move limit. Refused once the game has
// started and for negative values, without error.
func (s *gameServiceImpl) SetMoveLimit(ctx context.Context, sessionID string, moveLimit int) (*ConfigChangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.attachAsyncHook(sess)

	s.sessions.UpdateLastAccessed(sessionID)

	accepted := sess.Engine.SetMoveLimit(moveLimit)
	result := &ConfigChangeResult{
		Accepted: accepted,
		Board:    sess.Engine.Board(),
	}
	if !accepted {
		result.Message = "move limit edits are only accepted before the game starts"
		return result, nil
	}

	if err := s.sessions.Save(sessionID); err != nil {
		s.logger.Warn("failed to persist session after move limit change", "session", sessionID, "err", err)
	}

	return result, nil
}

// GetBoard retrieves the current board view for a session
func (s *gameServiceImpl) GetBoard(ctx context.Context, sessionID string) (*engine.BoardView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.attachAsyncHook(sess)

	return sess.Engine.Board(), nil
}

// GetHistory retrieves paginated selection history for a session
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	}

	if opts.Order != "asc" {
		// Default newest first.
		reversed := make([]engine.SelectionEntry, total)
		for i, entry := range history {
			reversed[total-1-i] = entry
		}
		history = reversed
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return &HistoryResponse{
		Selections:  history[start:end],
		Total:       total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns all available board presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a board preset by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig persists a board preset
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"tilt2048/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper session ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.State(),
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

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name), // Return config_id consistently
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.State(),
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
			ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.State(),
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

// Tilt executes a single tilt for a session
func (s *gameServiceImpl) Tilt(ctx context.Context, sessionID, direction string, reset bool) (*TiltResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Get session
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Update last accessed time
	s.sessions.UpdateLastAccessed(sessionID)

	// Collect events
	events := []GameEvent{}

	// Handle reset if requested
	if reset {
		if err := s.resetSession(sess); err != nil {
			return nil, fmt.Errorf("failed to reset session: %w", err)
		}
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	side, err := engine.ParseSide(direction)
	if err != nil {
		return nil, fmt.Errorf("invalid direction %q: use north, south, east or west", direction)
	}

	wasOver := sess.Model.GameOver()
	record, err := s.executeTilt(sess, side)
	if err != nil {
		return nil, err
	}

	state := sess.State()

	result := &TiltResult{
		Changed:    record.Changed,
		ScoreDelta: record.ScoreDelta,
		Spawned:    record.Spawned,
		GameState:  state,
		Events:     events,
	}

	if record.Changed {
		result.Events = append(result.Events, GameEvent{
			Type:      "tilt",
			Message:   fmt.Sprintf("Tilted %s, scored %d", side, record.ScoreDelta),
			Timestamp: time.Now(),
		})
		if record.Spawned != nil {
			result.Events = append(result.Events, GameEvent{
				Type:      "spawn",
				Message:   fmt.Sprintf("New %d appeared at (%d,%d)", record.Spawned.Value, record.Spawned.Col, record.Spawned.Row),
				Timestamp: time.Now(),
				Tile:      record.Spawned,
			})
		}
		result.Message = fmt.Sprintf("Tilted %s", side)
	} else {
		result.Message = fmt.Sprintf("Nothing to tilt %s", side)
	}

	if state.GameOver && !wasOver {
		if engine.MaxTileExists(sess.Model.Board(), sess.Model.MaxPiece()) {
			result.Events = append(result.Events, GameEvent{
				Type:      "max_piece",
				Message:   fmt.Sprintf("Reached %d! Final score: %d", sess.Model.MaxPiece(), state.Score),
				Timestamp: time.Now(),
			})
		} else {
			result.Events = append(result.Events, GameEvent{
				Type:      "game_over",
				Message:   fmt.Sprintf("No moves left. Final score: %d", state.Score),
				Timestamp: time.Now(),
			})
		}
	}

	// Auto-save session after tilt
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after tilt: %v\n", sessionID, err)
	}

	return result, nil
}

// BulkTilt executes multiple tilts in sequence
func (s *gameServiceImpl) BulkTilt(ctx context.Context, sessionID string, directions []string, reset bool) (*BulkTiltResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Update last accessed
	s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkTiltResult{
		RequestedTilts: len(directions),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	// Handle reset
	if reset {
		if err := s.resetSession(sess); err != nil {
			return nil, fmt.Errorf("failed to reset session: %w", err)
		}
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Game reset to initial state",
			Timestamp: time.Now(),
		})
	}

	result.StartScore = sess.Model.Score()

	// Limit tilts to prevent abuse
	if len(directions) > engine.MaxBulkTilts {
		result.Truncated = true
		result.Limit = engine.MaxBulkTilts
		directions = directions[:engine.MaxBulkTilts]
	}

	// Execute tilts
	for i, direction := range directions {
		if sess.Model.GameOver() {
			result.StoppedReason = "game over"
			result.StopReasonCode = "game_over"
			result.StoppedOnTilt = i + 1
			break
		}

		side, err := engine.ParseSide(direction)
		if err != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("tilt %d: invalid direction %q", i+1, direction)
			result.StopReasonCode = "invalid_direction"
			result.StoppedOnTilt = i + 1
			break
		}

		record, err := s.executeTilt(sess, side)
		if err != nil {
			return nil, err
		}

		result.TiltsExecuted++
		result.Steps = append(result.Steps, record)

		if record.Changed {
			result.Events = append(result.Events, GameEvent{
				Type:      "tilt",
				Message:   fmt.Sprintf("Tilted %s, scored %d", side, record.ScoreDelta),
				Timestamp: time.Now(),
			})
		}
		if record.Spawned != nil {
			result.Events = append(result.Events, GameEvent{
				Type:      "spawn",
				Message:   fmt.Sprintf("New %d appeared at (%d,%d)", record.Spawned.Value, record.Spawned.Col, record.Spawned.Row),
				Timestamp: time.Now(),
				Tile:      record.Spawned,
			})
		}
	}

	state := sess.State()
	result.GameState = state
	result.EndScore = state.Score
	result.ScoreDelta = state.Score - result.StartScore
	result.GameOver = state.GameOver
	if state.GameOver {
		if engine.MaxTileExists(sess.Model.Board(), sess.Model.MaxPiece()) {
			result.GameOverCode = "max_piece"
			result.Message = fmt.Sprintf("Reached %d! Final score: %d", sess.Model.MaxPiece(), state.Score)
			result.Events = append(result.Events, GameEvent{
				Type:      "max_piece",
				Message:   result.Message,
				Timestamp: time.Now(),
			})
		} else {
			result.GameOverCode = "game_over"
			result.Message = fmt.Sprintf("No moves left. Final score: %d", state.Score)
			result.Events = append(result.Events, GameEvent{
				Type:      "game_over",
				Message:   result.Message,
				Timestamp: time.Now(),
			})
		}
		if result.StopReasonCode == "" {
			result.StopReasonCode = result.GameOverCode
		}
	}

	// Auto-save session after bulk tilts
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after bulk tilts: %v\n", sessionID, err)
	}

	return result, nil
}

// executeTilt runs one tilt on the session's model, spawns the
// follow-up tile when the board changed, and appends the history
// record. The caller holds the service lock.
func (s *gameServiceImpl) executeTilt(sess *Session, side engine.Side) (engine.TiltRecord, error) {
	scoreBefore := sess.Model.Score()
	changed := sess.Model.Tilt(side)

	record := engine.TiltRecord{
		Direction:  side.String(),
		Changed:    changed,
		ScoreDelta: sess.Model.Score() - scoreBefore,
		Timestamp:  time.Now().Unix(),
	}

	if changed {
		sess.TotalTilts++

		// Spawn the follow-up tile unless the tilt already ended the game.
		if !sess.Model.GameOver() {
			tile, err := sess.Spawner.Next(sess.Model)
			if err == nil {
				if err := sess.Model.AddTile(tile); err != nil {
					return record, fmt.Errorf("failed to place spawned tile: %w", err)
				}
				record.Spawned = &engine.TileInfo{
					Value: tile.Value(),
					Col:   tile.Col(),
					Row:   tile.Row(),
				}
			}
		}
	}

	record.GameOver = sess.Model.GameOver()
	record.TiltNumber = len(sess.History) + 1
	sess.History = append(sess.History, record)
	return record, nil
}

// resetSession clears the board, wipes the history, and spawns a
// fresh set of opening tiles. Max score survives the reset.
func (s *gameServiceImpl) resetSession(sess *Session) error {
	sess.Model.Clear()
	sess.History = nil
	sess.TotalTilts = 0
	return sess.SpawnStartTiles()
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	if err := s.resetSession(sess); err != nil {
		return nil, fmt.Errorf("failed to reset session: %w", err)
	}

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return sess.State(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.State(), nil
}

// GetTiltHistory returns paginated tilt history
func (s *gameServiceImpl) GetTiltHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.History
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	// Get the slice of tilts
	var tilts []engine.TiltRecord
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			tilts = append(tilts, history[i])
		}
	} else {
		// Normal chronological order
		if start < total {
			tilts = history[start:end]
		}
	}

	// Ensure tilts is not nil
	if tilts == nil {
		tilts = []engine.TiltRecord{}
	}

	return &HistoryResponse{
		Tilts:       tilts,
		TotalTilts:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a game configuration to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error {
	return s.configs.SaveConfig(configName, config)
}

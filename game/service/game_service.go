package service

import (
	"context"
	"time"

	"tilt2048/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Tilt(ctx context.Context, sessionID, direction string, reset bool) (*TiltResult, error)
	BulkTilt(ctx context.Context, sessionID string, directions []string, reset bool) (*BulkTiltResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetTiltHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.GameConfig) error
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

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
	SaveConfig(name string, config *engine.GameConfig) error
}

// Session represents an active game session
type Session struct {
	ID             string
	Model          *engine.Model
	Spawner        *engine.Spawner
	Config         *engine.GameConfig
	History        []engine.TiltRecord
	TotalTilts     int
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// State snapshots the session's model and stamps the session-level
// fields the model does not track.
func (s *Session) State() *engine.GameState {
	state := s.Model.State()
	state.ConfigName = s.Config.Name
	state.TotalTilts = s.TotalTilts
	return state
}

// SpawnStartTiles places the config's opening tiles on an empty board.
func (s *Session) SpawnStartTiles() error {
	for i := 0; i < s.Config.StartTiles; i++ {
		tile, err := s.Spawner.Next(s.Model)
		if err != nil {
			return err
		}
		if err := s.Model.AddTile(tile); err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"time"

	"tilt2048/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// TiltResult contains the result of a tilt operation
type TiltResult struct {
	Changed    bool              `json:"changed"`
	ScoreDelta int               `json:"score_delta"`
	Spawned    *engine.TileInfo  `json:"spawned,omitempty"`
	GameState  *engine.GameState `json:"game_state"`
	Message    string            `json:"message,omitempty"`
	Events     []GameEvent       `json:"events,omitempty"`
}

// BulkTiltResult contains the result of multiple tilts
type BulkTiltResult struct {
	// Summary
	TiltsExecuted  int               `json:"tilts_executed"`
	RequestedTilts int               `json:"requested_tilts"` // The number of tilts requested in this call
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // Machine-friendly code: invalid_direction|game_over|max_piece
	StoppedOnTilt  int               `json:"stopped_on_tilt,omitempty"`  // 1-based index of the tilt that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartScore int `json:"start_score"`
	EndScore   int `json:"end_score"`
	ScoreDelta int `json:"score_delta"`

	// Per-tilt compact trace (only for this call)
	Steps []engine.TiltRecord `json:"steps,omitempty"`

	// Final status aids
	GameOver     bool   `json:"game_over"`
	GameOverCode string `json:"game_over_code,omitempty"`
	Message      string `json:"message,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string           `json:"type"` // "tilt", "spawn", "game_over", "max_piece", "reset"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Tile      *engine.TileInfo `json:"tile,omitempty"`
}

// HistoryOptions configures tilt history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated tilt history
type HistoryResponse struct {
	Tilts       []engine.TiltRecord `json:"tilts"`
	TotalTilts  int                 `json:"total_tilts"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	BoardSize   int    `json:"board_size"`
	MaxPiece    int    `json:"max_piece"`
}

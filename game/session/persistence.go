package session

import (
	"fmt"
	"time"

	"tilt2048/game/engine"
	"tilt2048/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// configIDFromName returns the config ID (filename without extension)
// for a display name. Persisted sessions store the ID, never the
// display name, so restoreSession can reload the config by filename.
// An unmatched name is assumed to already be a config ID.
func configIDFromName(configManager service.ConfigManager, displayName string) (string, error) {
	configs, err := configManager.ListConfigs()
	if err != nil {
		return "", fmt.Errorf("failed to list configs: %w", err)
	}

	for _, config := range configs {
		if config.Name == displayName {
			return config.ConfigID, nil
		}
	}

	return displayName, nil
}

// PersistedSessionData represents the serialized structure for persisted sessions
type PersistedSessionData struct {
	ID             string              `json:"id"`
	ConfigName     string              `json:"config_name"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	GameState      *engine.GameState   `json:"game_state"`
	History        []engine.TiltRecord `json:"history,omitempty"`
	TotalTilts     int                 `json:"total_tilts"`
}

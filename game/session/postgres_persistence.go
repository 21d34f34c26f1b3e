package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"tilt2048/game/service"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresPersistence implements SessionPersistence on PostgreSQL.
// Sessions are stored one row each with the board snapshot and tilt
// history as JSONB, so a server restart or a second instance can pick
// up where a player left off.
type PostgresPersistence struct {
	db            *sql.DB
	configManager service.ConfigManager
}

// NewPostgresPersistence opens the database, verifies the connection,
// and ensures the sessions table exists.
func NewPostgresPersistence(connectionString string, configManager service.ConfigManager) (*PostgresPersistence, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	store := &PostgresPersistence{db: db, configManager: configManager}

	// Initialize the database schema
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	return store, nil
}

// initSchema initializes the database schema
func (pp *PostgresPersistence) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS game_sessions (
		id TEXT PRIMARY KEY,
		config_name TEXT NOT NULL,
		game_state JSONB NOT NULL,
		history JSONB,
		total_tilts INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		last_accessed_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := pp.db.Exec(schema)
	return err
}

// Save persists a session row, updating in place when it exists
func (pp *PostgresPersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	// Store the config ID, not the display name, so Load can resolve
	// the config file again after a restart
	configID, err := configIDFromName(pp.configManager, session.Config.Name)
	if err != nil {
		return fmt.Errorf("failed to get config ID: %v", err)
	}

	stateJSON, err := json.Marshal(session.State())
	if err != nil {
		return fmt.Errorf("failed to marshal game state: %v", err)
	}
	historyJSON, err := json.Marshal(session.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %v", err)
	}

	query := `
	INSERT INTO game_sessions (id, config_name, game_state, history, total_tilts, created_at, last_accessed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id)
	DO UPDATE SET
		game_state = $3, history = $4, total_tilts = $5,
		last_accessed_at = $7
	`

	_, err = pp.db.Exec(query,
		session.ID, configID, string(stateJSON), string(historyJSON),
		session.TotalTilts, session.CreatedAt, session.LastAccessedAt)

	if err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}

	return nil
}

// Load retrieves a session row and rebuilds the live session
func (pp *PostgresPersistence) Load(id string) (*service.Session, error) {
	query := `SELECT id, config_name, game_state, history, total_tilts, created_at, last_accessed_at FROM game_sessions WHERE id = $1`

	var data PersistedSessionData
	var stateJSON string
	var historyJSON sql.NullString

	err := pp.db.QueryRow(query, id).Scan(
		&data.ID, &data.ConfigName, &stateJSON, &historyJSON,
		&data.TotalTilts, &data.CreatedAt, &data.LastAccessedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %v", err)
	}

	if err := json.Unmarshal([]byte(stateJSON), &data.GameState); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game state: %v", err)
	}
	if historyJSON.Valid && historyJSON.String != "" && historyJSON.String != "null" {
		if err := json.Unmarshal([]byte(historyJSON.String), &data.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history: %v", err)
		}
	}

	return restoreSession(&data, pp.configManager)
}

// Delete removes a session row
func (pp *PostgresPersistence) Delete(id string) error {
	result, err := pp.db.Exec(`DELETE FROM game_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %v", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %v", err)
	}
	if rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// ListAll returns all persisted session IDs
func (pp *PostgresPersistence) ListAll() ([]string, error) {
	rows, err := pp.db.Query(`SELECT id FROM game_sessions ORDER BY last_accessed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %v", err)
	}
	defer rows.Close()

	var sessionIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan session id: %v", err)
		}
		sessionIDs = append(sessionIDs, id)
	}

	return sessionIDs, rows.Err()
}

// Exists checks if a session row exists
func (pp *PostgresPersistence) Exists(id string) bool {
	var exists bool
	err := pp.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM game_sessions WHERE id = $1)`, id).Scan(&exists)
	return err == nil && exists
}

// Close closes the database connection
func (pp *PostgresPersistence) Close() error {
	log.Println("Closing database connection...")
	return pp.db.Close()
}

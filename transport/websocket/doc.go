// Package websocket provides WebSocket transport for the sliding-tile game.
//
// The websocket package implements:
//   - Real-time state broadcasting to connected clients
//   - Session-aware WebSocket connections
//   - Connection lifecycle management
//   - Message routing per session
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a pair of
// dedicated goroutines (readPump/writePump) that manage reading, writing,
// and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//
//	{
//	  "session_id": "a1b2",
//	  "game_state": { ... },        // full board state after a change
//	  "event": "state_update"
//	}
//
// Clients are read-only observers: incoming messages are consumed to keep
// the connection alive but not processed. All game mutations go through
// the REST API, which broadcasts the resulting state to the session's
// WebSocket clients.
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=a1b2) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a tilt mutates the board:
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive broadcasts
// simultaneously without blocking each other.
package websocket

// Package api provides HTTP REST API handlers for the sliding-tile game.
//
// The api package implements:
//   - RESTful endpoints for game operations
//   - Session management endpoints
//   - Configuration listing and creation
//   - A cross-session leaderboard
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session (optional config_id in body)
//   - GET /api/sessions - List all sessions (sort, order, limit query params)
//   - GET /api/sessions/leaderboard - Sessions ranked by score
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/tilt - Execute a single tilt
//   - POST /api/sessions/{id}/bulk-tilt - Execute a sequence of tilts
//   - POST /api/sessions/{id}/reset - Reset the board (max score preserved)
//   - GET /api/sessions/{id}/history - Tilt history with pagination
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a custom configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Tilts are sent as POST with a
// JSON body:
//
//	{
//	  "direction": "north|south|east|west",
//	  "reset": true|false               // optional reset before tilting
//	}
//
// Bulk tilts take a directions array instead:
//
//	{
//	  "directions": ["north", "east", "north"],
//	  "reset": true|false
//	}
//
// Tilt responses include whether the board changed, the score delta, the
// spawned tile (if any), and the full game state. Bulk responses add a
// per-tilt trace and a stop_reason_code when the sequence ended early
// (invalid_direction, game_over, max_piece).
//
// Usage:
//
//	server := api.NewServer(gameService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api

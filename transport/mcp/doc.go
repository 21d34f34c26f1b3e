// Package mcp provides Model Context Protocol server implementation for the sliding-tile game.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for game operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current board, score and status
//   - tilt: Execute a single directional tilt
//   - bulk_tilt: Execute multiple tilts in sequence
//   - reset_game: Reset the board (max score preserved)
//   - tilt_history: Retrieve tilt history with pagination
//   - create_session: Create new game session with config selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_configs: List available game configurations
//   - game_instructions: Get comprehensive game instructions and rules
//
// Architecture:
//
// The MCP layer is a thin client: every tool call is proxied to the REST
// API over HTTP, so the REST server remains the single source of truth
// for session state. This keeps the two transports consistent and lets
// the MCP process run separately from the game server.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: Streamable HTTP endpoint for remote MCP integration
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Autonomously play the game
//   - Develop and test tilt strategies
//   - Analyze board states and make decisions
//   - Manage multiple game sessions
//   - Learn from tilt history
package mcp

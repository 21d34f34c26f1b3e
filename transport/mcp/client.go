package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tilt2048/game/engine"
	"tilt2048/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tilt 2048",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tilt 2048 - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Tilt the board (north/south/east/west) to slide tiles. Equal tiles that
collide merge into one tile of double the value and add it to the score.
After every tilt that changes the board a new tile spawns in a random
empty cell. Build the maximum tile to win; the game ends when no tilt
can change the board.

AVAILABLE TOOLS:
- game_state: Get current board, score and status
- tilt: Single tilt (north/south/east/west) - requires intent explanation
- bulk_tilt: Multiple tilts at once - requires intent explanation
- reset_game: Reset the board (max score is preserved)
- tilt_history: View past tilts
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_configs: List available configurations
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on tilt/bulk_tilt tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tilt",
		Description: "Tilt the board in a direction",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"north", "south", "east", "west"},
					"description": "Direction to tilt",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this tilt (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before tilting",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleTilt)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_tilt",
		Description: "Execute multiple tilts in sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"directions": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"north", "south", "east", "west"},
					},
					"description": "Array of tilt directions",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of tilts (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before tilting",
				},
			},
			Required: []string{"session_id", "directions"},
		},
	}, c.handleBulkTilt)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the board to a fresh start (max score is preserved)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "tilt_history",
		Description: "Get tilt history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTiltHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		score := 0
		if s.GameState != nil {
			score = s.GameState.Score
		}
		result += fmt.Sprintf("- %s (Config: %s, Score: %d, Created: %s)\n",
			s.ID, s.ConfigName, score, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTilt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.TiltResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/tilt", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatTiltResult(direction, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkTilt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	directionsRaw, _ := args["directions"].([]interface{})
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert directions to string array
	directions := make([]string, 0, len(directionsRaw))
	for _, d := range directionsRaw {
		if dir, ok := d.(string); ok {
			directions = append(directions, dir)
		}
	}

	body := map[string]interface{}{
		"directions": directions,
		"reset":      reset,
	}

	var result service.BulkTiltResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-tilt", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkTiltResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTiltHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Board: %dx%d, Target tile: %d\n\n",
			config.Name, config.ConfigID, config.Description,
			config.BoardSize, config.BoardSize, config.MaxPiece)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Tilt 2048 - Complete Instructions

GAME OBJECTIVE:
Slide tiles by tilting the board until you build the target tile (2048
in the classic config). Every merge adds the merged value to your score.

GAME MECHANICS:
• Tilt: all tiles slide as far as they can toward the chosen side
• Merge: two equal tiles that collide become one tile of double the value
• A tile that was produced by a merge cannot merge again in the same tilt
• When three equal tiles line up, the pair closest to the target side merges
• Spawn: after every tilt that changes the board, one new tile appears in
  a random empty cell (config controls the values and their weights)
• No-op: a tilt that changes nothing spawns nothing and is not counted
• Victory: build the target tile (max_piece)
• Game over: the board is full and no adjacent equal tiles remain

BOARD READING:
The board is rendered as rows of right-aligned numbers. Empty cells are
blank. Example 4x4 board:

|    |   2|    |    |
|    |    |   4|    |
|   2|    |    |   8|
|  16|   4|   2|   2|

DIRECTIONS:
- north, south, east, west - the side of the board tiles slide toward
- Bulk tilts - execute a sequence in one call; the sequence stops early
  on an invalid direction or when the game ends

STRATEGY HINTS FOR AI AGENTS:
• Keep your largest tile in a corner and build descending chains toward it
• Prefer two perpendicular directions (e.g. north and west) and use the
  other two only when forced
• A tilt that does not change the board wastes nothing but also gains
  nothing - check the "changed" flag in responses
• Watch score_delta to measure merge efficiency per tilt
• Use bulk_tilt for efficiency, then inspect the step trace to see where
  merges happened

SCORING:
- Each merge adds the value of the merged tile (two 4s -> +8)
- score resets on game reset; max_score persists across resets within
  the session

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and configuration

CONFIGURATION OPTIONS:
- classic: 4x4 board, target 2048
- mini: 3x3 board, target 64 - fast games for testing strategies
- marathon: 5x5 board, target 8192 - long games with more room
- Custom configs can set board size, target tile, start tiles, spawn
  value weights, and a preset starting layout

Good luck tilting!`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header (include cumulative total tilts)
	result.WriteString(fmt.Sprintf("Score: %d | Max Score: %d | Target: %d | Tilts: %d\n\n",
		state.Score, state.MaxScore, state.MaxPiece, state.TotalTilts))

	// Board
	result.WriteString(formatBoard(state.Board))

	// Status
	if state.GameOver {
		if hasMaxPiece(state) {
			result.WriteString("\nVICTORY! Target tile reached.")
		} else {
			result.WriteString("\nGAME OVER - no tilt can change the board.")
		}
	}

	return result.String()
}

// formatBoard renders the board as rows of right-aligned tile values.
// Empty cells render as blanks so single tiles stand out.
func formatBoard(board [][]int) string {
	var b strings.Builder
	for _, row := range board {
		for _, v := range row {
			if v == 0 {
				b.WriteString("|    ")
			} else {
				b.WriteString(fmt.Sprintf("|%4d", v))
			}
		}
		b.WriteString("|\n")
	}
	return b.String()
}

func hasMaxPiece(state *engine.GameState) bool {
	for _, row := range state.Board {
		for _, v := range row {
			if v >= state.MaxPiece && state.MaxPiece > 0 {
				return true
			}
		}
	}
	return false
}

func formatTiltResult(direction string, result *service.TiltResult) string {
	response := ""
	if result.Changed {
		response = fmt.Sprintf("Tilt %s changed the board (+%d points)\n", direction, result.ScoreDelta)
	} else {
		response = fmt.Sprintf("Tilt %s did not change the board\n", direction)
	}

	if result.Spawned != nil {
		response += fmt.Sprintf("Spawned: %d at (%d,%d)\n",
			result.Spawned.Value, result.Spawned.Col, result.Spawned.Row)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatBulkTiltResult(sessionID string, result *service.BulkTiltResult) string {
	var b strings.Builder

	// Session header
	boardSize := 0
	configName := ""
	if result.GameState != nil {
		boardSize = result.GameState.Size
		configName = result.GameState.ConfigName
	}
	b.WriteString(fmt.Sprintf("Session: %s • Config: %s • Board: %dx%d\n",
		sessionID, configName, boardSize, boardSize))

	// Bulk summary
	b.WriteString(fmt.Sprintf("Executed %d/%d tilts (score %d -> %d, +%d)\n",
		result.TiltsExecuted, result.RequestedTilts,
		result.StartScore, result.EndScore, result.ScoreDelta))
	if result.StoppedReason != "" {
		b.WriteString(fmt.Sprintf("Stopped: %s\n", result.StoppedReason))
	}
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated: sequence limited to %d tilts per call\n", result.Limit))
	}

	// Events (keep as-is, concise)
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Per-tilt trace for this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for i, s := range result.Steps {
			b.WriteString(formatStepLine(i+1, s))
		}
	}

	if result.GameOver {
		b.WriteString("\n")
		if result.GameOverCode == "max_piece" {
			b.WriteString("Game over: target tile reached\n")
		} else {
			b.WriteString("Game over: no tilt can change the board\n")
		}
	}

	// Full state at the end
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

// formatStepLine renders a single compact step line
func formatStepLine(idx int, record engine.TiltRecord) string {
	status := "-"
	if record.Changed {
		status = "changed"
	} else {
		status = "no-op"
	}
	spawn := ""
	if record.Spawned != nil {
		spawn = fmt.Sprintf(" spawn=%d@(%d,%d)",
			record.Spawned.Value, record.Spawned.Col, record.Spawned.Row)
	}
	return fmt.Sprintf("%d. %s %s +%d%s\n", idx, record.Direction, status, record.ScoreDelta, spawn)
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Tilt History (Page %d/%d) — Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalTilts)

	for _, record := range history.Tilts {
		status := "no-op"
		if record.Changed {
			status = fmt.Sprintf("+%d", record.ScoreDelta)
		}
		result += fmt.Sprintf("%d. %s %s\n", record.TiltNumber, record.Direction, status)
	}

	return result
}

package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"tilt2048/game/engine"
	"tilt2048/game/service"
)

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	// Create a test server that returns a known response
	expectedResponse := map[string]interface{}{
		"id":        "a1b2",
		"score":     float64(12),
		"game_over": false,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api/sessions/a1b2/state", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api/sessions", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}
}

func TestClient_apiCall_JSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found: zzzz"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/zzzz", nil, nil)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "session not found") {
		t.Errorf("Expected server error message, got: %v", err)
	}
}

func TestClient_createSession(t *testing.T) {
	// Mock server that responds to session creation
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:         "a1b2",
			ConfigName: "classic",
			GameState: &engine.GameState{
				Size:  4,
				Board: [][]int{{0, 0, 0, 0}, {0, 2, 0, 0}, {0, 0, 2, 0}, {0, 0, 0, 0}},
				Score: 0,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	// Test create session without config
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(ctx, request)
	if err != nil {
		t.Fatalf("createSession failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	// Check that the result contains the session ID
	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "a1b2") {
		t.Errorf("Expected session ID in result, got: %s", resultStr.Text)
	}
}

func TestClient_handleTilt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/a1b2/tilt" {
			t.Errorf("Expected POST /api/sessions/a1b2/tilt, got %s %s", r.Method, r.URL.Path)
		}

		var req map[string]interface{}
		json.NewDecoder(r.Body).Decode(&req)
		if req["direction"] != "north" {
			t.Errorf("Expected direction north, got %v", req["direction"])
		}

		resp := service.TiltResult{
			Changed:    true,
			ScoreDelta: 4,
			Spawned:    &engine.TileInfo{Value: 2, Col: 3, Row: 3},
			GameState: &engine.GameState{
				Size:  4,
				Board: [][]int{{4, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 2}},
				Score: 4,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "tilt",
			Arguments: map[string]interface{}{
				"session_id": "a1b2",
				"direction":  "north",
				"intent":     "merge the pair in column 0",
			},
		},
	}

	result, err := client.handleTilt(ctx, request)
	if err != nil {
		t.Fatalf("handleTilt failed: %v", err)
	}

	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(resultStr.Text, "changed the board (+4 points)") {
		t.Errorf("Expected tilt summary in result, got: %s", resultStr.Text)
	}
	if !strings.Contains(resultStr.Text, "Spawned: 2 at (3,3)") {
		t.Errorf("Expected spawn info in result, got: %s", resultStr.Text)
	}
}

func TestFormatGameState(t *testing.T) {
	gameState := &engine.GameState{
		Size:       4,
		Board:      [][]int{{0, 0, 0, 0}, {0, 2, 0, 0}, {0, 0, 16, 0}, {0, 0, 0, 0}},
		Score:      20,
		MaxScore:   44,
		MaxPiece:   2048,
		TotalTilts: 7,
		GameOver:   false,
	}

	result := formatGameState(gameState)

	// Check that all important fields are included
	expectedFields := []string{
		"Score: 20",
		"Max Score: 44",
		"Target: 2048",
		"Tilts: 7",
		"|  16",
		"|   2",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatGameState_GameOver(t *testing.T) {
	gameState := &engine.GameState{
		Size:     2,
		Board:    [][]int{{2, 4}, {8, 2}},
		Score:    14,
		MaxPiece: 2048,
		GameOver: true,
	}

	result := formatGameState(gameState)

	if !strings.Contains(result, "GAME OVER") {
		t.Errorf("Expected 'GAME OVER' in result, got: %s", result)
	}
}

func TestFormatGameState_Victory(t *testing.T) {
	gameState := &engine.GameState{
		Size:     2,
		Board:    [][]int{{64, 4}, {8, 2}},
		Score:    124,
		MaxPiece: 64,
		GameOver: true,
	}

	result := formatGameState(gameState)

	if !strings.Contains(result, "VICTORY") {
		t.Errorf("Expected 'VICTORY' in result, got: %s", result)
	}
}

func TestFormatTiltResult_NoOp(t *testing.T) {
	tiltResult := &service.TiltResult{
		Changed: false,
		GameState: &engine.GameState{
			Size:  2,
			Board: [][]int{{2, 0}, {0, 0}},
			Score: 0,
		},
	}

	result := formatTiltResult("north", tiltResult)

	if !strings.Contains(result, "did not change the board") {
		t.Errorf("Expected no-op summary in result, got: %s", result)
	}
}

func TestFormatBulkTiltResult(t *testing.T) {
	bulkResult := &service.BulkTiltResult{
		TiltsExecuted:  2,
		RequestedTilts: 3,
		StartScore:     0,
		EndScore:       8,
		ScoreDelta:     8,
		StoppedReason:  "Game over",
		StopReasonCode: "game_over",
		GameOver:       true,
		Steps: []engine.TiltRecord{
			{Direction: "north", Changed: true, ScoreDelta: 4, TiltNumber: 1},
			{Direction: "west", Changed: true, ScoreDelta: 4, TiltNumber: 2},
		},
		GameState: &engine.GameState{
			Size:       2,
			Board:      [][]int{{4, 2}, {8, 4}},
			Score:      8,
			ConfigName: "mini",
			GameOver:   true,
		},
	}

	result := formatBulkTiltResult("a1b2", bulkResult)

	expectedFields := []string{
		"Session: a1b2",
		"Config: mini",
		"Executed 2/3 tilts",
		"score 0 -> 8, +8",
		"Stopped: Game over",
		"1. north changed +4",
		"2. west changed +4",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field '%s' in formatted output, got: %s", field, result)
		}
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Tilts: []engine.TiltRecord{
			{Direction: "north", Changed: true, ScoreDelta: 8, TiltNumber: 2},
			{Direction: "east", Changed: false, TiltNumber: 1},
		},
		TotalTilts: 2,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}

	result := formatHistory(history)

	if !strings.Contains(result, "Total: 2") {
		t.Errorf("Expected total count in result, got: %s", result)
	}
	if !strings.Contains(result, "2. north +8") {
		t.Errorf("Expected changed tilt line in result, got: %s", result)
	}
	if !strings.Contains(result, "1. east no-op") {
		t.Errorf("Expected no-op tilt line in result, got: %s", result)
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")
	ctx := context.Background()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(ctx, request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	if result == nil {
		t.Fatal("Expected result, got nil")
	}

	// Check that the result contains game instructions
	resultStr, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"Tilt 2048 - Complete Instructions",
		"GAME OBJECTIVE:",
		"GAME MECHANICS:",
		"BOARD READING:",
		"DIRECTIONS:",
		"STRATEGY HINTS FOR AI AGENTS:",
		"SCORING:",
		"SESSION MANAGEMENT:",
		"CONFIGURATION OPTIONS:",
		"Good luck tilting!",
	}

	for _, content := range expectedContent {
		if !strings.Contains(resultStr.Text, content) {
			t.Errorf("Expected '%s' in instructions, got: %s", content, resultStr.Text)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	// Integration test that verifies the client can be created and initialized without errors
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	// Test that the MCP server has been properly configured with tools
	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.baseURL == "" {
		t.Error("Base URL not set")
	}

	if client.httpClient == nil {
		t.Error("HTTP client not initialized")
	}
}

package session

import (
	"testing"
	"time"

	"tilt2048/game/engine"
)

func newPersistentManager(t *testing.T) (*Manager, *FilePersistence) {
	t.Helper()
	fp, err := NewFilePersistence(t.TempDir(), newStubConfigManager())
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}
	return NewManagerWithPersistence(fp), fp
}

func TestManagerWithPersistence_CreatePersists(t *testing.T) {
	manager, fp := newPersistentManager(t)

	session, err := manager.Create("keep", createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if !fp.Exists(session.ID) {
		t.Error("Expected session to be persisted on create")
	}
}

func TestManagerWithPersistence_GetFallsThroughToStorage(t *testing.T) {
	manager, fp := newPersistentManager(t)

	manager.Create("evict", createTestConfig())

	// Drop from memory but not from storage
	if err := manager.DeleteFromMemory("evict"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}
	if !fp.Exists("evict") {
		t.Fatal("Expected session to remain in storage")
	}

	// Get should reload it
	session, err := manager.Get("evict")
	if err != nil {
		t.Fatalf("Get after eviction failed: %v", err)
	}
	if session.ID != "evict" {
		t.Errorf("ID = %q, want evict", session.ID)
	}
	if manager.Count() != 1 {
		t.Errorf("Expected the session back in memory, count = %d", manager.Count())
	}
}

func TestManagerWithPersistence_SaveRoundTrip(t *testing.T) {
	manager, _ := newPersistentManager(t)

	session, _ := manager.Create("play", createTestConfig())

	// Mutate the game, then persist
	session.Model.Tilt(engine.North)
	session.TotalTilts = 1
	if err := manager.Save("play"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Reload through a second manager sharing the same storage
	manager.DeleteFromMemory("play")
	reloaded, err := manager.Get("play")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !reloaded.Model.Equal(session.Model) {
		t.Error("Expected reloaded board to match the saved one")
	}
	if reloaded.TotalTilts != 1 {
		t.Errorf("TotalTilts = %d, want 1", reloaded.TotalTilts)
	}
}

func TestManagerWithPersistence_DeleteRemovesStorage(t *testing.T) {
	manager, fp := newPersistentManager(t)

	manager.Create("zap", createTestConfig())
	if err := manager.Delete("zap"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fp.Exists("zap") {
		t.Error("Expected session removed from storage")
	}
}

func TestManagerWithPersistence_LoadPersistedSessions(t *testing.T) {
	fp, err := NewFilePersistence(t.TempDir(), newStubConfigManager())
	if err != nil {
		t.Fatalf("Failed to create file persistence: %v", err)
	}

	// Seed storage directly
	for _, id := range []string{"p1", "p2"} {
		if err := fp.Save(newTestSession(t, id)); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
	}

	manager := NewManagerWithPersistence(fp)
	if manager.Count() != 0 {
		t.Fatalf("Expected empty manager, count = %d", manager.Count())
	}

	if err := manager.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}
	if manager.Count() != 2 {
		t.Errorf("Expected 2 loaded sessions, got %d", manager.Count())
	}
}

func TestManagerWithPersistence_SaveAllSessions(t *testing.T) {
	manager, fp := newPersistentManager(t)

	manager.Create("a", createTestConfig())
	manager.Create("b", createTestConfig())

	if err := manager.SaveAllSessions(); err != nil {
		t.Fatalf("SaveAllSessions failed: %v", err)
	}

	for _, id := range []string{"a", "b"} {
		if !fp.Exists(id) {
			t.Errorf("Expected session %s in storage", id)
		}
	}
}

func TestManagerWithoutPersistence_SaveIsNoOp(t *testing.T) {
	manager := NewManager()
	manager.Create("mem", createTestConfig())

	if err := manager.Save("mem"); err != nil {
		t.Errorf("Save without persistence should be a no-op, got %v", err)
	}
	if err := manager.SaveAllSessions(); err != nil {
		t.Errorf("SaveAllSessions without persistence should be a no-op, got %v", err)
	}
	if err := manager.LoadPersistedSessions(); err != nil {
		t.Errorf("LoadPersistedSessions without persistence should be a no-op, got %v", err)
	}
}

func TestManagerWithPersistence_CleanupKeepsStorage(t *testing.T) {
	manager, fp := newPersistentManager(t)

	session, _ := manager.Create("old", createTestConfig())
	session.LastAccessedAt = time.Now().Add(-3 * time.Hour)

	removed := manager.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Fatalf("Expected 1 removed session, got %d", removed)
	}

	// Cleanup only evicts from memory; the persisted copy survives and
	// can be recovered later
	if !fp.Exists("old") {
		t.Error("Expected persisted copy to survive cleanup")
	}
	if _, err := manager.Get("old"); err != nil {
		t.Errorf("Expected session recoverable from storage: %v", err)
	}
}

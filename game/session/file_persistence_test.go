package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tilepairs/tilepairs/game/engine"
	"github.com/tilepairs/tilepairs/game/service"
)

// stubConfigManager serves a single preset for persistence tests
type stubConfigManager struct {
	config *engine.GameConfig
}

func (s *stubConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	if name != "test" {
		return nil, ErrSessionNotFound
	}
	return s.config, nil
}

func (s *stubConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	return []*service.ConfigInfo{{
		Filename:    "test.json",
		ConfigID:    "test",
		Name:        s.config.Name,
		Description: s.config.Description,
		GridSize:    s.config.GridSize,
		MoveLimit:   s.config.MoveLimit,
	}}, nil
}

func (s *stubConfigManager) GetDefault() *engine.GameConfig {
	return s.config
}

func (s *stubConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	s.config = config
	return nil
}

func newTestPersistence(t *testing.T) (*FilePersistence, string) {
	t.Helper()
	dir := t.TempDir()
	fp, err := NewFilePersistence(dir, &stubConfigManager{config: createTestConfig()})
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}
	return fp, dir
}

func newPersistableSession(t *testing.T, id string) *service.Session {
	t.Helper()
	eng, err := engine.NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         createTestConfig(),
		CreatedAt:      time.Now().Add(-time.Minute),
		LastAccessedAt: time.Now(),
	}
}

func TestFilePersistence_SaveAndLoad(t *testing.T) {
	fp, dir := newTestPersistence(t)
	sess := newPersistableSession(t, "abcd")

	// Play a couple of moves so the restored state has something to prove.
	sess.Engine.SelectTile(0)
	sess.Engine.SelectTile(3)

	if err := fp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "abcd.json")); err != nil {
		t.Fatalf("Expected session file to exist: %v", err)
	}

	loaded, err := fp.Load("abcd")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ID != "abcd" {
		t.Errorf("Expected ID 'abcd', got %q", loaded.ID)
	}

	original := sess.Engine.GetState()
	restored := loaded.Engine.GetState()

	if restored.Generation != original.Generation {
		t.Errorf("Expected generation %q, got %q", original.Generation, restored.Generation)
	}
	if restored.Comparisons != original.Comparisons {
		t.Errorf("Expected %d comparisons, got %d", original.Comparisons, restored.Comparisons)
	}
	if len(restored.Tiles) != len(original.Tiles) {
		t.Fatalf("Expected %d tiles, got %d", len(original.Tiles), len(restored.Tiles))
	}
	for i, tile := range original.Tiles {
		if restored.Tiles[i].Value != tile.Value {
			t.Errorf("Tile %d: expected value %d, got %d", i, tile.Value, restored.Tiles[i].Value)
		}
	}
}

func TestFilePersistence_LoadNormalizesInFlightComparison(t *testing.T) {
	fp, dir := newTestPersistence(t)
	sess := newPersistableSession(t, "wxyz")

	// Write a mid-comparison snapshot by hand: two tiles flipped, input
	// locked, the deferred clear never fired before shutdown.
	state := sess.Engine.GetState()
	state.Flipped = []int{0, 3}
	state.InputLocked = true
	state.Phase = engine.PhaseInProgress
	data := PersistedSessionData{
		ID:             "wxyz",
		ConfigName:     "test",
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      state,
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wxyz.json"), jsonData, 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := fp.Load("wxyz")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	restored := loaded.Engine.GetState()
	if len(restored.Flipped) != 0 {
		t.Errorf("Expected pending comparison to be cleared, got flipped %v", restored.Flipped)
	}
	if restored.InputLocked {
		t.Error("Expected input to be unlocked after restore")
	}
}

func TestFilePersistence_Delete(t *testing.T) {
	fp, _ := newTestPersistence(t)
	sess := newPersistableSession(t, "gone")

	if err := fp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !fp.Exists("gone") {
		t.Fatal("Expected session file to exist")
	}

	if err := fp.Delete("gone"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fp.Exists("gone") {
		t.Error("Expected session file to be removed")
	}

	if err := fp.Delete("gone"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound for double delete, got %v", err)
	}
}

func TestFilePersistence_ListAll(t *testing.T) {
	fp, dir := newTestPersistence(t)

	fp.Save(newPersistableSession(t, "a1"))
	fp.Save(newPersistableSession(t, "b2"))

	// Non-JSON files are ignored.
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0644)

	ids, err := fp.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("Expected 2 session IDs, got %d: %v", len(ids), ids)
	}
}

func TestFilePersistence_LoadMissing(t *testing.T) {
	fp, _ := newTestPersistence(t)

	if _, err := fp.Load("missing"); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManagerWithPersistence_RestoresEvictedSessions(t *testing.T) {
	fp, _ := newTestPersistence(t)
	manager := NewManagerWithPersistence(fp)
	config := createTestConfig()

	created, err := manager.Create("ev01", config)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	created.Engine.SelectTile(0)
	if err := manager.Save("ev01"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Evict from memory, then Get should restore from disk.
	if err := manager.DeleteFromMemory("ev01"); err != nil {
		t.Fatalf("DeleteFromMemory failed: %v", err)
	}

	restored, err := manager.Get("ev01")
	if err != nil {
		t.Fatalf("Get after eviction failed: %v", err)
	}
	if restored.Engine.GetState().TotalSelections == 0 {
		t.Error("Expected restored session to carry accepted selections")
	}
}

func TestManagerWithPersistence_LoadPersistedSessions(t *testing.T) {
	fp, _ := newTestPersistence(t)

	fp.Save(newPersistableSession(t, "r1"))
	fp.Save(newPersistableSession(t, "r2"))

	manager := NewManagerWithPersistence(fp)
	if err := manager.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}
	if manager.Count() != 2 {
		t.Errorf("Expected 2 restored sessions, got %d", manager.Count())
	}
}

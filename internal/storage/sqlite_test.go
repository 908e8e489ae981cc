package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.RecordCompletion("levels/01.yaml", "exit0", 12, time.Second); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	recent, err := store.RecentCompletions(10)
	if err != nil {
		t.Fatalf("RecentCompletions() failed: %v", err)
	}
	if len(recent) != 1 {
		t.Errorf("Expected 1 completion after reopen, got %d", len(recent))
	}
}

func TestStartSession(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartSession("play")
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("session ID %q is not a UUID: %v", id, err)
	}
	if store.SessionID() != id {
		t.Errorf("SessionID() = %q, expected %q", store.SessionID(), id)
	}

	sess, err := store.SessionByID(id)
	if err != nil {
		t.Fatalf("SessionByID() failed: %v", err)
	}
	if sess == nil || sess.Command != "play" {
		t.Errorf("SessionByID() = %+v, expected command play", sess)
	}

	missing, err := store.SessionByID("nope")
	if err != nil {
		t.Fatalf("SessionByID(nope) failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown session, got %+v", missing)
	}
}

func TestRecordAndQueryCompletions(t *testing.T) {
	store := openTestStore(t)

	session, err := store.StartSession("kiwi")
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}

	records := []struct {
		level   string
		exit    string
		moves   int
		elapsed time.Duration
	}{
		{"levels/01.yaml", "exit0", 30, 20 * time.Second},
		{"levels/01.yaml", "exit1", 18, 25 * time.Second},
		{"levels/02.yaml", "exit2", 44, 90 * time.Second},
	}
	for _, r := range records {
		if err := store.RecordCompletion(r.level, r.exit, r.moves, r.elapsed); err != nil {
			t.Fatalf("RecordCompletion() failed: %v", err)
		}
	}

	recent, err := store.RecentCompletions(2)
	if err != nil {
		t.Fatalf("RecentCompletions() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 completions, got %d", len(recent))
	}
	if recent[0].LevelPath != "levels/02.yaml" || recent[0].ExitID != "exit2" {
		t.Errorf("Expected newest completion first, got %+v", recent[0])
	}
	if recent[0].Duration != 90*time.Second {
		t.Errorf("Duration = %v, expected 90s", recent[0].Duration)
	}
	if recent[0].SessionID != session {
		t.Errorf("SessionID = %q, expected %q", recent[0].SessionID, session)
	}

	stats, err := store.GetLevelStats("levels/01.yaml")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats == nil {
		t.Fatal("Expected stats for levels/01.yaml")
	}
	if stats.Completions != 2 {
		t.Errorf("Completions = %d, expected 2", stats.Completions)
	}
	if stats.BestMoves != 18 {
		t.Errorf("BestMoves = %d, expected 18", stats.BestMoves)
	}
	if stats.BestDuration != 20*time.Second {
		t.Errorf("BestDuration = %v, expected 20s", stats.BestDuration)
	}

	none, err := store.GetLevelStats("levels/99.yaml")
	if err != nil {
		t.Fatalf("GetLevelStats(99) failed: %v", err)
	}
	if none != nil {
		t.Errorf("Expected nil stats for unplayed level, got %+v", none)
	}

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(all))
	}
	if all[0].LevelPath != "levels/01.yaml" || all[1].LevelPath != "levels/02.yaml" {
		t.Errorf("Expected stats ordered by path, got %q, %q", all[0].LevelPath, all[1].LevelPath)
	}
}

func TestRecordCompletionStartsSession(t *testing.T) {
	store := openTestStore(t)

	if err := store.RecordCompletion("a.yaml", "exit0", 1, time.Millisecond); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if store.SessionID() == "" {
		t.Error("Expected an implicit session to be started")
	}
}

func TestClearProgress(t *testing.T) {
	store := openTestStore(t)

	if err := store.RecordCompletion("a.yaml", "exit0", 1, time.Millisecond); err != nil {
		t.Fatalf("RecordCompletion() failed: %v", err)
	}
	if err := store.ClearProgress(); err != nil {
		t.Fatalf("ClearProgress() failed: %v", err)
	}

	recent, err := store.RecentCompletions(10)
	if err != nil {
		t.Fatalf("RecentCompletions() failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no completions after clear, got %d", len(recent))
	}
	if store.SessionID() != "" {
		t.Error("Expected session to be reset")
	}
}

// Package storage provides SQLite-based persistence for play progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for progress persistence.
// Completions are attributed to the session opened by StartSession.
type Store struct {
	db      *sql.DB
	session string
}

// Session is one run of the game binary.
type Session struct {
	ID        string
	Command   string
	StartedAt time.Time
}

// Completion represents a single finished level.
type Completion struct {
	ID        int64
	SessionID string
	LevelPath string
	ExitID    string // Trigger the actor left through
	Moves     int
	Duration  time.Duration
	CreatedAt time.Time
}

// LevelStats contains aggregated statistics for one level file.
type LevelStats struct {
	LevelPath    string
	Completions  int
	BestMoves    int
	BestDuration time.Duration
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			command TEXT NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			level_path TEXT NOT NULL,
			exit_id TEXT NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(level_path);
		CREATE INDEX IF NOT EXISTS idx_completions_session ON completions(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession registers a new session and makes it the owner of later
// completions. Returns the session ID.
func (s *Store) StartSession(command string) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec(
		"INSERT INTO sessions (id, command) VALUES (?, ?)",
		id, command,
	); err != nil {
		return "", fmt.Errorf("storage: cannot start session: %w", err)
	}
	s.session = id
	return id, nil
}

// SessionID returns the current session, or empty if none was started.
func (s *Store) SessionID() string {
	return s.session
}

// RecordCompletion stores a finished level under the current session,
// starting an anonymous one if needed.
func (s *Store) RecordCompletion(levelPath, exitID string, moves int, elapsed time.Duration) error {
	if s.session == "" {
		if _, err := s.StartSession("unknown"); err != nil {
			return err
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO completions (session_id, level_path, exit_id, moves, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		s.session, levelPath, exitID, moves, elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record completion: %w", err)
	}
	return nil
}

// RecentCompletions retrieves the most recent completions, newest first.
func (s *Store) RecentCompletions(limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, level_path, exit_id, moves, duration_ms, created_at
		 FROM completions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var results []Completion
	for rows.Next() {
		var c Completion
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&c.ID, &c.SessionID, &c.LevelPath, &c.ExitID, &c.Moves, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Duration = time.Duration(durationMS) * time.Millisecond
		c.CreatedAt = parseTime(createdAt)
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// GetLevelStats retrieves aggregated statistics for a specific level.
// Returns nil if the level was never completed.
func (s *Store) GetLevelStats(levelPath string) (*LevelStats, error) {
	stats := &LevelStats{LevelPath: levelPath}
	var bestMS int64
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(moves), 0), COALESCE(MIN(duration_ms), 0), MAX(created_at)
		 FROM completions WHERE level_path = ?`,
		levelPath,
	).Scan(&stats.Completions, &stats.BestMoves, &bestMS, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	if stats.Completions == 0 {
		return nil, nil
	}

	stats.BestDuration = time.Duration(bestMS) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been
// completed, ordered by level path.
func (s *Store) GetAllLevelStats() ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_path, COUNT(*), MIN(moves), MIN(duration_ms), MAX(created_at)
		 FROM completions
		 GROUP BY level_path
		 ORDER BY level_path`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var ls LevelStats
		var bestMS int64
		var lastPlayed any
		if err := rows.Scan(&ls.LevelPath, &ls.Completions, &ls.BestMoves, &bestMS, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.BestDuration = time.Duration(bestMS) * time.Millisecond
		ls.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, ls)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// SessionByID retrieves a session. Returns nil if it does not exist.
func (s *Store) SessionByID(id string) (*Session, error) {
	var sess Session
	var startedAt any
	err := s.db.QueryRow(
		"SELECT id, command, started_at FROM sessions WHERE id = ?",
		id,
	).Scan(&sess.ID, &sess.Command, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	sess.StartedAt = parseTime(startedAt)
	return &sess, nil
}

// ClearProgress deletes all sessions and completions.
func (s *Store) ClearProgress() error {
	if _, err := s.db.Exec("DELETE FROM completions; DELETE FROM sessions;"); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	s.session = ""
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

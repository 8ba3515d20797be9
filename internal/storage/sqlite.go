// Package storage provides SQLite-based persistence for finished game sessions.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-concentration/internal/core"
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for session results.
type Store struct {
	db *sql.DB
}

// Result is the outcome of one session: completed boards and abandoned ones.
type Result struct {
	ID           int64
	GameID       string
	MatchedPairs int
	TotalPairs   int
	Flips        int
	Duration     time.Duration
	Completed    bool
	CreatedAt    time.Time
}

// NewResult builds the row for a finished or abandoned session.
func NewResult(gameID string, s core.SessionSummary) Result {
	return Result{
		GameID:       gameID,
		MatchedPairs: s.Score,
		TotalPairs:   s.MaxScore,
		Flips:        s.Moves,
		Duration:     s.Elapsed,
		Completed:    s.Completed,
	}
}

// Stats summarizes all results recorded for a game.
type Stats struct {
	Played    int
	Completed int
	Fastest   time.Duration // Zero if no board was ever completed
	Average   time.Duration // Mean duration of completed boards
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			matched_pairs INTEGER NOT NULL,
			total_pairs INTEGER NOT NULL,
			flips INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_game_id ON results(game_id);
		CREATE INDEX IF NOT EXISTS idx_results_fastest ON results(game_id, completed, duration_ms);
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

// SaveResult records a session outcome and returns its ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.GameID == "" {
		return 0, errors.New("storage: result has no game id")
	}
	if r.MatchedPairs < 0 || r.MatchedPairs > r.TotalPairs {
		return 0, fmt.Errorf("storage: matched pairs %d out of range 0..%d", r.MatchedPairs, r.TotalPairs)
	}

	res, err := s.db.Exec(
		`INSERT INTO results (game_id, matched_pairs, total_pairs, flips, duration_ms, completed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.GameID, r.MatchedPairs, r.TotalPairs, r.Flips, r.Duration.Milliseconds(), r.Completed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentResults returns the newest results for the game, newest first.
func (s *Store) RecentResults(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryResults(
		`SELECT id, game_id, matched_pairs, total_pairs, flips, duration_ms, completed, created_at
		 FROM results
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// FastestCompletions returns completed boards ordered by duration, fastest first.
func (s *Store) FastestCompletions(gameID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryResults(
		`SELECT id, game_id, matched_pairs, total_pairs, flips, duration_ms, completed, created_at
		 FROM results
		 WHERE game_id = ? AND completed = 1
		 ORDER BY duration_ms ASC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// Stats aggregates all results of the game.
func (s *Store) Stats(gameID string) (Stats, error) {
	var (
		st      Stats
		fastest sql.NullInt64
		average sql.NullFloat64
	)

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(completed), 0),
		        MIN(CASE WHEN completed = 1 THEN duration_ms END),
		        AVG(CASE WHEN completed = 1 THEN duration_ms END)
		 FROM results
		 WHERE game_id = ?`,
		gameID,
	).Scan(&st.Played, &st.Completed, &fastest, &average)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if fastest.Valid {
		st.Fastest = time.Duration(fastest.Int64) * time.Millisecond
	}
	if average.Valid {
		st.Average = time.Duration(average.Float64 * float64(time.Millisecond))
	}

	return st, nil
}

// ClearResults deletes all results for the given game.
func (s *Store) ClearResults(gameID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func (s *Store) queryResults(query string, args ...any) ([]Result, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r          Result
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&r.ID, &r.GameID, &r.MatchedPairs, &r.TotalPairs, &r.Flips,
			&durationMS, &r.Completed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond

		// The driver may hand back either time.Time or the raw text.
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse(sqliteTime, v); err == nil {
				r.CreatedAt = parsed
			}
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

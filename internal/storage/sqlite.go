// Package storage provides the SQLite replay journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/catmatch/internal/games/catmatch"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// ReplaySummary is one journal row without its moves.
type ReplaySummary struct {
	ID         int64
	GameID     string
	Seed       int64
	FinalScore int
	MoveCount  int
	CreatedAt  time.Time
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
		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			rules TEXT NOT NULL,
			final_score INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_replays_game_id ON replays(game_id);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_moves (
			replay_id INTEGER NOT NULL REFERENCES replays(id),
			seq INTEGER NOT NULL,
			second INTEGER NOT NULL,
			row_a INTEGER NOT NULL,
			col_a INTEGER NOT NULL,
			row_b INTEGER NOT NULL,
			col_b INTEGER NOT NULL,
			PRIMARY KEY (replay_id, seq)
		);
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

// SaveReplay stores a finished session and its moves in one transaction.
// A zero CreatedAt is replaced by the current time. Returns the new ID.
func (s *Store) SaveReplay(rec catmatch.ReplayRecord) (int64, error) {
	rules, err := yaml.Marshal(rec.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode rules: %w", err)
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // No-op after Commit
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO replays (game_id, seed, rules, final_score, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.GameID, rec.Seed, string(rules), rec.FinalScore, created.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO replay_moves (replay_id, seq, second, row_a, col_a, row_b, col_b)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare move insert: %w", err)
	}
	defer stmt.Close()

	for i, mv := range rec.Moves {
		if _, err := stmt.Exec(id, i, mv.Second, mv.A.Row, mv.A.Col, mv.B.Row, mv.B.Col); err != nil {
			return 0, fmt.Errorf("storage: cannot save move %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// Ensure Store implements ReplaySaver
var _ catmatch.ReplaySaver = (*Store)(nil)

// ReplayByID loads a full record. Returns nil without error when the ID is unknown.
func (s *Store) ReplayByID(id int64) (*catmatch.ReplayRecord, error) {
	rec := catmatch.ReplayRecord{ID: id}
	var rules string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT game_id, seed, rules, final_score, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&rec.GameID, &rec.Seed, &rules, &rec.FinalScore, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay %d: %w", id, err)
	}

	if err := yaml.Unmarshal([]byte(rules), &rec.Config); err != nil {
		return nil, fmt.Errorf("storage: replay %d has corrupt rules: %w", id, err)
	}
	rec.CreatedAt = parseTime(createdAt)

	rows, err := s.db.Query(
		`SELECT second, row_a, col_a, row_b, col_b
		 FROM replay_moves
		 WHERE replay_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mv catmatch.RecordedMove
		if err := rows.Scan(&mv.Second, &mv.A.Row, &mv.A.Col, &mv.B.Row, &mv.B.Col); err != nil {
			return nil, fmt.Errorf("storage: cannot scan move: %w", err)
		}
		rec.Moves = append(rec.Moves, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &rec, nil
}

// RecentReplays lists the newest journal entries, optionally for one game.
// An empty gameID lists all games.
func (s *Store) RecentReplays(gameID string, limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.game_id, r.seed, r.final_score, r.created_at,
		        (SELECT COUNT(*) FROM replay_moves m WHERE m.replay_id = r.id)
		 FROM replays r
		 WHERE ? = '' OR r.game_id = ?
		 ORDER BY r.created_at DESC, r.id DESC
		 LIMIT ?`,
		gameID, gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var out []ReplaySummary
	for rows.Next() {
		var sum ReplaySummary
		var createdAt any
		if err := rows.Scan(&sum.ID, &sum.GameID, &sum.Seed, &sum.FinalScore, &createdAt, &sum.MoveCount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sum.CreatedAt = parseTime(createdAt)
		out = append(out, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// DeleteReplay removes a record and its moves. Deleting an unknown ID is not an error.
func (s *Store) DeleteReplay(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // No-op after Commit
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM replay_moves WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete moves of replay %d: %w", id, err)
	}
	if _, err := tx.Exec("DELETE FROM replays WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Package storage keeps user-authored levels and completion records in a
// local SQLite database (pure-Go modernc.org/sqlite driver, no CGO).
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/re-ovo/fall-escape/levels"
)

var ErrLevelNotFound = errors.New("storage: level not found")

// DefaultPath is used when no database path is configured.
const DefaultPath = "~/.fall-escape/levels.db"

type Store struct {
	db *sql.DB
}

// CustomLevel is a stored user-authored level.
type CustomLevel struct {
	ID        int64
	Level     levels.Level
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Key identifies the level in completion records.
func (c CustomLevel) Key() string {
	return fmt.Sprintf("custom:%d", c.ID)
}

// Completion is one finished run of a level.
type Completion struct {
	ID        int64
	LevelKey  string
	Rotations int
	Seconds   float64
	CreatedAt time.Time
}

// Open creates or opens the database at path, creating parent directories
// and the schema as needed. A leading ~ expands to the home directory.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultPath
	}
	if dbPath[0] == '~' {
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS custom_levels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			grid TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_key TEXT NOT NULL,
			rotations INTEGER NOT NULL DEFAULT 0,
			seconds REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(level_key, seconds);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AddLevel validates and stores a new level, returning its ID.
func (s *Store) AddLevel(lvl levels.Level) (int64, error) {
	grid, err := encodeValid(lvl)
	if err != nil {
		return 0, err
	}
	result, err := s.db.Exec("INSERT INTO custom_levels (grid) VALUES (?)", grid)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// UpdateLevel replaces the grid of an existing level.
func (s *Store) UpdateLevel(id int64, lvl levels.Level) error {
	grid, err := encodeValid(lvl)
	if err != nil {
		return err
	}
	result, err := s.db.Exec(
		"UPDATE custom_levels SET grid = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		grid, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update level %d: %w", id, err)
	}
	return expectOne(result, id)
}

func (s *Store) DeleteLevel(id int64) error {
	result, err := s.db.Exec("DELETE FROM custom_levels WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete level %d: %w", id, err)
	}
	return expectOne(result, id)
}

// Level fetches one stored level.
func (s *Store) Level(id int64) (CustomLevel, error) {
	row := s.db.QueryRow(
		"SELECT id, grid, created_at, updated_at FROM custom_levels WHERE id = ?", id,
	)
	c, err := scanLevel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return CustomLevel{}, fmt.Errorf("%w: %d", ErrLevelNotFound, id)
	}
	return c, err
}

// Levels returns every stored level in creation order.
func (s *Store) Levels() ([]CustomLevel, error) {
	rows, err := s.db.Query(
		"SELECT id, grid, created_at, updated_at FROM custom_levels ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var out []CustomLevel
	for rows.Next() {
		c, err := scanLevel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearLevels deletes every stored level and returns how many were removed.
func (s *Store) ClearLevels() (int64, error) {
	result, err := s.db.Exec("DELETE FROM custom_levels")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear levels: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared levels: %w", err)
	}
	return n, nil
}

// RecordCompletion stores one finished run.
func (s *Store) RecordCompletion(levelKey string, rotations int, seconds float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (level_key, rotations, seconds) VALUES (?, ?, ?)",
		levelKey, rotations, seconds,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record completion: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// BestCompletion returns the fastest run of a level, ties broken by fewer
// rotations. ok is false when the level was never completed.
func (s *Store) BestCompletion(levelKey string) (Completion, bool, error) {
	var c Completion
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, level_key, rotations, seconds, created_at
		 FROM completions
		 WHERE level_key = ?
		 ORDER BY seconds ASC, rotations ASC, id ASC
		 LIMIT 1`,
		levelKey,
	).Scan(&c.ID, &c.LevelKey, &c.Rotations, &c.Seconds, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Completion{}, false, nil
	}
	if err != nil {
		return Completion{}, false, fmt.Errorf("storage: cannot query completion: %w", err)
	}
	c.CreatedAt = parseTime(createdAt)
	return c, true, nil
}

// CompletedKeys returns the set of level keys with at least one completion.
func (s *Store) CompletedKeys() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT DISTINCT level_key FROM completions")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out[key] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLevel(row scanner) (CustomLevel, error) {
	var c CustomLevel
	var grid string
	var createdAt, updatedAt any
	if err := row.Scan(&c.ID, &grid, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	lvl, err := levels.Decode([]byte(grid))
	if err != nil {
		return c, fmt.Errorf("storage: level %d: %w", c.ID, err)
	}
	c.Level = lvl
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}

func encodeValid(lvl levels.Level) (string, error) {
	if err := lvl.Validate(); err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}
	data, err := levels.Encode(lvl)
	if err != nil {
		return "", fmt.Errorf("storage: %w", err)
	}
	return string(data), nil
}

func expectOne(result sql.Result, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrLevelNotFound, id)
	}
	return nil
}

// parseTime handles both time.Time and the string form SQLite may return.
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

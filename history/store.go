// Package history records visited directories per panel in a SQLite
// database, backing the directory-history popup and the --resume-last
// startup path.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"mariner/fspath"
)

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id         INTEGER PRIMARY KEY,
	panel      TEXT NOT NULL,
	path       TEXT NOT NULL,
	visited_at TEXT NOT NULL,
	UNIQUE(panel, path)
);

CREATE INDEX IF NOT EXISTS visits_recency ON visits (panel, visited_at DESC);
`

// Visit is one remembered directory.
type Visit struct {
	Path      fspath.Path
	VisitedAt time.Time
}

// Store is a per-panel directory history backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time // swapped out in tests
}

// Open opens (or creates) the history database at dbPath and runs schema
// migrations. Use ":memory:" for an in-memory database (useful in tests).
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run schema migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records a visit, bumping the timestamp when the directory was seen
// before. Paths are stored with credentials stripped.
func (s *Store) Add(panel string, path fspath.Path) error {
	if path.IsZero() {
		return nil
	}
	const q = `
		INSERT INTO visits (panel, path, visited_at)
		VALUES (?, ?, ?)
		ON CONFLICT(panel, path) DO UPDATE SET visited_at = excluded.visited_at
	`
	_, err := s.db.Exec(q, panel, path.Redacted(), s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Recent returns up to limit visits for a panel, most recent first.
func (s *Store) Recent(panel string, limit int) ([]Visit, error) {
	const q = `
		SELECT path, visited_at
		FROM visits
		WHERE panel = ?
		ORDER BY visited_at DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.Query(q, panel, limit)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var path, visitedAt string
		if err := rows.Scan(&path, &visitedAt); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, Visit{
			Path:      fspath.New(path),
			VisitedAt: parseTime(visitedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}
	return visits, nil
}

// Last returns the most recent visit for a panel, or false when the panel
// has no history yet.
func (s *Store) Last(panel string) (Visit, bool, error) {
	visits, err := s.Recent(panel, 1)
	if err != nil {
		return Visit{}, false, err
	}
	if len(visits) == 0 {
		return Visit{}, false, nil
	}
	return visits[0], true, nil
}

// Prune keeps only the newest keep visits per panel.
func (s *Store) Prune(panel string, keep int) error {
	const q = `
		DELETE FROM visits
		WHERE panel = ? AND id NOT IN (
			SELECT id FROM visits
			WHERE panel = ?
			ORDER BY visited_at DESC, id DESC
			LIMIT ?
		)
	`
	if _, err := s.db.Exec(q, panel, panel, keep); err != nil {
		return fmt.Errorf("prune visits: %w", err)
	}
	return nil
}

// parseTime parses an RFC3339 string. Returns zero time on empty or invalid input.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

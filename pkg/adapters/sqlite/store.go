// Package sqlite stores chord variations and recorded transitions in a SQLite
// database through the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/fretwise/pkg/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chords (
	name TEXT PRIMARY KEY,
	root TEXT NOT NULL,
	ordinal INTEGER NOT NULL,
	positions TEXT NOT NULL,
	fingerings TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chords_root ON chords(root);

CREATE TABLE IF NOT EXISTS transitions (
	pair TEXT NOT NULL,
	seq INTEGER NOT NULL,
	name TEXT NOT NULL,
	from_chord TEXT NOT NULL,
	to_chord TEXT NOT NULL,
	finger_movement REAL NOT NULL,
	hand_movement REAL NOT NULL,
	total REAL NOT NULL,
	PRIMARY KEY (pair, seq)
);
`

// Store implements ports.Library and ports.TransitionRecorder on SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens the database at path and applies the schema.
// Use ":memory:" for a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SaveVariations upserts a batch inside one transaction.
func (s *Store) SaveVariations(ctx context.Context, batch []domain.ChordVariation) error {
	for _, v := range batch {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chords (name, root, ordinal, positions, fingerings)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			root = excluded.root,
			ordinal = excluded.ordinal,
			positions = excluded.positions,
			fingerings = excluded.fingerings`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range batch {
		positions, err := json.Marshal(v.Positions)
		if err != nil {
			return fmt.Errorf("failed to marshal positions of %s: %w", v.Name, err)
		}
		fingerings, err := json.Marshal(v.Fingerings)
		if err != nil {
			return fmt.Errorf("failed to marshal fingerings of %s: %w", v.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, v.Name, v.Root(), domain.Ordinal(v.Name), string(positions), string(fingerings)); err != nil {
			return fmt.Errorf("failed to insert %s: %w", v.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// ListVariations returns the variations of a root ordered by ordinal then name.
func (s *Store) ListVariations(ctx context.Context, root string) ([]domain.ChordVariation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, positions, fingerings FROM chords WHERE root = ? ORDER BY ordinal, name`, root)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", root, err)
	}
	defer rows.Close()

	var out []domain.ChordVariation
	for rows.Next() {
		var (
			v                     domain.ChordVariation
			positions, fingerings string
		)
		if err := rows.Scan(&v.Name, &positions, &fingerings); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", root, err)
		}
		if err := json.Unmarshal([]byte(positions), &v.Positions); err != nil {
			return nil, fmt.Errorf("corrupt positions for %s: %w", v.Name, err)
		}
		if err := json.Unmarshal([]byte(fingerings), &v.Fingerings); err != nil {
			return nil, fmt.Errorf("corrupt fingerings for %s: %w", v.Name, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &domain.NotFoundError{Root: root}
	}
	return out, nil
}

// ListRoots returns the distinct chord roots in ascending order.
func (s *Store) ListRoots(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT root FROM chords ORDER BY root`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roots: %w", err)
	}
	defer rows.Close()

	var roots []string
	for rows.Next() {
		var r string
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		roots = append(roots, r)
	}
	return roots, rows.Err()
}

// Package sqlite stores named graphs in a SQLite database, one row per statement.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/c360/ontograph/codec"
	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
	"github.com/c360/ontograph/storage"
)

// Store manages the SQLite connection and schema.
type Store struct {
	db *sql.DB
}

var _ storage.Store = (*Store)(nil)

// NewStore opens (or creates) the database at dbPath.
// It enables WAL mode for concurrency and durability.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.WrapFatal(err, "sqlite", "NewStore", "open database")
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapTransient(fmt.Errorf("%w: %v", errors.ErrStorageUnavailable, err),
			"sqlite", "NewStore", "ping database")
	}

	// WAL mode only applies to file databases; in-memory ones report "memory" and that is fine
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, errors.WrapFatal(err, "sqlite", "NewStore", "enable WAL mode")
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		_ = db.Close()
		return nil, errors.WrapFatal(err, "sqlite", "NewStore", "enable foreign keys")
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, errors.WrapFatal(err, "sqlite", "NewStore", "schema migration")
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the necessary tables if they don't exist.
func (s *Store) migrate() error {
	// Statements are stored as their N-Quads line; the predicate is kept as a column so
	// a graph's statements can be inspected by predicate without parsing.
	query := `
	CREATE TABLE IF NOT EXISTS graphs (
		name TEXT PRIMARY KEY,
		statement_count INTEGER NOT NULL,
		saved_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS statements (
		graph TEXT NOT NULL REFERENCES graphs(name) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		predicate TEXT NOT NULL,
		line TEXT NOT NULL,
		PRIMARY KEY (graph, position)
	);

	CREATE INDEX IF NOT EXISTS idx_statements_predicate ON statements(graph, predicate);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Save replaces the statements stored under name in one transaction
func (s *Store) Save(ctx context.Context, name string, statements []graph.Statement) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WrapTransient(err, "sqlite", "Save", "begin transaction")
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM graphs WHERE name = ?`, name); err != nil {
		return errors.WrapTransient(err, "sqlite", "Save", "delete previous graph")
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO graphs (name, statement_count) VALUES (?, ?)`, name, len(statements)); err != nil {
		return errors.WrapTransient(err, "sqlite", "Save", "insert graph")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO statements (graph, position, predicate, line) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.WrapTransient(err, "sqlite", "Save", "prepare insert")
	}
	defer stmt.Close()

	for i, st := range statements {
		line, err := codec.FormatLine(st)
		if err != nil {
			return errors.Wrap(err, "sqlite", "Save", fmt.Sprintf("encode statement %d", i))
		}
		if _, err := stmt.ExecContext(ctx, name, i, st.Predicate.Value, line); err != nil {
			return errors.WrapTransient(err, "sqlite", "Save", fmt.Sprintf("insert statement %d", i))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.WrapTransient(err, "sqlite", "Save", "commit")
	}
	return nil
}

// Load returns the statements stored under name in saved order
func (s *Store) Load(ctx context.Context, name string) ([]graph.Statement, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT statement_count FROM graphs WHERE name = ?`, name).Scan(&count)
	if err == sql.ErrNoRows {
		return nil, storage.NotFound("sqlite", name)
	}
	if err != nil {
		return nil, errors.WrapTransient(err, "sqlite", "Load", "query graph")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT line FROM statements WHERE graph = ? ORDER BY position`, name)
	if err != nil {
		return nil, errors.WrapTransient(err, "sqlite", "Load", "query statements")
	}
	defer rows.Close()

	out := make([]graph.Statement, 0, count)
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, errors.WrapTransient(err, "sqlite", "Load", "scan statement")
		}
		st, err := codec.ParseLine(line)
		if err != nil {
			return nil, errors.WrapFatal(fmt.Errorf("%w: %v", errors.ErrDataCorrupted, err),
				"sqlite", "Load", "parse stored statement")
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapTransient(err, "sqlite", "Load", "iterate statements")
	}
	if len(out) != count {
		return nil, errors.WrapFatal(errors.ErrDataCorrupted, "sqlite", "Load",
			fmt.Sprintf("statement count check (want %d, got %d)", count, len(out)))
	}
	return out, nil
}

// CountByPredicate returns how many statements of name use predicate
func (s *Store) CountByPredicate(ctx context.Context, name, predicate string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM statements WHERE graph = ? AND predicate = ?`, name, predicate).Scan(&n)
	if err != nil {
		return 0, errors.WrapTransient(err, "sqlite", "CountByPredicate", "count statements")
	}
	return n, nil
}

// Delete removes name and its statements
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM graphs WHERE name = ?`, name); err != nil {
		return errors.WrapTransient(err, "sqlite", "Delete", "delete graph")
	}
	return nil
}

// List returns the stored names starting with prefix
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM graphs WHERE substr(name, 1, length(?)) = ? ORDER BY name`, prefix, prefix)
	if err != nil {
		return nil, errors.WrapTransient(err, "sqlite", "List", "query names")
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.WrapTransient(err, "sqlite", "List", "scan name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapTransient(err, "sqlite", "List", "iterate names")
	}
	return names, nil
}

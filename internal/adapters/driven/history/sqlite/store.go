// Package sqlite persists per-section edit history in a local SQLite
// database. It implements the HistoryStore driven port.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/openpd/pdraft/internal/adapters/driven/history/sqlite/migrations"
	"github.com/openpd/pdraft/internal/core/domain"
	"github.com/openpd/pdraft/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store is a SQLite-backed edit history store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a history store at the specified data directory.
// If dataDir is empty, defaults to ~/.pdraft/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pdraft", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// WAL mode keeps readers from blocking the single writer.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Append stores one edit record under the section's current title.
func (s *Store) Append(ctx context.Context, sessionID, title string, rec domain.EditRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO edit_history (id, session_id, title, header, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), sessionID, title, rec.Header, rec.Content, rec.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting edit record: %w", err)
	}
	return nil
}

// List returns the records for a title, oldest first.
func (s *Store) List(ctx context.Context, sessionID, title string) ([]domain.EditRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT header, content, created_at FROM edit_history
		WHERE session_id = ? AND title = ?
		ORDER BY created_at ASC`,
		sessionID, title,
	)
	if err != nil {
		return nil, fmt.Errorf("querying edit history: %w", err)
	}
	defer rows.Close()

	var records []domain.EditRecord
	for rows.Next() {
		var rec domain.EditRecord
		var createdAt string
		if err := rows.Scan(&rec.Header, &rec.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning edit record: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		rec.Timestamp = ts
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Rekey moves a title's records to a new title after a recompute
// renames the section.
func (s *Store) Rekey(ctx context.Context, sessionID, oldTitle, newTitle string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE edit_history SET title = ? WHERE session_id = ? AND title = ?`,
		newTitle, sessionID, oldTitle,
	)
	if err != nil {
		return fmt.Errorf("rekeying edit history: %w", err)
	}
	return nil
}

// migrate applies pending schema migrations in version order.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			return fmt.Errorf("parsing migration version from %s: %w", name, err)
		}
		if version <= currentVersion {
			continue
		}

		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// Package database provides the storage layer for Galaxy.
//
// It implements the Store interface using SQLite with WAL mode. The only
// state Galaxy persists is a small set of named settings (in practice,
// the light/dark theme flag), so the schema is a single key/value table.
// The DBService struct is the primary entry point for all database
// operations.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store defines the interface for settings persistence.
// This abstraction allows for mocking in tests.
type Store interface {
	// GetSetting returns the value stored under key. ok is false when
	// the key has never been written.
	GetSetting(key string) (value string, ok bool, err error)
	// SetSetting creates or replaces the value stored under key.
	SetSetting(key, value string) error
	// ListSettings returns every stored setting, ordered by key.
	ListSettings() ([]Setting, error)

	// Close gracefully shuts down the database connection.
	Close() error
}

// ============================================================
// Domain Models
// ============================================================

// Setting is one persisted key/value pair.
type Setting struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt int64  `json:"updated_at"` // Unix nanoseconds
}

// ============================================================
// DBService Implementation
// ============================================================

// DBService implements the Store interface using SQLite.
// It serializes writers through a read-write mutex; the CLI and the
// renderers may share one database file from separate processes, which
// WAL mode handles.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtGetSetting *sql.Stmt
	stmtSetSetting *sql.Stmt
}

// NewDBService creates a new database service, initializes the schema,
// and prepares frequently-used statements.
//
// The path parameter specifies the SQLite database file location.
// Use ":memory:" for in-memory databases (useful for testing).
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=2000", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// One connection: keeps ":memory:" databases alive and writers serial.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{
		db:   db,
		path: path,
	}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

// Path returns the database file location.
func (s *DBService) Path() string { return s.path }

// initSchema reads the embedded schema.sql and executes it.
func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

func (s *DBService) prepareStatements() error {
	var err error

	s.stmtGetSetting, err = s.db.Prepare(`SELECT value FROM settings WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("preparing GetSetting: %w", err)
	}

	s.stmtSetSetting, err = s.db.Prepare(`
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("preparing SetSetting: %w", err)
	}

	return nil
}

// GetSetting returns the value stored under key.
func (s *DBService) GetSetting(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.stmtGetSetting.QueryRow(key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting creates or replaces the value stored under key.
func (s *DBService) SetSetting(key, value string) error {
	if key == "" {
		return fmt.Errorf("writing setting: empty key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.stmtSetSetting.Exec(key, value, time.Now().UnixNano()); err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

// ListSettings returns every stored setting, ordered by key.
func (s *DBService) ListSettings() ([]Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT key, value, updated_at FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		if err := rows.Scan(&st.Key, &st.Value, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning setting row: %w", err)
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// Close finalizes prepared statements and closes the database.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{s.stmtGetSetting, s.stmtSetSetting} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return s.db.Close()
}

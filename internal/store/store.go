package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// The two snapshot records. The whole item collection and the settings
// singleton are serialized as JSON under these keys, and every mutation
// rewrites them in full — there is exactly one writer, so the only
// discipline needed is replacing the snapshot atomically.
const (
	keyItems    = "bookmate_desktop_items"
	keySettings = "bookmate_desktop_settings"
)

// Store holds the in-memory item collection and settings, backed by a
// SQLite key-value snapshot.
type Store struct {
	db       *sql.DB
	items    []*Item
	settings Settings
}

// New opens (or creates) the SQLite database at dbPath, runs migrations and
// loads the persisted snapshot. A missing or unreadable snapshot is treated
// as a first run: empty collection, default settings.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, settings: DefaultSettings()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.load()
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// load reads both snapshot records. Malformed or absent records fall back
// silently: the data model never fails at the boundary, it just starts fresh.
func (s *Store) load() {
	if raw, ok := s.getRecord(keyItems); ok {
		var items []*Item
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			s.items = items
		}
	}
	if raw, ok := s.getRecord(keySettings); ok {
		var settings Settings
		if err := json.Unmarshal([]byte(raw), &settings); err == nil {
			s.settings = settings
		}
	}
}

func (s *Store) getRecord(key string) (string, bool) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", false
	}
	return value, true
}

// save writes both records in one transaction.
func (s *Store) save() error {
	items, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	settings, err := json.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, keyItems, string(items)); err != nil {
		return fmt.Errorf("write items: %w", err)
	}
	if _, err := tx.Exec(upsert, keySettings, string(settings)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return tx.Commit()
}

// DefaultDBPath returns ~/.config/bookmate/bookmate.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "bookmate", "bookmate.db"), nil
}

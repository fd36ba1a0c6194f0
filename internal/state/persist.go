package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const documentKey = "state"

// Persistence is the key-value collaborator the Store writes through.
// Load returns ok=false when nothing has been stored yet.
type Persistence interface {
	Load() (data []byte, ok bool, err error)
	Save(data []byte) error
	Close() error
}

// SQLitePersistence keeps the document as a single row in a local
// sqlite database.
type SQLitePersistence struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at dbPath.
func OpenSQLite(dbPath string) (*SQLitePersistence, error) {
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

	const ddl = `
	CREATE TABLE IF NOT EXISTS document (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create document table: %w", err)
	}

	return &SQLitePersistence{db: db}, nil
}

func (p *SQLitePersistence) Load() ([]byte, bool, error) {
	var value string
	err := p.db.QueryRow(`SELECT value FROM document WHERE key = ?`, documentKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load document: %w", err)
	}
	return []byte(value), true, nil
}

func (p *SQLitePersistence) Save(data []byte) error {
	_, err := p.db.Exec(
		`INSERT INTO document (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		documentKey, string(data),
	)
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (p *SQLitePersistence) Close() error {
	return p.db.Close()
}

// MemoryPersistence is an in-process Persistence for tests.
type MemoryPersistence struct {
	data []byte
	ok   bool

	// FailSave, when set, makes every Save return it.
	FailSave error
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (p *MemoryPersistence) Load() ([]byte, bool, error) {
	if !p.ok {
		return nil, false, nil
	}
	return p.data, true, nil
}

func (p *MemoryPersistence) Save(data []byte) error {
	if p.FailSave != nil {
		return p.FailSave
	}
	p.data = append([]byte(nil), data...)
	p.ok = true
	return nil
}

func (p *MemoryPersistence) Close() error { return nil }

// DefaultDBPath returns ~/.config/dayflow/dayflow.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dayflow", "dayflow.db"), nil
}

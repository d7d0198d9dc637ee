// Package sqlite implements the gateway against an embedded database
// for local and self-hosted operation. It covers the same contract as
// the hosted service: table CRUD, password accounts and the admin_users
// membership table.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/dvail/trackline/internal/domain/auth"
	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_name TEXT NOT NULL DEFAULT '',
    activity_name TEXT NOT NULL DEFAULT '',
    progress TEXT NOT NULL DEFAULT '0',
    expected_time REAL NOT NULL DEFAULT 0,
    urgency TEXT NOT NULL DEFAULT 'Medium',
    notes TEXT NOT NULL DEFAULT '',
    assigned INTEGER NOT NULL DEFAULT 0,
    assigned_to_who TEXT NOT NULL DEFAULT '',
    created_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_project ON activities(project_name);
CREATE INDEX IF NOT EXISTS idx_activities_created ON activities(created_at);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    display_name TEXT NOT NULL DEFAULT '',
    full_name TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS admin_users (
    user_id TEXT PRIMARY KEY,
    granted_at TIMESTAMP NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);
`

// Gateway is an embedded-database gateway. The session (signed-in user
// and token) lives in process memory, matching the transient session of
// the hosted service's client.
type Gateway struct {
	db   *sql.DB
	lock *flock.Flock

	mu      sync.Mutex
	current *auth.User
	token   string
}

// Open opens (and if needed creates) the database at path and applies
// the schema. File-backed databases take a sidecar flock so two
// processes never share one database file.
func Open(path string) (*Gateway, error) {
	g := &Gateway{}

	if !isMemory(path) {
		g.lock = flock.New(path + ".lock")
		locked, err := g.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("locking database: %w", err)
		}
		if !locked {
			return nil, fmt.Errorf("database %s is in use by another process", path)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		g.unlock()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if isMemory(path) {
		// A pooled second connection to :memory: would see a separate
		// empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		g.unlock()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		g.unlock()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	g.db = db
	return g, nil
}

// Close releases the database and the file lock.
func (g *Gateway) Close() error {
	err := g.db.Close()
	g.unlock()
	return err
}

func (g *Gateway) unlock() {
	if g.lock != nil {
		g.lock.Unlock()
	}
}

func isMemory(path string) bool {
	return path == "" || strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory")
}

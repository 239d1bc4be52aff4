// Package state keeps a ledger of the notes that were listened to, so a
// note nobody has heard yet can be marked as new.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "wavenote"
	dbFileName   = "wavenote.db"
	saveDebounce = 500 * time.Millisecond
	// DefaultKeep is how many notes the ledger remembers.
	DefaultKeep = 500
)

type Manager struct {
	db *sql.DB

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]pendingListen
	closed    bool
}

// DefaultPath is $XDG_DATA_HOME/wavenote/wavenote.db.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// Open opens or creates the database at path and drops all but the keep
// most recently heard notes.
func Open(path string, keep int) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create state directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open state database")
	}
	// Debounced saves run on timer goroutines.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init schema")
	}

	m := &Manager{db: db, pending: make(map[string]pendingListen)}
	if keep > 0 {
		if err := m.prune(keep); err != nil {
			log.Warn().Err(err).Msg("prune listens")
		}
	}
	return m, nil
}

// Close flushes pending writes and closes the database.
func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.closed {
		m.saveMu.Unlock()
		return nil
	}
	m.closed = true
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveMu.Unlock()

	return errors.CombineErrors(m.Flush(), m.db.Close())
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

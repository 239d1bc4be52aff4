package state

import (
	"database/sql"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavenote/internal/db"
	"github.com/llehouerou/wavenote/internal/player"
)

// Listen summarizes how a note was listened to.
type Listen struct {
	Plays     int  // playbacks started from the beginning
	Completed bool // played through to the end at least once
	Duration  time.Duration
	LastHeard time.Time
}

// Heard reports whether the note was listened to at all.
func (l Listen) Heard() bool {
	return l.Plays > 0 || l.Completed
}

type pendingListen struct {
	plays     int
	completed bool
	duration  time.Duration
	forget    bool
	at        time.Time
}

// merge folds a later write into p. A forget discards what came before it.
func (p pendingListen) merge(next pendingListen) pendingListen {
	if next.forget {
		return next
	}
	p.plays += next.plays
	p.completed = p.completed || next.completed
	if next.duration > 0 {
		p.duration = next.duration
	}
	p.at = next.at
	return p
}

// Key identifies a source across runs. Local paths are made absolute so a
// note opened from another directory still matches.
func Key(src player.Source) string {
	if path, ok := src.LocalPath(); ok {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return src.Normalize().URL
}

// Listen returns what the ledger knows about src, including writes not
// flushed yet.
func (m *Manager) Listen(src player.Source) (Listen, error) {
	key := Key(src)

	m.saveMu.Lock()
	p, pending := m.pending[key]
	m.saveMu.Unlock()

	var l Listen
	if !pending || !p.forget {
		var completed bool
		var dur sql.NullInt64
		var last int64
		err := m.db.QueryRow(`
			SELECT plays, completed, duration_ms, last_heard_at FROM note_listens WHERE source = ?
		`, key).Scan(&l.Plays, &completed, &dur, &last)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return Listen{}, errors.Wrap(err, "query listen")
		default:
			l.Completed = completed
			l.Duration = time.Duration(db.NullInt64Value(dur)) * time.Millisecond
			l.LastHeard = time.Unix(0, last)
		}
	}
	if pending {
		l.Plays += p.plays
		l.Completed = l.Completed || p.completed
		if p.duration > 0 {
			l.Duration = p.duration
		}
		if !p.at.IsZero() {
			l.LastHeard = p.at
		}
	}
	return l, nil
}

// MarkStarted records a playback of src that began at its start.
func (m *Manager) MarkStarted(src player.Source, duration time.Duration) {
	if src.IsEmpty() {
		return
	}
	m.queue(Key(src), pendingListen{plays: 1, duration: duration, at: time.Now()})
}

// MarkCompleted records that src was played to its end.
func (m *Manager) MarkCompleted(src player.Source) {
	if src.IsEmpty() {
		return
	}
	m.queue(Key(src), pendingListen{completed: true, at: time.Now()})
}

// Forget drops src from the ledger so it shows as new again.
func (m *Manager) Forget(src player.Source) {
	if src.IsEmpty() {
		return
	}
	m.queue(Key(src), pendingListen{forget: true})
}

func (m *Manager) queue(key string, p pendingListen) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	if m.closed {
		return
	}

	if prev, ok := m.pending[key]; ok {
		p = prev.merge(p)
	}
	m.pending[key] = p

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		if err := m.Flush(); err != nil {
			log.Warn().Err(err).Msg("save listens")
		}
	})
}

// Flush writes pending changes in one transaction.
func (m *Manager) Flush() error {
	m.saveMu.Lock()
	pending := m.pending
	m.pending = make(map[string]pendingListen)
	m.saveMu.Unlock()

	if len(pending) == 0 {
		return nil
	}
	return db.WithTx(m.db, func(tx *sql.Tx) error {
		for key, p := range pending {
			if p.forget {
				if _, err := tx.Exec(`DELETE FROM note_listens WHERE source = ?`, key); err != nil {
					return errors.Wrap(err, "forget listen")
				}
			}
			if p.plays == 0 && !p.completed {
				continue
			}
			at := p.at.UnixNano()
			_, err := tx.Exec(`
				INSERT INTO note_listens (source, plays, completed, duration_ms, first_heard_at, last_heard_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(source) DO UPDATE SET
					plays = note_listens.plays + excluded.plays,
					completed = MAX(note_listens.completed, excluded.completed),
					duration_ms = COALESCE(excluded.duration_ms, note_listens.duration_ms),
					last_heard_at = excluded.last_heard_at
			`, key, p.plays, p.completed, nullMillis(p.duration), at, at)
			if err != nil {
				return errors.Wrap(err, "save listen")
			}
		}
		return nil
	})
}

func (m *Manager) prune(keep int) error {
	_, err := m.db.Exec(`
		DELETE FROM note_listens WHERE source NOT IN (
			SELECT source FROM note_listens ORDER BY last_heard_at DESC LIMIT ?
		)
	`, keep)
	return err
}

func nullMillis(d time.Duration) sql.NullInt64 {
	return sql.NullInt64{Int64: d.Milliseconds(), Valid: d > 0}
}

package state

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS note_listens (
			source TEXT PRIMARY KEY,
			plays INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER,
			first_heard_at INTEGER NOT NULL,
			last_heard_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_note_listens_last ON note_listens(last_heard_at DESC);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"github.com/ajpelaez/hymnbox/internal/app/session/state"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS playback_state (
	user_id    TEXT PRIMARY KEY,
	setting    TEXT NOT NULL,
	info       TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// SQLite persists state in a local sqlite database, one row per user with
// the setting and info records stored as JSON columns.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (and if needed initializes) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to initialize sqlite schema")
	}

	return &SQLite{db: db}, nil
}

// Load implements Store.
func (s *SQLite) Load(ctx context.Context, userID string) (*state.State, bool, error) {
	var settingJSON, infoJSON []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT setting, info FROM playback_state WHERE user_id = ?`, userID,
	).Scan(&settingJSON, &infoJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to load state for user %s", userID)
	}

	var st state.State
	if err := json.Unmarshal(settingJSON, &st.Setting); err != nil {
		return nil, false, errors.Wrapf(err, "failed to decode setting for user %s", userID)
	}
	if err := json.Unmarshal(infoJSON, &st.Info); err != nil {
		return nil, false, errors.Wrapf(err, "failed to decode info for user %s", userID)
	}
	return &st, true, nil
}

// Save implements Store.
func (s *SQLite) Save(ctx context.Context, userID string, st *state.State) error {
	settingJSON, err := json.Marshal(st.Setting)
	if err != nil {
		return errors.Wrapf(err, "failed to encode setting for user %s", userID)
	}
	infoJSON, err := json.Marshal(st.Info)
	if err != nil {
		return errors.Wrapf(err, "failed to encode info for user %s", userID)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO playback_state (user_id, setting, info) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			setting = excluded.setting,
			info = excluded.info,
			updated_at = datetime('now')`,
		userID, settingJSON, infoJSON,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to save state for user %s", userID)
	}
	return nil
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}

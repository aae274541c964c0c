package sessions

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/jrsteele09/go-profile-optimizer/profile"
	_ "modernc.org/sqlite"
)

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           TEXT PRIMARY KEY,
	member_id    TEXT NOT NULL DEFAULT '',
	access_token TEXT NOT NULL,
	scope        TEXT NOT NULL DEFAULT '',
	token_expiry INTEGER NOT NULL DEFAULT 0,
	profile      TEXT,
	created_at   INTEGER NOT NULL,
	expires_at   INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS sessions_expires_at ON sessions (expires_at);`

// SQLiteStore persists sessions in a SQLite table. Access tokens are sealed before
// they are written.
type SQLiteStore struct {
	db     *sql.DB
	sealer *Sealer
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLiteStore opens (creating if needed) the database at dsn, for example
// "file:sessions.db" or ":memory:".
func OpenSQLiteStore(ctx context.Context, dsn string, sealer *Sealer) (*SQLiteStore, error) {
	if sealer == nil {
		return nil, apperrors.New("sqlite session store requires a sealer")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open session database")
	}
	// SQLite serialises writers; one connection also keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sessionsSchema); err != nil {
		_ = db.Close()
		return nil, apperrors.Wrapf(err, "failed to create sessions table")
	}
	return &SQLiteStore{db: db, sealer: sealer}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, apperrors.ErrSessionNotFound
	}

	var sess Session
	var sealed string
	var profileJSON sql.NullString
	var tokenExpiry, created, expires int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id, member_id, access_token, scope, token_expiry, profile, created_at, expires_at
		FROM sessions
		WHERE id = ?`, id).
		Scan(&sess.ID, &sess.MemberID, &sealed, &sess.Scope, &tokenExpiry, &profileJSON, &created, &expires)
	if err != nil {
		if apperrors.Is(err, sql.ErrNoRows) {
			return Session{}, apperrors.ErrSessionNotFound
		}
		return Session{}, apperrors.Wrapf(err, "failed to get session")
	}

	sess.TokenExpiry = fromUnixMilli(tokenExpiry)
	sess.CreatedAt = fromUnixMilli(created)
	sess.ExpiresAt = fromUnixMilli(expires)
	if sess.Expired(NowTimeFunc()) {
		if err := s.Clear(ctx, id); err != nil {
			return Session{}, err
		}
		return Session{}, apperrors.ErrSessionExpired
	}

	if sess.AccessToken, err = s.sealer.Open(sealed); err != nil {
		return Session{}, apperrors.Wrapf(err, "session %s", id)
	}
	if profileJSON.Valid && profileJSON.String != "" {
		var p profile.Profile
		if err := json.Unmarshal([]byte(profileJSON.String), &p); err != nil {
			return Session{}, apperrors.Wrapf(err, "failed to decode stored profile")
		}
		sess.Profile = &p
	}
	return sess, nil
}

func (s *SQLiteStore) Set(ctx context.Context, sess Session) error {
	if sess.ID == "" {
		return apperrors.New("session id is required")
	}

	sealed, err := s.sealer.Seal(sess.AccessToken)
	if err != nil {
		return err
	}
	var profileJSON sql.NullString
	if sess.Profile != nil {
		data, err := json.Marshal(sess.Profile)
		if err != nil {
			return apperrors.Wrapf(err, "failed to encode profile")
		}
		profileJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, member_id, access_token, scope, token_expiry, profile, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			member_id = excluded.member_id,
			access_token = excluded.access_token,
			scope = excluded.scope,
			token_expiry = excluded.token_expiry,
			profile = excluded.profile,
			expires_at = excluded.expires_at`,
		sess.ID, sess.MemberID, sealed, sess.Scope, toUnixMilli(sess.TokenExpiry), profileJSON,
		toUnixMilli(sess.CreatedAt), toUnixMilli(sess.ExpiresAt))
	if err != nil {
		return apperrors.Wrapf(err, "failed to store session")
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return apperrors.Wrapf(err, "failed to delete session")
	}
	return nil
}

func (s *SQLiteStore) DeleteExpired(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at > 0 AND expires_at <= ?`, toUnixMilli(NowTimeFunc()))
	if err != nil {
		return 0, apperrors.Wrapf(err, "failed to delete expired sessions")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrapf(err, "failed to get rows affected")
	}
	return int(rows), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func toUnixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromUnixMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

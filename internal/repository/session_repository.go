package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lukaswerth/business-number-service/internal/model"
)

// SessionRepo persists login sessions (single 'sid_hash' column identifies
// a session; the raw id lives only inside the client's signed cookie).
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts a session row for the given user.
func (r *SessionRepo) Create(ctx context.Context, userID uint64, username, sidHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (user_id, username, sid_hash, expires_at) VALUES (?,?,?,?)",
		userID, username, sidHash, exp)
	return err
}

// Validate returns the session if a non-revoked, non-expired row exists for
// the hash.  Expired and revoked sessions surface as ErrNotFound so the
// middleware treats them exactly like a missing one.
func (r *SessionRepo) Validate(ctx context.Context, sidHash string) (model.Session, error) {
	var (
		s         model.Session
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, username, expires_at, revoked_at FROM sessions WHERE sid_hash=? LIMIT 1",
		sidHash).Scan(&s.ID, &s.UserID, &s.Username, &s.ExpiresAt, &revokedAt)
	if err == sql.ErrNoRows {
		return model.Session{}, ErrNotFound
	}
	if err != nil {
		return model.Session{}, err
	}
	if revokedAt.Valid {
		return model.Session{}, ErrNotFound
	}
	if time.Now().UTC().After(s.ExpiresAt) {
		return model.Session{}, ErrNotFound
	}
	s.SIDHash = sidHash
	return s, nil
}

// Revoke marks one session as ended.
func (r *SessionRepo) Revoke(ctx context.Context, sidHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET revoked_at=NOW() WHERE sid_hash=? AND revoked_at IS NULL",
		sidHash)
	return err
}

// RevokeAllForUser ends every active session of a user.
func (r *SessionRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}

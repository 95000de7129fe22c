package model

import "time"

// Session models an entry in the `sessions` table.  A session associates a
// login with a browser cookie.  The plain session id is never stored; only
// its SHA‑256 hash.  The username is denormalized onto the row so that the
// authentication middleware can resolve the current user in one query.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the session.
//  Username  – login name of the owner.
//  SIDHash   – SHA‑256 hex digest of the session id.
//  ExpiresAt – expiration timestamp of the session.
//  RevokedAt – when the session was ended by logout (null if active).
//  CreatedAt – timestamp of creation.
type Session struct {
    ID        uint64     // sessions.id
    UserID    uint64     // sessions.user_id
    Username  string     // sessions.username
    SIDHash   string     // sessions.sid_hash
    ExpiresAt time.Time  // sessions.expires_at
    RevokedAt *time.Time // sessions.revoked_at (nullable)
    CreatedAt time.Time  // sessions.created_at
}

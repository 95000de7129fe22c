package utils // package utils provides helper functions for session ids and cookie tokens

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA‑256 hashing for session ids
    "encoding/hex"  // hex encoding of random bytes and digests
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for the signed cookie value
)

// SessionToken is what ends up in the client's cookie.  The Raw field holds
// the signed token string; SID is the server-side session id it carries and
// Exp when the session expires.  The database only ever sees a SHA‑256 hash
// of SID, so neither a stolen cookie jar dump nor a database dump alone is
// enough to take over a session.
type SessionToken struct {
    Raw string    // signed cookie value
    SID string    // raw session id embedded in the token
    Exp time.Time // UTC expiration time
}

// ErrBadSessionToken is returned when a cookie value does not parse into a
// valid, unexpired session token signed with our secret.
var ErrBadSessionToken = errors.New("invalid session token")

// NewSessionToken creates a fresh session id and wraps it in an HS256 JWT
// signed with the session secret.  The signature plays the role the cookie
// signature plays in cookie-session middlewares: a tampered cookie fails
// verification before we ever touch the database.
func NewSessionToken(secret string, ttlHours int) (SessionToken, error) {
    sid, err := randomHex(32) // 32 bytes -> 64 hex chars
    if err != nil {
        return SessionToken{}, err
    }
    exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
    claims := jwt.MapClaims{
        "sid": sid,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Raw: signed, SID: sid, Exp: exp}, nil
}

// ParseSessionToken verifies a cookie value and returns the session id it
// carries.  Expired or tampered tokens come back as ErrBadSessionToken.
func ParseSessionToken(secret, raw string) (string, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrBadSessionToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return "", ErrBadSessionToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", ErrBadSessionToken
    }
    sid, ok := claims["sid"].(string)
    if !ok || sid == "" {
        return "", ErrBadSessionToken
    }
    return sid, nil
}

// HashSessionID returns the SHA‑256 hash of a raw session id as a hex
// string.  Only the hash is stored in the sessions table.
func HashSessionID(sid string) string {
    sum := sha256.Sum256([]byte(sid))
    return hex.EncodeToString(sum[:])
}

// randomHex returns a hex‑encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}

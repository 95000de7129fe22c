package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 24)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Raw)
	assert.Len(t, tok.SID, 64) // 32 random bytes, hex encoded
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), tok.Exp, time.Minute)

	sid, err := ParseSessionToken(testSecret, tok.Raw)
	require.NoError(t, err)
	assert.Equal(t, tok.SID, sid)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 24)
	require.NoError(t, err)

	_, err = ParseSessionToken("other-secret", tok.Raw)
	assert.ErrorIs(t, err, ErrBadSessionToken)
}

func TestParseSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrBadSessionToken)
}

func TestParseSessionTokenTampered(t *testing.T) {
	tok, err := NewSessionToken(testSecret, 24)
	require.NoError(t, err)

	raw := []byte(tok.Raw)
	raw[len(raw)-1] ^= 0x01
	_, err = ParseSessionToken(testSecret, string(raw))
	assert.ErrorIs(t, err, ErrBadSessionToken)
}

func TestHashSessionIDStable(t *testing.T) {
	h1 := HashSessionID("abc")
	h2 := HashSessionID("abc")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashSessionID("abd"))
}

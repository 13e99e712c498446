package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := signToken(testSecret, "session-123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	sid, err := parseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "session-123", sid)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := signToken(testSecret, "session-123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = parseToken([]byte("other-secret"), token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := signToken(testSecret, "session-123", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = parseToken(testSecret, token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := parseToken(testSecret, token)
		assert.Error(t, err, "token %q", token)
	}
}

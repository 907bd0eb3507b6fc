package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIssuer_MissingSecret(t *testing.T) {
	t.Parallel()

	_, err := NewIssuer("", time.Minute)
	require.ErrorIs(t, err, ErrMissingSecret)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer("test-secret", 15*time.Minute)
	require.NoError(t, err)

	userID := uuid.New()
	signed, err := issuer.IssueAccessToken(userID, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := issuer.VerifyAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer("test-secret", -time.Second)
	require.NoError(t, err)

	signed, err := issuer.IssueAccessToken(uuid.New(), "bob")
	require.NoError(t, err)

	_, err = issuer.VerifyAccessToken(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	right, err := NewIssuer("right-secret", time.Minute)
	require.NoError(t, err)
	wrong, err := NewIssuer("wrong-secret", time.Minute)
	require.NoError(t, err)

	signed, err := right.IssueAccessToken(uuid.New(), "carol")
	require.NoError(t, err)

	_, err = wrong.VerifyAccessToken(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAccessToken_Malformed(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer("k", time.Minute)
	require.NoError(t, err)

	_, err = issuer.VerifyAccessToken("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewRefreshToken_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewRefreshToken()
		require.NoError(t, err)
		require.NotEmpty(t, tok)
		require.False(t, seen[tok], "duplicate refresh token generated")
		seen[tok] = true
	}
}

func TestHash_StableAndDistinct(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Hash("abc"), Hash("abc"))
	assert.NotEqual(t, Hash("abc"), Hash("abd"))
	assert.Len(t, Hash("abc"), 64)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("alice", "shop-a", "secret", time.Hour, time.Now())
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "shop-a", claims.RouteName)
}

func TestValidateToken_Rejects(t *testing.T) {
	token, err := GenerateAccessToken("alice", "all", "secret", time.Hour, time.Now())
	require.NoError(t, err)

	_, err = ValidateToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, err := GenerateAccessToken("alice", "all", "secret", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateToken("not-a-jwt", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 60)

	token, err := m.GenerateAccessToken("editor", "Editorial Desk")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.EditorID)
	assert.Equal(t, "Editorial Desk", claims.Name)
	assert.Equal(t, "access", claims.Type)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	m := NewManager("test-secret", 60)
	other := NewManager("different-secret", 60)

	token, err := m.GenerateAccessToken("editor", "Editorial Desk")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -1)

	token, err := m.GenerateAccessToken("editor", "Editorial Desk")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", 60)

	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}

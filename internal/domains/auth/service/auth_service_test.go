package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"collections-backend/internal/config"
	"collections-backend/internal/domains/auth/model"
	"collections-backend/pkg/jwt"
)

func newTestService(t *testing.T, password string) ServiceInterface {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	editor := config.EditorConfig{
		ID:           "editor",
		Name:         "Editorial Desk",
		PasswordHash: string(hash),
	}

	return NewAuthService(editor, jwt.NewManager("test-secret", 60), 60)
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService(t, "correct horse")

	resp, err := svc.Login(context.Background(), model.LoginRequest{
		Name:     "Editorial Desk",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
}

func TestLoginAcceptsEditorID(t *testing.T) {
	svc := newTestService(t, "correct horse")

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Name:     "editor",
		Password: "correct horse",
	})
	assert.NoError(t, err)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t, "correct horse")

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Name:     "Editorial Desk",
		Password: "battery staple",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	svc := newTestService(t, "correct horse")

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Name:     "intruder",
		Password: "correct horse",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	svc := newTestService(t, "correct horse")

	_, err := svc.Login(context.Background(), model.LoginRequest{})
	assert.Error(t, err)
}

func TestLoginRejectsWhenNoHashConfigured(t *testing.T) {
	svc := NewAuthService(config.EditorConfig{ID: "editor", Name: "Editorial Desk"}, jwt.NewManager("s", 60), 60)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Name:     "editor",
		Password: "anything",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"collections-backend/internal/config"
	"collections-backend/internal/domains/auth/model"
	"collections-backend/pkg/jwt"
	"collections-backend/pkg/logger"
)

type ServiceInterface interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
}

// authService authenticates the single editorial login against the
// bcrypt hash from configuration and issues JWT access tokens.
type authService struct {
	editor     config.EditorConfig
	jwtManager *jwt.Manager
	expiry     int // minutes
}

func NewAuthService(editor config.EditorConfig, jwtManager *jwt.Manager, accessExpiryMinutes int) ServiceInterface {
	return &authService{
		editor:     editor,
		jwtManager: jwtManager,
		expiry:     accessExpiryMinutes,
	}
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Name != s.editor.Name && req.Name != s.editor.ID {
		return nil, model.ErrInvalidCredentials
	}
	if s.editor.PasswordHash == "" {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.editor.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(s.editor.ID, s.editor.Name)
	if err != nil {
		logger.Error("failed to sign access token", err)
		return nil, err
	}

	logger.Info("editor logged in", map[string]interface{}{
		"editor_id": s.editor.ID,
	})

	return &model.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.expiry * 60,
	}, nil
}

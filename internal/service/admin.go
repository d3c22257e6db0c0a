package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/pkg/auth"
	"github.com/offroad-club/backend/pkg/hash"
)

type adminService struct {
	config       config.AdminConfig
	hasher       hash.PasswordHasher
	tokenManager auth.TokenManager
}

func newAdminService(
	config config.AdminConfig,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
) *adminService {
	return &adminService{
		config:       config,
		hasher:       hasher,
		tokenManager: tokenManager,
	}
}

type Tokens struct {
	AccessToken string
	AccessTTL   time.Duration
}

func (s *adminService) Login(_ context.Context, email string, password string) (*Tokens, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.config.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(passwordHash), []byte(s.config.PasswordHash)) == 1
	if !emailOK || !passwordOK {
		return nil, ErrInvalidCredentials
	}

	accessToken, ttl, err := s.tokenManager.NewJWT(email)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	return &Tokens{AccessToken: accessToken, AccessTTL: ttl}, nil
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/offroad-club/backend/internal/config"
	"github.com/offroad-club/backend/pkg/auth"
	"github.com/offroad-club/backend/pkg/hash"
)

func newTestAdminService(t *testing.T, email, password string) *adminService {
	t.Helper()

	hasher := hash.NewSHA256Hasher("test-salt")
	passwordHash, err := hasher.Hash(password)
	require.NoError(t, err)

	tokenManager, err := auth.NewManager(config.JWTConfig{
		SigningKey:     "test-signing-key",
		AccessTokenTTL: time.Minute,
	})
	require.NoError(t, err)

	return newAdminService(config.AdminConfig{
		Email:        email,
		PasswordHash: passwordHash,
		PasswordSalt: "test-salt",
	}, hasher, tokenManager)
}

func TestAdminLogin_ValidCredentials(t *testing.T) {
	s := newTestAdminService(t, "admin@club.example", "correct horse")

	tokens, err := s.Login(context.Background(), "admin@club.example", "correct horse")

	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, time.Minute, tokens.AccessTTL)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	s := newTestAdminService(t, "admin@club.example", "correct horse")

	_, err := s.Login(context.Background(), "admin@club.example", "battery staple")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLogin_WrongEmail(t *testing.T) {
	s := newTestAdminService(t, "admin@club.example", "correct horse")

	_, err := s.Login(context.Background(), "intruder@club.example", "correct horse")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

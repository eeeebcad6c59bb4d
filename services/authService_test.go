package services

import (
	"SaudeSync/cache"
	"SaudeSync/repositories"
	"SaudeSync/utils"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSymmetricKey = "0123456789abcdef0123456789abcdef"

func newTestAuthService(t *testing.T) (*authService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	c, err := cache.NewCache(client)
	require.NoError(t, err)
	tokens, err := utils.NewTokenMaker([]byte(testSymmetricKey))
	require.NoError(t, err)
	return NewAuthService(repositories.NewSessionRepository(c), tokens, zap.NewNop()).(*authService), mr
}

func TestAuthService_SignInValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		email, password, want string
	}{
		{"", "secret", "Email e senha são obrigatórios"},
		{"ana@example.com", "", "Email e senha são obrigatórios"},
		{"ana-at-example", "secret", "Email inválido"},
		{"ana@example.com", "ab", "Senha deve ter pelo menos 3 caracteres"},
	}
	for _, tt := range tests {
		_, err := svc.SignInWithPassword(ctx, tt.email, tt.password)
		require.Error(t, err)
		assert.Equal(t, tt.want, err.Error())
	}
}

func TestAuthService_SignInCreatesSession(t *testing.T) {
	svc, mr := newTestAuthService(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	session, err := svc.SignInWithPassword(ctx, "maria.silva@example.com", "abc")
	require.NoError(t, err)

	assert.Equal(t, "mock-user-1792411200000", session.User.ID)
	assert.Equal(t, "maria.silva", session.User.UserMetadata.Name)
	assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed=maria.silva@example.com", session.User.UserMetadata.AvatarURL)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, int64(3600), session.ExpiresIn)
	assert.True(t, strings.HasPrefix(session.AccessToken, "v2.local."))
	assert.True(t, strings.HasPrefix(session.RefreshToken, "mock-refresh-"))
	assert.True(t, mr.Exists("saudesync:auth:session:"+session.User.ID))

	stored, err := svc.GetSession(ctx, session.User.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, session.AccessToken, stored.AccessToken)
}

func TestAuthService_AuthenticateAndSignOut(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.SignInWithPassword(ctx, "joao@example.com", "1234")
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, got.User.ID)

	_, err = svc.Authenticate(ctx, "v2.local.garbage")
	assert.Error(t, err)

	require.NoError(t, svc.SignOut(ctx, session.User.ID))
	_, err = svc.Authenticate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	gone, err := svc.GetSession(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAuthService_GetSessionHonoursExpiry(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.SignInWithPassword(ctx, "joao@example.com", "1234")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	got, err := svc.GetSession(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

package services

import (
	"SaudeSync/models"
	"SaudeSync/repositories"
	"SaudeSync/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	SessionExpiry   = utils.SessionTokenExpiry
	avatarURLFormat = "https://api.dicebear.com/7.x/avataaars/svg?seed=%s"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// AuthService is the mock authentication provider. It accepts any well-formed credentials
// and is not a security boundary.
type AuthService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, userID string) error
	GetSession(ctx context.Context, userID string) (*models.Session, error)
	Authenticate(ctx context.Context, accessToken string) (*models.Session, error)
}

type authService struct {
	sessions *repositories.SessionRepository
	tokens   *utils.TokenMaker
	now      func() time.Time
	log      *zap.Logger
}

func NewAuthService(sessions *repositories.SessionRepository, tokens *utils.TokenMaker, log *zap.Logger) AuthService {
	return &authService{sessions: sessions, tokens: tokens, now: time.Now, log: log}
}

func (s *authService) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if authErr := utils.ValidateCredentials(email, password); authErr != nil {
		return nil, authErr
	}

	now := s.now()
	user := models.User{
		ID:               fmt.Sprintf("mock-user-%d", now.UnixMilli()),
		Aud:              "authenticated",
		Email:            email,
		EmailConfirmedAt: &now,
		CreatedAt:        now,
		UpdatedAt:        now,
		UserMetadata: models.UserMetadata{
			Name:      strings.SplitN(email, "@", 2)[0],
			AvatarURL: fmt.Sprintf(avatarURLFormat, email),
		},
		AppMetadata: map[string]any{},
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, user.Email, SessionExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	session := &models.Session{
		AccessToken:  accessToken,
		RefreshToken: fmt.Sprintf("mock-refresh-%d", now.UnixMilli()),
		ExpiresIn:    int64(SessionExpiry.Seconds()),
		ExpiresAt:    expiresAt.UnixMilli(),
		TokenType:    "bearer",
		User:         user,
	}
	if err := s.sessions.Save(ctx, *session, SessionExpiry); err != nil {
		return nil, err
	}

	s.log.Info("User signed in", zap.String("user_id", user.ID))
	return session, nil
}

func (s *authService) SignOut(ctx context.Context, userID string) error {
	if err := s.sessions.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.log.Info("User signed out", zap.String("user_id", userID))
	return nil
}

// GetSession returns nil when the user has no live session.
func (s *authService) GetSession(ctx context.Context, userID string) (*models.Session, error) {
	session, err := s.sessions.Get(ctx, userID)
	if err != nil || session == nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, nil
	}
	return session, nil
}

// Authenticate resolves an access token to its stored session. Tokens of signed-out
// sessions are rejected.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*models.Session, error) {
	claims, err := s.tokens.ValidateToken(accessToken)
	if err != nil {
		return nil, err
	}
	session, err := s.GetSession(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.AccessToken != accessToken {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

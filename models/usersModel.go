package models

import (
	"time"
)

// UserMetadata holds profile fields shown by the client.
type UserMetadata struct {
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// User is the mock-authenticated patient.
type User struct {
	ID               string         `json:"id"`
	Aud              string         `json:"aud"`
	Email            string         `json:"email"`
	EmailConfirmedAt *time.Time     `json:"email_confirmed_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	UserMetadata     UserMetadata   `json:"user_metadata"`
	AppMetadata      map[string]any `json:"app_metadata"`
}

// Session mirrors the shape the web client expects from its auth provider.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"` // unix milliseconds
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}

// Expired reports whether the session is no longer valid at now.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt != 0 && s.ExpiresAt < now.UnixMilli()
}

// AuthError is returned by the mock auth provider for rejected credentials.
type AuthError struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

func (e *AuthError) Error() string {
	return e.Message
}

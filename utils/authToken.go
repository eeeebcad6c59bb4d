package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

// SessionTokenExpiry is how long a mock-auth session token stays valid.
const SessionTokenExpiry = time.Hour

var (
	ErrInvalidSymmetricKey = errors.New("symmetric key must be 32 bytes long")
	ErrTokenExpired        = errors.New("token expired")
)

// TokenClaims struct represents the data in the token (UserID, Email, Expiry).
type TokenClaims struct {
	UserID string    `json:"userId"`
	Email  string    `json:"email"`
	Expiry time.Time `json:"expiry"`
}

// TokenMaker issues and checks PASETO v2 local tokens.
type TokenMaker struct {
	key    []byte
	paseto *paseto.V2
	now    func() time.Time
}

func NewTokenMaker(symmetricKey []byte) (*TokenMaker, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSymmetricKey, len(symmetricKey))
	}
	return &TokenMaker{key: symmetricKey, paseto: paseto.NewV2(), now: time.Now}, nil
}

// GenerateAccessToken returns a token for the user and the instant it expires.
func (m *TokenMaker) GenerateAccessToken(userID, email string, expiry time.Duration) (string, time.Time, error) {
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		Expiry: m.now().Add(expiry),
	}

	token, err := m.paseto.Encrypt(m.key, claims, nil)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, claims.Expiry, nil
}

// ValidateToken decrypts the token and checks its expiry.
func (m *TokenMaker) ValidateToken(tokenString string) (*TokenClaims, error) {
	var claims TokenClaims
	if err := m.paseto.Decrypt(tokenString, m.key, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}

	if m.now().After(claims.Expiry) {
		return nil, ErrTokenExpired
	}
	return &claims, nil
}

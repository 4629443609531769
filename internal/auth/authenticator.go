// Package auth provides credential checks and signed session cookies for
// the dashboard. Credentials are supplied by configuration; nothing here
// embeds a user account.
package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
)

var (
	ErrMissingCredentials = errors.New("missing email or password")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Authenticator verifies a user's credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (core.User, error)
}

// BcryptAuthenticator checks credentials against a single configured
// account whose password is stored as a bcrypt hash.
type BcryptAuthenticator struct {
	email        string
	passwordHash []byte
}

func NewBcryptAuthenticator(email, passwordHash string) *BcryptAuthenticator {
	return &BcryptAuthenticator{
		email:        strings.TrimSpace(email),
		passwordHash: []byte(passwordHash),
	}
}

func (a *BcryptAuthenticator) Authenticate(_ context.Context, email, password string) (core.User, error) {
	if email == "" || password == "" {
		return core.User{}, ErrMissingCredentials
	}
	if a.email == "" || len(a.passwordHash) == 0 {
		return core.User{}, ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(email), a.email) {
		// Run a comparison anyway so unknown emails cost the same as bad passwords.
		_ = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
		return core.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return core.User{}, ErrInvalidCredentials
	}
	return core.User{Email: a.email}, nil
}

// HashPassword returns a bcrypt hash suitable for DEMO_USER_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/Markdcoder/mobile-fintech-dashboard/internal/core"
)

const SessionCookieName = "dashboard_session"

var ErrInvalidSession = errors.New("invalid session")

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256-signed session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for user.
func (m *SessionManager) Issue(user core.User) (string, error) {
	now := m.now()
	claims := sessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the user it was issued for.
func (m *SessionManager) Verify(token string) (core.User, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return core.User{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(m.now()) {
		return core.User{}, fmt.Errorf("%w: expired", ErrInvalidSession)
	}
	if claims.Email == "" {
		return core.User{}, fmt.Errorf("%w: missing email", ErrInvalidSession)
	}
	return core.User{Email: claims.Email}, nil
}

// SetCookie writes the session cookie for user.
func (m *SessionManager) SetCookie(w http.ResponseWriter, r *http.Request, user core.User) error {
	token, err := m.Issue(user)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  m.now().Add(m.ttl),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *SessionManager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest returns the signed-in user, if any.
func (m *SessionManager) FromRequest(r *http.Request) (core.User, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return core.User{}, false
	}
	user, err := m.Verify(c.Value)
	if err != nil {
		return core.User{}, false
	}
	return user, true
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/torvix-arena/models"
	"github.com/Dosada05/torvix-arena/utils"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid session token")
	ErrSessionEnded = errors.New("session has ended")
)

// UserLoader resolves the current profile for a token subject.
type UserLoader interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret  []byte
	ttl     time.Duration
	users   UserLoader
	revoked *utils.Cache
	now     func() time.Time
}

func NewManager(secret string, ttl time.Duration, users UserLoader) *Manager {
	return &Manager{
		secret:  []byte(secret),
		ttl:     ttl,
		users:   users,
		revoked: utils.NewCache(),
		now:     time.Now,
	}
}

// Begin issues a signed token for user.
func (m *Manager) Begin(user *models.User) (*Session, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)
	c := claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// Resume validates the token and reloads the user it belongs to.
func (m *Manager) Resume(ctx context.Context, token string) (*Session, error) {
	c, err := m.parse(token)
	if err != nil {
		return nil, err
	}
	if _, revoked := m.revoked.Get(c.ID); revoked {
		return nil, ErrSessionEnded
	}
	user, err := m.users.GetUser(ctx, c.UserID)
	if err != nil {
		return nil, fmt.Errorf("resume session for %s: %w", c.UserID, err)
	}
	return &Session{User: user, Token: token, ExpiresAt: c.ExpiresAt.Time}, nil
}

// End revokes the token until it would have expired anyway.
func (m *Manager) End(token string) error {
	c, err := m.parse(token)
	if err != nil {
		return err
	}
	m.revoked.Set(c.ID, struct{}{}, c.ExpiresAt.Time.Sub(m.now()))
	m.revoked.Sweep()
	return nil
}

func (m *Manager) parse(token string) (*claims, error) {
	c := &claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.UserID == "" || c.ID == "" || c.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing claims", ErrInvalidToken)
	}
	return c, nil
}

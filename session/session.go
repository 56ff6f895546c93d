// Package session verifies identity tokens and keeps the signed-in user's session in memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
)

var (
	ErrInvalidToken = errors.New("invalid or expired identity token")
	ErrNoSession    = errors.New("session not found or expired")
)

// Claims are the identity token fields issued by the auth provider
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Theme is the UI theme applied for the session
type Theme struct {
	PrimaryColor string `json:"primaryColor"`
	Mode         string `json:"mode"`
}

// Session is a signed-in user
type Session struct {
	ID        string      `json:"id"`
	User      models.User `json:"user"`
	Theme     Theme       `json:"theme"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// IsAdmin reports whether the session's user has the admin role
func (s *Session) IsAdmin() bool {
	return s != nil && s.User.Role == models.RoleAdmin
}

// Manager verifies identity tokens and keeps the resulting sessions
type Manager struct {
	secret   []byte
	users    repository.UserRepositoryInterface
	settings repository.SettingsRepositoryInterface
	clock    clock.Clock

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a new Manager
func NewManager(
	secret []byte,
	users repository.UserRepositoryInterface,
	settings repository.SettingsRepositoryInterface,
	clk clock.Clock,
) *Manager {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Manager{
		secret:   secret,
		users:    users,
		settings: settings,
		clock:    clk,
		sessions: make(map[string]*Session),
	}
}

// Start verifies token, loads or creates the user and opens a session that lives as long
// as the token does.
func (m *Manager) Start(ctx context.Context, token string) (*Session, error) {
	claims, err := m.verify(token)
	if err != nil {
		log.Printf("⚠️  Session.Start: %v", err)
		return nil, ErrInvalidToken
	}

	role := models.RoleGuest
	if claims.Role == models.RoleAdmin {
		role = models.RoleAdmin
	}
	user := &models.User{
		ID:        claims.UserID,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      role,
		CreatedAt: m.clock.Now(),
	}
	if err := m.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	theme := Theme{}
	settings := models.DefaultSettings()
	if m.settings != nil {
		if stored, err := m.settings.Get(ctx); err == nil {
			settings = *stored
		} else {
			log.Printf("⚠️  Session.Start: using default theme: %v", err)
		}
	}
	theme.PrimaryColor, theme.Mode = settings.PrimaryColor, settings.ThemeMode

	s := &Session{
		ID:        uuid.NewString(),
		User:      *user,
		Theme:     theme,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("✅ Session.Start: user=%s role=%s session=%s", user.ID, user.Role, s.ID)
	return s, nil
}

// Get returns the session for id. Expired sessions are dropped.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNoSession
	}
	if !m.clock.Now().Before(s.ExpiresAt) {
		delete(m.sessions, id)
		return nil, ErrNoSession
	}
	copied := *s
	return &copied, nil
}

// End clears the session. Ending an unknown session is not an error.
func (m *Manager) End(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Sweep drops expired sessions and returns how many were removed
func (m *Manager) Sweep() int {
	now := m.clock.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, s := range m.sessions {
		if !now.Before(s.ExpiresAt) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *Manager) verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.clock.Now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" || claims.Email == "" {
		return nil, fmt.Errorf("token has no user")
	}
	return claims, nil
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by WithSession
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

var secret = []byte("test-secret")

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

type fakeUsers struct{ users map[string]models.User }

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) Upsert(ctx context.Context, u *models.User) error {
	if existing, ok := f.users[u.ID]; ok {
		u.Role, u.CreatedAt = existing.Role, existing.CreatedAt
	}
	f.users[u.ID] = *u
	return nil
}

type fakeSettings struct{}

func (fakeSettings) Get(ctx context.Context) (*models.PropertySettings, error) {
	s := models.DefaultSettings()
	s.ThemeMode = "dark"
	return &s, nil
}

func (fakeSettings) Save(ctx context.Context, s *models.PropertySettings) error { return nil }

func sign(t *testing.T, key any, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func guestClaims(now time.Time) Claims {
	return Claims{
		UserID: "u1",
		Email:  "ana@example.com",
		Name:   "Ana",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func newTestManager() (*Manager, *manualClock, *fakeUsers) {
	clk := &manualClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	users := &fakeUsers{users: map[string]models.User{}}
	return NewManager(secret, users, fakeSettings{}, clk), clk, users
}

func TestStartGetEnd(t *testing.T) {
	m, _, users := newTestManager()
	ctx := context.Background()

	s, err := m.Start(ctx, sign(t, secret, jwt.SigningMethodHS256, guestClaims(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))))
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.User.Role != models.RoleGuest || s.Theme.Mode != "dark" || s.IsAdmin() {
		t.Errorf("session = %+v", s)
	}
	if _, ok := users.users["u1"]; !ok {
		t.Error("user not created")
	}

	got, err := m.Get(s.ID)
	if err != nil || got.User.Email != "ana@example.com" {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	m.End(s.ID)
	if _, err := m.Get(s.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("after End: %v", err)
	}
}

func TestStoredRoleWins(t *testing.T) {
	m, clk, users := newTestManager()
	users.users["u1"] = models.User{ID: "u1", Role: models.RoleAdmin}

	s, err := m.Start(context.Background(), sign(t, secret, jwt.SigningMethodHS256, guestClaims(clk.now)))
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsAdmin() {
		t.Errorf("role = %s", s.User.Role)
	}
}

func TestStartRejectsBadTokens(t *testing.T) {
	m, clk, _ := newTestManager()
	expired := guestClaims(clk.now.Add(-2 * time.Hour))
	noUser := guestClaims(clk.now)
	noUser.UserID, noUser.Email = "", ""

	tests := map[string]string{
		"garbage":     "not.a.token",
		"wrong key":   sign(t, []byte("other"), jwt.SigningMethodHS256, guestClaims(clk.now)),
		"expired":     sign(t, secret, jwt.SigningMethodHS256, expired),
		"no user":     sign(t, secret, jwt.SigningMethodHS256, noUser),
		"unsigned":    sign(t, jwt.UnsafeAllowNoneSignatureType, jwt.SigningMethodNone, guestClaims(clk.now)),
		"empty token": "",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Start(context.Background(), tok); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestSessionExpires(t *testing.T) {
	m, clk, _ := newTestManager()
	s, err := m.Start(context.Background(), sign(t, secret, jwt.SigningMethodHS256, guestClaims(clk.now)))
	if err != nil {
		t.Fatal(err)
	}

	clk.now = clk.now.Add(30 * time.Minute)
	if n := m.Sweep(); n != 0 {
		t.Errorf("swept %d live sessions", n)
	}

	clk.now = clk.now.Add(time.Hour)
	if _, err := m.Get(s.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("expired session still readable: %v", err)
	}
}

func TestContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("empty context has a session")
	}
	s := &Session{ID: "x"}
	got, ok := FromContext(WithSession(context.Background(), s))
	if !ok || got.ID != "x" {
		t.Errorf("got %+v", got)
	}
}

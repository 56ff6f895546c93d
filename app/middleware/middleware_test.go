package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/session"
)

func TestRequestLogger_LogsStatusAndPath(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := log.New(buf, "", 0)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
	rec := httptest.NewRecorder()

	RequestLogger(handler, logger).ServeHTTP(rec, req)

	out := buf.String()
	for _, want := range []string{"method=GET", "path=/rooms", "status=201"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log, got %q", want, out)
		}
	}
}

func TestRequestLogger_KeepsFlusher(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if err := http.NewResponseController(w).Flush(); err != nil {
			t.Errorf("flush through recorder: %v", err)
		}
	})
	RequestLogger(handler, log.New(&bytes.Buffer{}, "", 0)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalog/stream", nil))
}

func TestCORS(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := CORS([]string{"http://localhost:5173"}, next)

	tests := []struct {
		name       string
		origin     string
		preflight  bool
		wantStatus int
		wantAllow  string
	}{
		{name: "no origin", wantStatus: http.StatusOK},
		{name: "allowed", origin: "http://localhost:5173", wantStatus: http.StatusOK, wantAllow: "http://localhost:5173"},
		{name: "allowed preflight", origin: "http://localhost:5173", preflight: true, wantStatus: http.StatusNoContent, wantAllow: "http://localhost:5173"},
		{name: "denied preflight", origin: "http://evil.test", preflight: true, wantStatus: http.StatusForbidden},
		{name: "denied simple", origin: "http://evil.test", wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := http.MethodGet
			if tt.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "/rooms", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("allow origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

type fakeSessions map[string]*session.Session

func (f fakeSessions) Get(id string) (*session.Session, error) {
	s, ok := f[id]
	if !ok {
		return nil, session.ErrNoSession
	}
	return s, nil
}

func TestRequireSessionAndAdmin(t *testing.T) {
	t.Parallel()

	store := fakeSessions{
		"guest": {ID: "guest", User: models.User{ID: "u1", Role: models.RoleGuest}, ExpiresAt: time.Now().Add(time.Hour)},
		"admin": {ID: "admin", User: models.User{ID: "u2", Role: models.RoleAdmin}, ExpiresAt: time.Now().Add(time.Hour)},
	}
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.FromContext(r.Context())
		seen = s.User.ID
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name    string
		handler http.Handler
		header  string
		want    int
	}{
		{"no header", RequireSession(store, next), "", http.StatusUnauthorized},
		{"unknown session", RequireSession(store, next), "nope", http.StatusUnauthorized},
		{"guest session", RequireSession(store, next), "guest", http.StatusOK},
		{"guest on admin route", RequireAdmin(store, next), "guest", http.StatusForbidden},
		{"admin on admin route", RequireAdmin(store, next), "admin", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/admin/payments", nil)
		if tt.header != "" {
			req.Header.Set(SessionHeader, tt.header)
		}
		rec := httptest.NewRecorder()
		tt.handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, rec.Code, tt.want)
		}
	}
	if seen != "u2" {
		t.Errorf("last handler saw user %q", seen)
	}
}

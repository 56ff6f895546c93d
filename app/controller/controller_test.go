package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/session"
)

var fixedNow = time.Date(2024, 4, 20, 15, 0, 0, 0, time.UTC)

type fakeRooms struct {
	mu    sync.Mutex
	rooms map[string]models.Room
}

func newFakeRooms(rooms ...models.Room) *fakeRooms {
	f := &fakeRooms{rooms: make(map[string]models.Room)}
	for _, r := range rooms {
		f.rooms[r.ID] = r
	}
	return f
}

func (f *fakeRooms) List(ctx context.Context, status string) ([]models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Room{}
	for _, r := range f.rooms {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRooms) GetByID(ctx context.Context, id string) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &r, nil
}

func (f *fakeRooms) Create(ctx context.Context, room *models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rooms[room.ID] = *room
	return nil
}

func (f *fakeRooms) Update(ctx context.Context, room *models.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[room.ID]; !ok {
		return models.ErrNotFound
	}
	f.rooms[room.ID] = *room
	return nil
}

func (f *fakeRooms) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rooms[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeRooms) SetImage(ctx context.Context, id, url, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rooms[id]
	if !ok {
		return "", models.ErrNotFound
	}
	prev := r.ImagePath
	r.ImageURL, r.ImagePath = url, path
	f.rooms[id] = r
	return prev, nil
}

type fakeServices struct {
	mu       sync.Mutex
	services map[string]models.ExtraService
}

func newFakeServices(services ...models.ExtraService) *fakeServices {
	f := &fakeServices{services: make(map[string]models.ExtraService)}
	for _, s := range services {
		f.services[s.ID] = s
	}
	return f
}

func (f *fakeServices) List(ctx context.Context, activeOnly bool) ([]models.ExtraService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.ExtraService{}
	for _, s := range f.services {
		if !activeOnly || s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeServices) GetByID(ctx context.Context, id string) (*models.ExtraService, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &s, nil
}

func (f *fakeServices) Create(ctx context.Context, svc *models.ExtraService) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.services[svc.ID] = *svc
	return nil
}

func (f *fakeServices) Update(ctx context.Context, svc *models.ExtraService) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.services[svc.ID]; !ok {
		return models.ErrNotFound
	}
	f.services[svc.ID] = *svc
	return nil
}

func (f *fakeServices) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.services, id)
	return nil
}

func (f *fakeServices) SetImage(ctx context.Context, id, url, path string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.services[id]
	if !ok {
		return "", models.ErrNotFound
	}
	prev := s.ImagePath
	s.ImageURL, s.ImagePath = url, path
	f.services[id] = s
	return prev, nil
}

func guestSession(userID string) *session.Session {
	return &session.Session{
		ID:        "sess-" + userID,
		User:      models.User{ID: userID, Name: "Ana", Email: userID + "@example.com", Role: models.RoleGuest},
		ExpiresAt: fixedNow.Add(time.Hour),
	}
}

// serve routes one request through a mux holding pattern -> h, with s as the signed-in session
func serve(t *testing.T, pattern string, h http.HandlerFunc, method, path string, body any, s *session.Session) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s != nil {
		req = req.WithContext(session.WithSession(req.Context(), s))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	if got := decode[errorBody](t, rec); got.Code != code {
		t.Fatalf("expected code %q, got %q (%s)", code, got.Code, got.Error)
	}
}

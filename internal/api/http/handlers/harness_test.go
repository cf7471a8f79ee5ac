package handlers_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/timeclock-service/internal/api/http"
	"github.com/spec-kit/timeclock-service/internal/api/http/handlers"
	"github.com/spec-kit/timeclock-service/internal/auth"
	"github.com/spec-kit/timeclock-service/internal/config"
	"github.com/spec-kit/timeclock-service/internal/domain"
	"github.com/spec-kit/timeclock-service/internal/events"
	"github.com/spec-kit/timeclock-service/internal/observability"
	"github.com/spec-kit/timeclock-service/internal/repository"
	"github.com/spec-kit/timeclock-service/internal/service"
	"github.com/spec-kit/timeclock-service/internal/session"
	"github.com/spec-kit/timeclock-service/internal/worker"
)

const cookieName = "timeclock_session"

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Username == user.Username {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	clone := *user
	*stored = clone
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, user := range r.users {
		if filter.IsAdmin != nil && user.IsAdmin != *filter.IsAdmin {
			continue
		}
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

type memClockRepo struct {
	mu        sync.Mutex
	clockRows []domain.ClockEvent
	users     *memUserRepo
}

func (r *memClockRepo) Create(_ context.Context, event *domain.ClockEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = uuid.NewString()
	clone := *event
	r.clockRows = append(r.clockRows, clone)
	return nil
}

func (r *memClockRepo) ListByUser(_ context.Context, userID string) ([]domain.ClockEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ClockEvent
	for i := len(r.clockRows) - 1; i >= 0; i-- {
		if r.clockRows[i].UserID == userID {
			result = append(result, r.clockRows[i])
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (r *memClockRepo) ListAll(_ context.Context) ([]domain.ClockEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.ClockEvent, 0, len(r.clockRows))
	for i := len(r.clockRows) - 1; i >= 0; i-- {
		event := r.clockRows[i]
		if user, err := r.users.GetByID(context.Background(), event.UserID); err == nil {
			event.Username = user.Username
		}
		result = append(result, event)
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(rows []domain.ClockEvent) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].RecordedAt.After(rows[j].RecordedAt)
	})
}

type memSessionStore struct {
	mu       sync.Mutex
	bindings map[string]string
}

func (s *memSessionStore) Establish(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sessionID := uuid.NewString()
	s.bindings[sessionID] = userID
	return sessionID, nil
}

func (s *memSessionStore) Resolve(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.bindings[sessionID]
	if !ok {
		return "", session.ErrNotFound
	}
	return userID, nil
}

func (s *memSessionStore) Destroy(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bindings, sessionID)
	return nil
}

type testEnv struct {
	app     *fiber.App
	users   *memUserRepo
	metrics *observability.Metrics
}

func newTestApp(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		Auth:    config.AuthConfig{BcryptCost: 4},
		Session: config.SessionConfig{Secret: "test-secret", CookieName: cookieName, TTLMinutes: 60},
	}
	logger := zap.NewNop()

	users := newMemUserRepo()
	clocks := &memClockRepo{users: users}
	store := &memSessionStore{bindings: make(map[string]string)}

	sessions := session.NewManager(store, session.NewCookieCodec(cfg.Session.Secret, cfg.Session.TTL()))
	gate := auth.NewGate(sessions, users, cfg.Session.CookieName, logger)

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(cfg, users)
	clockService := service.NewClockService(clocks, dispatcher)
	staffService := service.NewStaffService(cfg, users, dispatcher, logger)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{Immutable: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler("timeclock-service", "test", nil, nil),
		Auth:    handlers.NewAuthHandler(authService, gate),
		Clock:   handlers.NewClockHandler(clockService),
		Profile: handlers.NewProfileHandler(staffService),
		Admin:   handlers.NewAdminHandler(staffService),
		Gate:    gate,
	})

	return &testEnv{app: app, users: users, metrics: metrics}
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, sessionCookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	if sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sessionCookie})
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path, sessionCookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: sessionCookie})
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

// register creates an account and signs it in, returning the session cookie.
func (e *testEnv) register(t *testing.T, username, password string, isAdmin bool) string {
	t.Helper()
	registerPath, loginPath := "/register", "/login"
	if isAdmin {
		registerPath, loginPath = "/admin_register", "/admin_login"
	}

	form := url.Values{"username": {username}, "password": {password}}
	resp := e.postForm(t, registerPath, form, "")
	require.Equal(t, http.StatusFound, resp.StatusCode)

	resp = e.postForm(t, loginPath, form, "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	return sessionCookieValue(t, resp)
}

func sessionCookieValue(t *testing.T, resp *http.Response) string {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == cookieName {
			return cookie.Value
		}
	}
	t.Fatal("no session cookie in response")
	return ""
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

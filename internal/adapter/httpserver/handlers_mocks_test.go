package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/metrics"
	"github.com/Bhanuvikas1/job-tracker/internal/app"
	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	"github.com/Bhanuvikas1/job-tracker/internal/platform/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// --- Mock implementations ---

type mockApplicationService struct {
	createFn       func(ctx context.Context, ownerID uuid.UUID, draft domain.ApplicationDraft) (*domain.JobApplication, error)
	updateStatusFn func(ctx context.Context, ownerID, applicationID uuid.UUID, status domain.Status) (*domain.JobApplication, error)
	deleteFn       func(ctx context.Context, ownerID, applicationID uuid.UUID) error
	getOwnedFn     func(ctx context.Context, ownerID, applicationID uuid.UUID) (*domain.JobApplication, error)
	listHistoryFn  func(ctx context.Context, ownerID, applicationID uuid.UUID) ([]domain.StatusHistoryEntry, error)
	listFn         func(ctx context.Context, ownerID uuid.UUID) ([]domain.JobApplication, error)
	summaryFn      func(ctx context.Context, ownerID uuid.UUID) (domain.StatusSummary, error)
}

func (m *mockApplicationService) Create(ctx context.Context, ownerID uuid.UUID, draft domain.ApplicationDraft) (*domain.JobApplication, error) {
	if m.createFn != nil {
		return m.createFn(ctx, ownerID, draft)
	}
	return nil, errors.New("not implemented")
}

func (m *mockApplicationService) UpdateStatus(ctx context.Context, ownerID, applicationID uuid.UUID, status domain.Status) (*domain.JobApplication, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, ownerID, applicationID, status)
	}
	return nil, errors.New("not implemented")
}

func (m *mockApplicationService) Delete(ctx context.Context, ownerID, applicationID uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, ownerID, applicationID)
	}
	return errors.New("not implemented")
}

func (m *mockApplicationService) GetOwned(ctx context.Context, ownerID, applicationID uuid.UUID) (*domain.JobApplication, error) {
	if m.getOwnedFn != nil {
		return m.getOwnedFn(ctx, ownerID, applicationID)
	}
	return nil, domain.ErrApplicationNotFound
}

func (m *mockApplicationService) ListHistory(ctx context.Context, ownerID, applicationID uuid.UUID) ([]domain.StatusHistoryEntry, error) {
	if m.listHistoryFn != nil {
		return m.listHistoryFn(ctx, ownerID, applicationID)
	}
	return nil, domain.ErrApplicationNotFound
}

func (m *mockApplicationService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.JobApplication, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return []domain.JobApplication{}, nil
}

func (m *mockApplicationService) Summary(ctx context.Context, ownerID uuid.UUID) (domain.StatusSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, ownerID)
	}
	return domain.NewStatusSummary(nil), nil
}

type mockAccountService struct {
	registerFn    func(ctx context.Context, in app.RegisterInput) (*domain.User, error)
	loginFn       func(ctx context.Context, email, password string) (*domain.User, error)
	getUserByIDFn func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

func (m *mockAccountService) Register(ctx context.Context, in app.RegisterInput) (*domain.User, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, in)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAccountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *mockAccountService) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(ctx, userID)
	}
	return &domain.User{ID: userID, Name: "Test User", Email: "test@example.com"}, nil
}

// fakeSessionRepo keeps sessions in a map; resolveErr simulates an unreachable store.
type fakeSessionRepo struct {
	mu         sync.Mutex
	sessions   map[string]uuid.UUID
	resolveErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]uuid.UUID)}
}

func (f *fakeSessionRepo) Create(_ context.Context, userID uuid.UUID, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := uuid.NewString()
	f.sessions[token] = userID
	return token, nil
}

func (f *fakeSessionRepo) Resolve(_ context.Context, token string) (uuid.UUID, error) {
	if f.resolveErr != nil {
		return uuid.Nil, f.resolveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.sessions[token]
	if !ok {
		return uuid.Nil, domain.ErrSessionNotFound
	}
	return userID, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

// --- Test helpers ---

type testServer struct {
	*Server
	apps     *mockApplicationService
	accounts *mockAccountService
	sessions *fakeSessionRepo
}

type testDeps struct {
	httpMetrics    *metrics.HTTPMetrics
	metricsHandler http.Handler
	healthChecks   []HealthCheck
}

func newTestServer(t *testing.T, opts ...func(*testDeps)) *testServer {
	t.Helper()

	cfg := &config.Config{
		AppEnv:             "development",
		SessionSecret:      "test-secret-key-32-bytes-long!!!",
		SessionMaxAge:      time.Hour,
		CORSAllowedOrigins: "http://localhost:5173",
		AuthRateLimit:      1000,
		AuthRateBurst:      1000,
	}
	ts := &testServer{
		apps:     &mockApplicationService{},
		accounts: &mockAccountService{},
		sessions: newFakeSessionRepo(),
	}
	var deps testDeps
	for _, opt := range opts {
		opt(&deps)
	}
	ts.Server = NewServer(cfg, ts.apps, ts.accounts, ts.sessions, deps.httpMetrics, deps.metricsHandler, deps.healthChecks)
	return ts
}

func withHealthChecks(checks ...HealthCheck) func(*testDeps) {
	return func(d *testDeps) {
		d.healthChecks = checks
	}
}

func withMetrics(m *metrics.HTTPMetrics, handler http.Handler) func(*testDeps) {
	return func(d *testDeps) {
		d.httpMetrics = m
		d.metricsHandler = handler
	}
}

// login stores a session for userID and returns the matching cookie.
func (ts *testServer) login(t *testing.T, userID uuid.UUID) *http.Cookie {
	t.Helper()
	token, err := ts.sessions.Create(context.Background(), userID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	session, err := ts.sessionStore.New(req, sessionName)
	require.NoError(t, err)
	session.Values[sessionKeyToken] = token
	require.NoError(t, session.Save(req, rec))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func (ts *testServer) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionName {
			return c
		}
	}
	return nil
}

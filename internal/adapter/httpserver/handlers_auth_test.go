package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Bhanuvikas1/job-tracker/internal/app"
	"github.com/Bhanuvikas1/job-tracker/internal/domain"
	apperrors "github.com/Bhanuvikas1/job-tracker/internal/platform/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesSession(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	var got app.RegisterInput
	ts.accounts.registerFn = func(_ context.Context, in app.RegisterInput) (*domain.User, error) {
		got = in
		return &domain.User{ID: userID, Name: in.Name, Email: in.Email}, nil
	}

	rec := ts.do(t, http.MethodPost, "/api/auth/register", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, app.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"}, got)
	assert.JSONEq(t, `{"id":"`+userID.String()+`","name":"Ada","email":"ada@example.com"}`, rec.Body.String())
	assert.NotNil(t, sessionCookie(rec))
	assert.Equal(t, 1, ts.sessions.count())

	me := ts.do(t, http.MethodGet, "/api/auth/me", "", sessionCookie(rec))
	assert.Equal(t, http.StatusOK, me.Code)
}

func TestRegister_ValidationErrorsNameFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", `{"name":"","email":"not-an-email","password":"123"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.TypeValidation, resp.Type)
	assert.Equal(t, map[string]any{"name": "required", "email": "email", "password": "min"}, resp.Context["fields"])
	assert.Zero(t, ts.sessions.count())
}

func TestRegister_MalformedBody(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/register", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	ts.accounts.registerFn = func(context.Context, app.RegisterInput) (*domain.User, error) {
		return nil, domain.ErrEmailTaken
	}

	rec := ts.do(t, http.MethodPost, "/api/auth/register", `{"name":"Ada","email":"ada@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already exists")
}

func TestLogin_Success(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	ts.accounts.loginFn = func(_ context.Context, email, password string) (*domain.User, error) {
		if email == "ada@example.com" && password == "secret1" {
			return &domain.User{ID: userID, Name: "Ada", Email: email}, nil
		}
		return nil, domain.ErrInvalidCredentials
	}

	rec := ts.do(t, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.NotNil(t, sessionCookie(rec))
}

func TestLogin_RegeneratesSession(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	ts.accounts.loginFn = func(_ context.Context, email, _ string) (*domain.User, error) {
		return &domain.User{ID: userID, Email: email}, nil
	}
	old := ts.login(t, userID)

	rec := ts.do(t, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"secret1"}`, old)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, ts.sessions.count())
	stale := ts.do(t, http.MethodGet, "/api/auth/me", "", old)
	assert.Equal(t, http.StatusUnauthorized, stale.Code)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/login", `{"email":"ada@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
	assert.Nil(t, sessionCookie(rec))
}

func TestLogout_DestroysSession(t *testing.T) {
	ts := newTestServer(t)
	cookie := ts.login(t, uuid.New())

	rec := ts.do(t, http.MethodPost, "/api/auth/logout", "", cookie)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, ts.sessions.count())
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/api/auth/me", "", cookie).Code)
}

func TestLogout_WithoutSession(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/auth/logout", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMe(t *testing.T) {
	ts := newTestServer(t)
	userID := uuid.New()
	cookie := ts.login(t, userID)

	rec := ts.do(t, http.MethodGet, "/api/auth/me", "", cookie)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+userID.String()+`","name":"Test User","email":"test@example.com"}`, rec.Body.String())
}

package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callLimited(t *testing.T, handler echo.HandlerFunc, remoteAddr string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	require.NoError(t, handler(echo.New().NewContext(req, rec)))
	return rec.Code
}

func TestRateLimiterAllowsRequestsUnderLimit(t *testing.T) {
	handler := newRateLimiter(10, 3)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for range 3 {
		assert.Equal(t, http.StatusOK, callLimited(t, handler, "1.2.3.4:1234"))
	}
}

func TestRateLimiterBlocksExcessiveRequests(t *testing.T) {
	handler := newRateLimiter(0.01, 1)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, callLimited(t, handler, "1.2.3.4:1234"))
	assert.Equal(t, http.StatusTooManyRequests, callLimited(t, handler, "1.2.3.4:1234"))
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	handler := newRateLimiter(0.01, 1)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, callLimited(t, handler, "1.2.3.4:1234"))
	assert.Equal(t, http.StatusOK, callLimited(t, handler, "5.6.7.8:1234"))
}

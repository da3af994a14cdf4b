package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/phast_auth/internal/router"
)

func TestMiddleware_LabelsByMatchedRoute(t *testing.T) {
	t.Parallel()

	m := New("test")
	e := echo.New()
	h := m.Middleware()(func(c echo.Context) error {
		c.Set(router.ContextKeyRoute, "/users/{id}")
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/users/1", "/users/2"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h(e.NewContext(req, rec)))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/users/{id}", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMiddleware_HTTPErrorStatus(t *testing.T) {
	t.Parallel()

	m := New("test")
	e := echo.New()
	h := m.Middleware()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "nope")
	})

	req := httptest.NewRequest(http.MethodPost, "/anything", nil)
	rec := httptest.NewRecorder()
	require.Error(t, h(e.NewContext(req, rec)))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodPost, unmatchedRoute, "418")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	t.Parallel()

	m := New("test")
	m.requests.WithLabelValues(http.MethodGet, "/", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "test_http_requests_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}

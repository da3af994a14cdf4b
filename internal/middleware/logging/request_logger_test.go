package loggingmw

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/phast_auth/internal/logging"
	"github.com/Skotchmaster/phast_auth/internal/router"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var out map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &out))
	return out
}

func TestRequestLogger_Success(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "debug")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/fetch", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var ctxLogged bool
	h := RequestLogger(base)(func(c echo.Context) error {
		c.Set(router.ContextKeyRoute, "/users/fetch")
		logging.FromContext(c.Request().Context()).Info("inside")
		ctxLogged = true
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, h(c))
	require.True(t, ctxLogged)
	assert.Equal(t, "rid-1", rec.Header().Get(echo.HeaderXRequestID))

	line := lastLine(t, &buf)
	assert.Equal(t, "request completed", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "/users/fetch", line["path"])
	assert.Equal(t, "rid-1", line["request_id"])
	assert.EqualValues(t, 200, line["status"])
}

func TestRequestLogger_RendersErrors(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "info")

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/boom", nil), rec)

	h := RequestLogger(base)(func(echo.Context) error {
		return errors.New("kaboom")
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	line := lastLine(t, &buf)
	assert.Equal(t, "ERROR", line["level"])
	assert.Equal(t, "kaboom", line["error"])
}

func TestRequestLogger_ClientErrorIsWarn(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewWithWriter(&buf, "info")

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/missing", nil), rec)

	h := RequestLogger(base)(func(c echo.Context) error {
		return c.NoContent(http.StatusNotFound)
	})

	require.NoError(t, h(c))
	assert.Equal(t, "WARN", lastLine(t, &buf)["level"])
}

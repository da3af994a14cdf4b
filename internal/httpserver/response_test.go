package httpserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/phast_auth/internal/service"
)

func TestStatusText(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		200: "OK",
		201: "CREATED",
		400: "BAD_REQUEST",
		401: "UNAUTHORIZED",
		404: "NOT_FOUND",
		405: "METHOD_NOT_ALLOWED",
		500: "INTERNAL_SERVER_ERROR",
		418: "UNKNOWN_STATUS",
	}
	for code, want := range cases {
		assert.Equal(t, want, StatusText(code), code)
	}
}

func TestStatusFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind error
		want int
	}{
		{service.ErrValidation, http.StatusBadRequest},
		{service.ErrPersistence, http.StatusBadRequest},
		{service.ErrUserNotFound, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrSessionExpired, http.StatusUnauthorized},
		{service.ErrRefreshFailed, http.StatusUnauthorized},
		{service.ErrAuthorization, http.StatusUnauthorized},
		{service.ErrInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		err := &service.Error{Kind: c.kind, Message: "m"}
		assert.Equal(t, c.want, StatusFor(err), c.kind.Error())
	}
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestBearerAuthorization(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header []string
		token  string
		err    error
	}{
		{name: "missing", err: errNoAuthorizationHeader},
		{name: "empty", header: []string{""}, err: errInvalidAuthorizationHeader},
		{name: "one part", header: []string{"abc"}, err: errInvalidAuthorizationHeader},
		{name: "three parts", header: []string{"Bearer a b"}, err: errInvalidAuthorizationHeader},
		{name: "wrong scheme", header: []string{"Basic abc"}, err: errInvalidAuthorizationHeader},
		{name: "empty token", header: []string{"Bearer "}, err: errInvalidAuthorizationHeader},
		{name: "ok", header: []string{"Bearer abc.def.ghi"}, token: "abc.def.ghi"},
		{name: "lowercase scheme", header: []string{"bearer abc"}, token: "abc"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for _, h := range c.header {
				req.Header.Add(echo.HeaderAuthorization, h)
			}
			got := BearerAuthorization(req)
			assert.Equal(t, c.token, got.Token)
			assert.Equal(t, c.err, got.Err)
		})
	}
}

func TestErrorHandler_RendersEnvelope(t *testing.T) {
	t.Parallel()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/x", nil), rec)

	ErrorHandler(echo.NewHTTPError(http.StatusBadRequest, "bad thing"), c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"bad thing"`)
	assert.Contains(t, rec.Body.String(), `"status":"BAD_REQUEST"`)
}

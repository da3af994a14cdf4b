package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/phast_auth/internal/logging"
	"github.com/Skotchmaster/phast_auth/internal/service"
)

type UserHTTP struct {
	Svc *service.AuthService
}

type profileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenData struct {
	Token string `json:"token"`
}

func (h *UserHTTP) Create(c echo.Context, _ []string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req profileRequest
	if err := decodeBody(c, &req); err != nil {
		l.Warn("create_error", "status", 400, "error", err)
		return failure(c, http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return serviceFailure(c, err)
	}
	return success(c, http.StatusCreated, res.Message, nil)
}

func (h *UserHTTP) Login(c echo.Context, _ []string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	// an unreadable body is just another failed login
	var req credentialsRequest
	if err := decodeBody(c, &req); err != nil {
		l.Warn("login_error", "reason", "invalid body", "error", err)
		req = credentialsRequest{}
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return serviceFailure(c, err)
	}
	return success(c, http.StatusOK, res.Message, tokenData{Token: res.Token})
}

func (h *UserHTTP) Refresh(c echo.Context, _ []string) error {
	res, err := h.Svc.Refresh(c.Request().Context(), BearerAuthorization(c.Request()))
	if err != nil {
		return serviceFailure(c, err)
	}
	return success(c, http.StatusOK, res.Message, tokenData{Token: res.Token})
}

func (h *UserHTTP) Fetch(c echo.Context, _ []string) error {
	res, err := h.Svc.Fetch(c.Request().Context(), BearerAuthorization(c.Request()))
	if err != nil {
		return serviceFailure(c, err)
	}
	return success(c, http.StatusOK, res.Message, res.User)
}

func (h *UserHTTP) Update(c echo.Context, _ []string) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update")

	var req profileRequest
	if err := decodeBody(c, &req); err != nil {
		l.Warn("update_error", "status", 400, "error", err)
		return failure(c, http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Update(ctx, BearerAuthorization(c.Request()), req.Name, req.Email, req.Password)
	if err != nil {
		return serviceFailure(c, err)
	}
	return success(c, http.StatusOK, res.Message, nil)
}

func (h *UserHTTP) Delete(c echo.Context, _ []string) error {
	res, err := h.Svc.Delete(c.Request().Context(), BearerAuthorization(c.Request()))
	if err != nil {
		return serviceFailure(c, err)
	}
	return success(c, http.StatusOK, res.Message, nil)
}

// decodeBody reads the request body as JSON whatever Content-Type says.
// An empty body leaves v untouched.
func decodeBody(c echo.Context, v any) error {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return nil
	}
	if err := c.Echo().JSONSerializer.Deserialize(c, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// StatusFor maps a service failure onto the HTTP status it is rendered with.
func StatusFor(err error) int {
	switch service.KindOf(err) {
	case service.ErrValidation, service.ErrPersistence, service.ErrUserNotFound:
		return http.StatusBadRequest
	case service.ErrInvalidCredentials, service.ErrSessionExpired, service.ErrRefreshFailed, service.ErrAuthorization:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func serviceFailure(c echo.Context, err error) error {
	code := StatusFor(err)
	msg := http.StatusText(code)
	var se *service.Error
	if errors.As(err, &se) {
		msg = se.Message
	}
	return failure(c, code, msg)
}

package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/phast_auth/internal/service"
)

var (
	errNoAuthorizationHeader      = errors.New("Sorry, no authorization header found.")
	errInvalidAuthorizationHeader = errors.New("Please enter a valid authorization header.")
)

const bearerScheme = "Bearer"

// BearerAuthorization extracts the token from an "Authorization: Bearer <token>"
// header. Failures are reported on the result, not returned, so the service
// can word them.
func BearerAuthorization(r *http.Request) service.Authorization {
	values := r.Header.Values(echo.HeaderAuthorization)
	if len(values) == 0 {
		return service.Authorization{Err: errNoAuthorizationHeader}
	}

	parts := strings.Split(values[0], " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) || parts[1] == "" {
		return service.Authorization{Err: errInvalidAuthorizationHeader}
	}
	return service.Authorization{Token: parts[1]}
}

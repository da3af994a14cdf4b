package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	apiWelcome     = "Welcome to PhastAuth REST API"
	apiDescription = "Simple and secure authentication service API"
	apiVersion     = "1.0.0"
)

func Home(c echo.Context, _ []string) error {
	o := newOutcome(c, http.StatusOK, apiWelcome)
	o.Description = apiDescription
	o.Version = apiVersion
	return c.JSON(http.StatusOK, SuccessEnvelope{Success: o, Metadata: newMetadata(c)})
}

func NotFound(c echo.Context) error {
	return failure(c, http.StatusNotFound, "Route not found")
}

func MethodNotAllowed(c echo.Context, requested, allowed string) error {
	o := newOutcome(c, http.StatusMethodNotAllowed, "method not allowed")
	o.Details.RequestedMethod = requested
	o.Details.AllowedMethod = allowed
	return c.JSON(http.StatusMethodNotAllowed, ErrorEnvelope{Error: o, Metadata: newMetadata(c)})
}

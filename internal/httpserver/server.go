package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/phast_auth/internal/metrics"
	loggingmw "github.com/Skotchmaster/phast_auth/internal/middleware/logging"
)

const bodyLimit = "1M"

type Deps struct {
	Users   *UserHTTP
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Ready reports whether downstream dependencies can serve traffic.
	Ready func(ctx context.Context) error
}

func New(d *Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	e.Use(
		middleware.Recover(),
		middleware.RequestID(),
		middleware.Secure(),
		middleware.BodyLimit(bodyLimit),
	)
	if d.Logger != nil {
		e.Use(loggingmw.RequestLogger(d.Logger))
	}
	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
	}

	Register(e, d)
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	Routes(d.Users).Mount(e)
}

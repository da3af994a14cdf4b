package loggingmw

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/phast_auth/internal/logging"
	"github.com/Skotchmaster/phast_auth/internal/router"
)

// RequestLogger attaches a request-scoped logger to the request context and
// logs one line per completed request. Errors returned by next are rendered
// here, so outer middleware sees a committed response and a nil error.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = c.Response().Header().Get(echo.HeaderXRequestID)
			}

			l := base.With(
				"method", c.Request().Method,
				"url", c.Request().URL.Path,
				"remote_ip", c.RealIP(),
				"user_agent", c.Request().UserAgent(),
			)
			if rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}

			req := c.Request().WithContext(logging.IntoContext(c.Request().Context(), l))
			c.SetRequest(req)

			start := time.Now()
			err := next(c)
			dur := time.Since(start)

			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}
			status := c.Response().Status

			attrs := []any{"path", routePattern(c), "status", status, "duration_ms", dur.Milliseconds()}
			switch {
			case err != nil || status >= 500:
				l.Error("request completed", append(attrs, "error", errStr(err))...)
			case status >= 400:
				l.Warn("request completed", attrs...)
			default:
				l.Info("request completed", append(attrs, "bytes", c.Response().Size)...)
			}
			return nil
		}
	}
}

func routePattern(c echo.Context) string {
	if p, ok := c.Get(router.ContextKeyRoute).(string); ok && p != "" {
		return p
	}
	return c.Path()
}

func errStr(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const documentationBase = "https://http.cat/status/"

var statusTexts = map[int]string{
	http.StatusOK:                  "OK",
	http.StatusCreated:             "CREATED",
	http.StatusBadRequest:          "BAD_REQUEST",
	http.StatusUnauthorized:        "UNAUTHORIZED",
	http.StatusNotFound:            "NOT_FOUND",
	http.StatusMethodNotAllowed:    "METHOD_NOT_ALLOWED",
	http.StatusInternalServerError: "INTERNAL_SERVER_ERROR",
}

func StatusText(code int) string {
	if s, ok := statusTexts[code]; ok {
		return s
	}
	return "UNKNOWN_STATUS"
}

type details struct {
	RequestedMethod string `json:"requested_method"`
	AllowedMethod   string `json:"allowed_method,omitempty"`
	Documentation   string `json:"documentation"`
}

type outcome struct {
	Status      string  `json:"status"`
	Code        int     `json:"code"`
	Message     string  `json:"message"`
	Description string  `json:"description,omitempty"`
	Version     string  `json:"version,omitempty"`
	Details     details `json:"details"`
}

type metadata struct {
	Timestamp int64  `json:"timestamp"`
	Endpoint  string `json:"endpoint"`
}

type SuccessEnvelope struct {
	Success  outcome  `json:"success"`
	Error    bool     `json:"error"`
	Metadata metadata `json:"metadata"`
	Data     any      `json:"data,omitempty"`
}

type ErrorEnvelope struct {
	Success  bool     `json:"success"`
	Error    outcome  `json:"error"`
	Metadata metadata `json:"metadata"`
}

func newOutcome(c echo.Context, code int, message string) outcome {
	return outcome{
		Status:  StatusText(code),
		Code:    code,
		Message: message,
		Details: details{
			RequestedMethod: c.Request().Method,
			Documentation:   documentationBase + strconv.Itoa(code),
		},
	}
}

func newMetadata(c echo.Context) metadata {
	return metadata{Timestamp: time.Now().Unix(), Endpoint: c.Request().URL.Path}
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, SuccessEnvelope{
		Success:  newOutcome(c, code, message),
		Metadata: newMetadata(c),
		Data:     data,
	})
}

func failure(c echo.Context, code int, message string) error {
	return c.JSON(code, ErrorEnvelope{
		Error:    newOutcome(c, code, message),
		Metadata: newMetadata(c),
	})
}

// ErrorHandler renders errors that escape handlers and middleware in the
// same envelope as everything else.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = failure(c, code, message)
}

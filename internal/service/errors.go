package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired")
	ErrRefreshFailed      = errors.New("token refresh failed")
	ErrUserNotFound       = errors.New("user not found")
	ErrAuthorization      = errors.New("authorization error")
	ErrPersistence        = errors.New("persistence failure")
	ErrInternal           = errors.New("internal error")
)

const (
	msgCreated         = "Account created successfully"
	msgLoggedIn        = "Login successful"
	msgRefreshed       = "Token refreshed successfully"
	msgFetched         = "User data retrieved successfully"
	msgUpdated         = "Account updated successfully"
	msgDeleted         = "Account deleted successfully"
	msgBadCredentials  = "Invalid credentials. Please check your email and password."
	msgRefreshFailed   = "Token refresh failed. Please login again."
	msgSessionExpired  = "Session expired. Please login again."
	msgUserNotFound    = "User account not found."
	msgCreateFailed    = "Account creation failed. Please try again."
	msgFetchFailed     = "Data fetch failed. Please try again."
	msgUpdateFailed    = "Account update failed. Please try again."
	msgDeleteFailed    = "Account deletion failed. Please try again."
	msgInternal        = "Internal error. Please try again later."
	prefixRegistration = "Registration error: "
	prefixUpdate       = "Update error: "
	prefixAuthorize    = "Authorization error: "
)

// Error is what every failed operation returns. Message is safe to show to
// clients; Err keeps the underlying cause for logs.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fail(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// KindOf returns the taxonomy sentinel of err, or ErrInternal for errors
// that did not come out of this package.
func KindOf(err error) error {
	var se *Error
	if errors.As(err, &se) && se.Kind != nil {
		return se.Kind
	}
	return ErrInternal
}

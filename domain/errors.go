package domain

import "errors"

// Error is an operational error: an expected, caller-recoverable condition
// that is surfaced to the client with its HTTP status code. Anything that is
// not an *Error is treated as an internal failure and hidden from clients.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the response envelope status: "fail" for client errors,
// "error" for everything else.
func (e *Error) Status() string {
	if e.Code >= 400 && e.Code < 500 {
		return "fail"
	}
	return "error"
}

// NewError builds an operational error with an explicit status code.
func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation marks missing or malformed input (400).
func Validation(message string) *Error { return NewError(400, message) }

// Unauthenticated marks a missing, invalid, expired or stale credential (401).
func Unauthenticated(message string) *Error { return NewError(401, message) }

// Forbidden marks an authenticated caller lacking the required relationship (403).
func Forbidden(message string) *Error { return NewError(403, message) }

// NotFound marks an unresolvable resource (404). It is also used when a
// caller is not a member of a team, to avoid confirming the team exists.
func NotFound(message string) *Error { return NewError(404, message) }

// Conflict marks a uniqueness violation surfaced by the storage layer (409).
func Conflict(message string) *Error { return NewError(409, message) }

// TransientAuth marks an expired OTP or verification token (400). Distinct
// from Unauthenticated because the remedy is requesting a new code, not
// logging in again.
func TransientAuth(message string) *Error { return NewError(400, message) }

// AsError extracts an operational error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Shared sentinels returned by repositories.
var (
	ErrUserNotFound     = NotFound("user not found")
	ErrTaskNotFound     = NotFound("there is no task with that ID")
	ErrTeamNotFound     = NotFound("no team found with this ID or you are not part of it")
	ErrTeamTaskNotFound = NotFound("there is no team task with that ID")
	ErrOTPNotFound      = Unauthenticated("the OTP session is invalid, please request a new one")
	ErrTokenNotFound    = Validation("invalid link or expired")
	ErrDuplicateEmail   = Conflict("this email is already registered")
)

// Credential verification sentinels returned by the token service.
var (
	ErrTokenInvalid = Unauthenticated("invalid token, please log in")
	ErrTokenExpired = Unauthenticated("your token has expired, please log in again")
)

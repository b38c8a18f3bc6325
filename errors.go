package authfront

import (
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// ErrNoStoredSession is the error for absent persisted session data
var ErrNoStoredSession = errors.New("no stored session")

// ErrUnableToDecodeSession unable to parse the persisted session payload
var ErrUnableToDecodeSession = errors.New("unable to decode session")

// ErrMissingResetToken is returned before any request when the reset token is empty
var ErrMissingResetToken = errors.New("missing password reset token")

const (
	// TextCodeUnauthorized tags 401 responses surfaced by the client
	TextCodeUnauthorized = "UNAUTHORIZED"
	// TextCodeServerRejected tags non-2xx responses that carried a message
	TextCodeServerRejected = "SERVER_REJECTED"
)

const fallbackServerMessage = "request failed, please try again"

// ServerError converts a non-2xx envelope into a rich error, keeping the
// server-provided message verbatim when present.
func ServerError(statusCode int, message string) *goerrors.Error {
	if message == "" {
		message = fallbackServerMessage
	}

	var category goerrors.Category
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		category = goerrors.CategoryAuth
	case statusCode == http.StatusConflict:
		category = goerrors.CategoryConflict
	case statusCode == http.StatusNotFound:
		category = goerrors.CategoryNotFound
	case statusCode >= 400 && statusCode < 500:
		category = goerrors.CategoryValidation
	default:
		category = goerrors.CategoryInternal
	}

	err := goerrors.New(message, category).WithCode(statusCode)
	if statusCode == http.StatusUnauthorized {
		return err.WithTextCode(TextCodeUnauthorized)
	}
	return err.WithTextCode(TextCodeServerRejected)
}

// IsAuthorizationFailure checks for the 401-class errors the interceptor
// handles globally. This is the sole signal for an invalid or expired
// credential, there is no client-side expiry bookkeeping.
func IsAuthorizationFailure(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Code == http.StatusUnauthorized
	}
	return false
}

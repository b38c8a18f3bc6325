package authfront_test

import (
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authfront "github.com/hsapp/go-authfront"
)

func TestServerErrorCategories(t *testing.T) {
	cases := []struct {
		status   int
		category goerrors.Category
	}{
		{http.StatusUnauthorized, goerrors.CategoryAuth},
		{http.StatusForbidden, goerrors.CategoryAuth},
		{http.StatusConflict, goerrors.CategoryConflict},
		{http.StatusNotFound, goerrors.CategoryNotFound},
		{http.StatusBadRequest, goerrors.CategoryValidation},
		{http.StatusUnprocessableEntity, goerrors.CategoryValidation},
		{http.StatusInternalServerError, goerrors.CategoryInternal},
		{http.StatusBadGateway, goerrors.CategoryInternal},
	}

	for _, tc := range cases {
		err := authfront.ServerError(tc.status, "boom")
		assert.Equal(t, tc.category, err.Category, "status %d", tc.status)
		assert.Equal(t, tc.status, err.Code)
		assert.Equal(t, "boom", err.Message)
	}
}

func TestServerErrorKeepsServerMessage(t *testing.T) {
	err := authfront.ServerError(http.StatusBadRequest, "nickname already in use")
	assert.Equal(t, "nickname already in use", err.Message)

	// An empty message gets a generic fallback, never an empty string.
	err = authfront.ServerError(http.StatusBadRequest, "")
	assert.NotEmpty(t, err.Message)
}

func TestServerErrorTextCodes(t *testing.T) {
	unauthorized := authfront.ServerError(http.StatusUnauthorized, "nope")
	assert.Equal(t, authfront.TextCodeUnauthorized, unauthorized.TextCode)

	rejected := authfront.ServerError(http.StatusConflict, "taken")
	assert.Equal(t, authfront.TextCodeServerRejected, rejected.TextCode)
}

func TestIsAuthorizationFailure(t *testing.T) {
	assert.True(t, authfront.IsAuthorizationFailure(
		authfront.ServerError(http.StatusUnauthorized, "expired")))

	assert.False(t, authfront.IsAuthorizationFailure(
		authfront.ServerError(http.StatusForbidden, "forbidden")))
	assert.False(t, authfront.IsAuthorizationFailure(
		authfront.ServerError(http.StatusInternalServerError, "boom")))
	assert.False(t, authfront.IsAuthorizationFailure(errors.New("plain error")))
	assert.False(t, authfront.IsAuthorizationFailure(nil))
}

func TestIsAuthorizationFailureWrapped(t *testing.T) {
	inner := authfront.ServerError(http.StatusUnauthorized, "expired")
	wrapped := goerrors.Wrap(inner, goerrors.CategoryOperation, "request failed")

	var richErr *goerrors.Error
	require.True(t, goerrors.As(wrapped, &richErr))
	assert.True(t, authfront.IsAuthorizationFailure(inner))
}

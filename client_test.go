package authfront_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authfront "github.com/hsapp/go-authfront"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*authfront.Client, *httptest.Server) {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	client := authfront.NewClient(authfront.SimpleConfig{BaseURL: backend.URL})
	return client, backend
}

func TestClientLogin(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req authfront.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test@example.com", req.Email)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": 200,
			"message": "ok",
			"data": {
				"accessToken": "token-123",
				"userInfo": {
					"userId": 7,
					"email": "test@example.com",
					"nickname": "tester"
				}
			}
		}`))
	})

	grant, err := client.Login(context.Background(), authfront.LoginRequest{
		Email:    "test@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-123", grant.AccessToken)
	require.NotNil(t, grant.UserInfo)
	assert.Equal(t, int64(7), grant.UserInfo.ID)
	assert.Equal(t, "tester", grant.UserInfo.Nickname)
}

func TestClientLoginRejected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": 401, "message": "invalid credentials"}`))
	})

	_, err := client.Login(context.Background(), authfront.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong",
	})
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, "invalid credentials", richErr.Message)
	assert.Equal(t, http.StatusUnauthorized, richErr.Code)
	assert.True(t, authfront.IsAuthorizationFailure(err))
}

func TestClientSignUp(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/signup", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"status": 201,
			"data": {"userId": 11, "email": "new@example.com", "nickname": "newbie"}
		}`))
	})

	user, err := client.SignUp(context.Background(), authfront.SignUpRequest{
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Nickname:        "newbie",
		Name:            "New",
		PhoneNumber:     "010-1234-5678",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(11), user.ID)
	assert.Equal(t, "new@example.com", user.Email)
}

func TestClientSignUpConflict(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status": 409, "message": "email already registered"}`))
	})

	_, err := client.SignUp(context.Background(), authfront.SignUpRequest{})
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, goerrors.CategoryConflict, richErr.Category)
	assert.Equal(t, "email already registered", richErr.Message)
	assert.False(t, authfront.IsAuthorizationFailure(err))
}

func TestClientErrorWithoutMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.Logout(context.Background())
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.NotEmpty(t, richErr.Message)
	assert.Equal(t, goerrors.CategoryInternal, richErr.Category)
}

func TestClientToleratesNonEnvelopeBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	assert.NoError(t, client.Logout(context.Background()))
}

func TestClientEmptySuccessBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.ChangePassword(context.Background(), authfront.ChangePasswordRequest{
		CurrentPassword:    "old",
		NewPassword:        "newpass1",
		ConfirmNewPassword: "newpass1",
	}))
}

func TestClientNetworkFailure(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := authfront.NewClient(authfront.SimpleConfig{BaseURL: backend.URL})
	backend.Close()

	err := client.Logout(context.Background())
	require.Error(t, err)

	var richErr *goerrors.Error
	require.True(t, goerrors.As(err, &richErr))
	assert.Equal(t, goerrors.CategoryOperation, richErr.Category)
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer backend.Close()

	client := authfront.NewClient(authfront.SimpleConfig{BaseURL: backend.URL + "/"})
	require.NoError(t, client.Logout(context.Background()))

	assert.Equal(t, "/auth/logout", gotPath)
}

package authfront_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authfront "github.com/hsapp/go-authfront"
)

func TestRegisterUserHandler(t *testing.T) {
	var received authfront.SignUpRequest
	client, store, backend := newCommandFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/signup", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status": 201, "data": {"userId": 3, "email": "new@example.com"}}`))
	})
	events := &capturedEvents{}

	handler := authfront.NewRegisterUserHandler(client, store).
		WithActivitySink(events.sink())

	err := handler.Execute(context.Background(), authfront.RegisterUserMessage{
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Nickname:        "newbie",
		Name:            "New",
		PhoneNumber:     "01012345678",
	})
	require.NoError(t, err)

	// Raw digits are normalized before they hit the wire.
	assert.Equal(t, "010-1234-5678", received.PhoneNumber)

	// Registration never authenticates.
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.AccessToken())

	assert.Equal(t, 1, backend.count())
	assert.Equal(t,
		[]authfront.ActivityEventType{authfront.ActivityEventSignUp},
		events.types(),
	)
}

func TestRegisterUserHandlerValidatesLocally(t *testing.T) {
	client, store, backend := newCommandFixture(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	handler := authfront.NewRegisterUserHandler(client, store)

	err := handler.Execute(context.Background(), authfront.RegisterUserMessage{
		Email:           "new@example.com",
		Password:        "secret1",
		ConfirmPassword: "mismatch1",
		Nickname:        "newbie",
		Name:            "New",
		PhoneNumber:     "010-1234-5678",
	})
	require.Error(t, err)
	assert.Equal(t, 0, backend.count())
}

func TestRegisterUserHandlerServerRejection(t *testing.T) {
	client, store, _ := newCommandFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"status": 409, "message": "email already registered"}`))
	})

	handler := authfront.NewRegisterUserHandler(client, store)

	err := handler.Execute(context.Background(), authfront.RegisterUserMessage{
		Email:           "taken@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Nickname:        "newbie",
		Name:            "New",
		PhoneNumber:     "010-1234-5678",
	})
	require.Error(t, err)

	assert.Equal(t, "email already registered", store.State().Error)
	assert.False(t, store.IsAuthenticated())
}

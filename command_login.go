package authfront

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type LoginUserMessage struct {
	Email    string `json:"email" doc:"Account email"`
	Password string `json:"password" doc:"Account password"`
}

func (e LoginUserMessage) Type() string { return "auth.login" }

// LoginUserHandler runs the credential exchange and, on success, installs
// the returned identity and token in the session store.
type LoginUserHandler struct {
	client   *Client
	store    *Store
	activity ActivitySink
	logger   Logger
}

// NewLoginUserHandler creates a handler with sane defaults.
func NewLoginUserHandler(client *Client, store *Store) *LoginUserHandler {
	return &LoginUserHandler{
		client:   client,
		store:    store,
		activity: noopActivitySink{},
		logger:   defLogger{},
	}
}

// WithActivitySink sets the sink used to emit login events.
func (h *LoginUserHandler) WithActivitySink(sink ActivitySink) *LoginUserHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

// WithLogger overrides the logger used by the handler.
func (h *LoginUserHandler) WithLogger(logger Logger) *LoginUserHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *LoginUserHandler) Execute(ctx context.Context, event LoginUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during login",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *LoginUserHandler) execute(ctx context.Context, event LoginUserMessage) error {
	payload := LoginRequest{Email: event.Email, Password: event.Password}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload")
	}

	h.store.SetLoading(true)
	defer h.store.SetLoading(false)
	h.store.ClearError()

	grant, err := h.client.Login(ctx, payload)
	if err != nil {
		h.store.SetError(userMessage(err, "login failed"))
		recordActivity(ctx, h.activity, h.logger, ActivityEvent{
			EventType: ActivityEventLoginFailure,
			Email:     event.Email,
		})
		return err
	}

	h.store.Login(grant.UserInfo, grant.AccessToken)

	recordActivity(ctx, h.activity, h.logger, ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		Email:     event.Email,
	})

	return nil
}

// userMessage extracts the server-provided message from a rich error, or
// falls back to a generic one. Authentication state is never mutated on
// failure; only the visible message changes.
func userMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}
	return fallback
}

package authfront

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type LogoutUserMessage struct{}

func (e LogoutUserMessage) Type() string { return "auth.logout" }

// LogoutUserHandler revokes the server-side session and clears local state.
// The local session is cleared even when the server call fails; a dangling
// token the server already considers dead is worse than a failed revocation.
type LogoutUserHandler struct {
	client   *Client
	store    *Store
	activity ActivitySink
	logger   Logger
}

func NewLogoutUserHandler(client *Client, store *Store) *LogoutUserHandler {
	return &LogoutUserHandler{
		client:   client,
		store:    store,
		activity: noopActivitySink{},
		logger:   defLogger{},
	}
}

func (h *LogoutUserHandler) WithActivitySink(sink ActivitySink) *LogoutUserHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

func (h *LogoutUserHandler) WithLogger(logger Logger) *LogoutUserHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *LogoutUserHandler) Execute(ctx context.Context, event LogoutUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during logout",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *LogoutUserHandler) execute(ctx context.Context, event LogoutUserMessage) error {
	var email string
	if user := h.store.User(); user != nil {
		email = user.Email
	}

	err := h.client.Logout(ctx)
	if err != nil {
		h.logger.Warn("server side logout failed: %v", err)
	}

	h.store.Logout()

	recordActivity(ctx, h.activity, h.logger, ActivityEvent{
		EventType: ActivityEventLogout,
		Email:     email,
	})

	return err
}

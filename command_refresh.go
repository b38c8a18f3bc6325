package authfront

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type RefreshSessionMessage struct{}

func (e RefreshSessionMessage) Type() string { return "auth.refresh" }

// RefreshSessionHandler trades the current credential for a fresh one and
// installs it atomically with the returned user record. A rejected refresh
// leaves local state alone; the interceptor's 401 handling owns teardown.
type RefreshSessionHandler struct {
	client   *Client
	store    *Store
	activity ActivitySink
	logger   Logger
}

func NewRefreshSessionHandler(client *Client, store *Store) *RefreshSessionHandler {
	return &RefreshSessionHandler{
		client:   client,
		store:    store,
		activity: noopActivitySink{},
		logger:   defLogger{},
	}
}

func (h *RefreshSessionHandler) WithActivitySink(sink ActivitySink) *RefreshSessionHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

func (h *RefreshSessionHandler) WithLogger(logger Logger) *RefreshSessionHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *RefreshSessionHandler) Execute(ctx context.Context, event RefreshSessionMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during session refresh",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RefreshSessionHandler) execute(ctx context.Context, event RefreshSessionMessage) error {
	grant, err := h.client.Refresh(ctx)
	if err != nil {
		return err
	}

	h.store.Login(grant.UserInfo, grant.AccessToken)

	var email string
	if grant.UserInfo != nil {
		email = grant.UserInfo.Email
	}

	recordActivity(ctx, h.activity, h.logger, ActivityEvent{
		EventType: ActivityEventLoginSuccess,
		Email:     email,
		Metadata:  map[string]any{"refresh": true},
	})

	return nil
}

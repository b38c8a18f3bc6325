package authfront

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type InitializePasswordResetMessage struct {
	Email string `json:"email" doc:"Account email the reset link is mailed to"`
}

func (e InitializePasswordResetMessage) Type() string { return "auth.password.reset_request" }

// InitializePasswordResetHandler asks the backend to start a reset flow. The
// response is intentionally indistinguishable for known and unknown emails;
// the handler only reports transport-level failures.
type InitializePasswordResetHandler struct {
	client   *Client
	store    *Store
	activity ActivitySink
	logger   Logger
}

func NewInitializePasswordResetHandler(client *Client, store *Store) *InitializePasswordResetHandler {
	return &InitializePasswordResetHandler{
		client:   client,
		store:    store,
		activity: noopActivitySink{},
		logger:   defLogger{},
	}
}

func (h *InitializePasswordResetHandler) WithActivitySink(sink ActivitySink) *InitializePasswordResetHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

func (h *InitializePasswordResetHandler) WithLogger(logger Logger) *InitializePasswordResetHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *InitializePasswordResetHandler) Execute(ctx context.Context, event InitializePasswordResetMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password reset request",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *InitializePasswordResetHandler) execute(ctx context.Context, event InitializePasswordResetMessage) error {
	payload := PasswordResetRequest{Email: event.Email}
	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid reset request payload")
	}

	h.store.SetLoading(true)
	defer h.store.SetLoading(false)
	h.store.ClearError()

	if err := h.client.RequestPasswordReset(ctx, event.Email); err != nil {
		h.store.SetError(userMessage(err, "password reset request failed"))
		return err
	}

	recordActivity(ctx, h.activity, h.logger, ActivityEvent{
		EventType: ActivityEventPasswordResetRequest,
		Email:     event.Email,
	})

	return nil
}

package authfront

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type ChangePasswordMessage struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

func (e ChangePasswordMessage) Type() string { return "auth.password.change" }

// ChangePasswordHandler rotates the signed-in user's password. Confirmation
// mismatch fails locally, before any request goes out.
type ChangePasswordHandler struct {
	client   *Client
	store    *Store
	activity ActivitySink
	logger   Logger
}

func NewChangePasswordHandler(client *Client, store *Store) *ChangePasswordHandler {
	return &ChangePasswordHandler{
		client:   client,
		store:    store,
		activity: noopActivitySink{},
		logger:   defLogger{},
	}
}

func (h *ChangePasswordHandler) WithActivitySink(sink ActivitySink) *ChangePasswordHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

func (h *ChangePasswordHandler) WithLogger(logger Logger) *ChangePasswordHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *ChangePasswordHandler) Execute(ctx context.Context, event ChangePasswordMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password change",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *ChangePasswordHandler) execute(ctx context.Context, event ChangePasswordMessage) error {
	payload := ChangePasswordRequest{
		CurrentPassword:    event.CurrentPassword,
		NewPassword:        event.NewPassword,
		ConfirmNewPassword: event.ConfirmNewPassword,
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid password change payload")
	}

	h.store.SetLoading(true)
	defer h.store.SetLoading(false)
	h.store.ClearError()

	if err := h.client.ChangePassword(ctx, payload); err != nil {
		h.store.SetError(userMessage(err, "password change failed"))
		return err
	}

	var email string
	if user := h.store.User(); user != nil {
		email = user.Email
	}

	recordActivity(ctx, h.activity, h.logger, ActivityEvent{
		EventType: ActivityEventPasswordChanged,
		Email:     email,
	})

	return nil
}

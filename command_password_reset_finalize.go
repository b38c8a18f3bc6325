package authfront

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type FinalizePasswordResetMessage struct {
	Token           string `json:"token" doc:"Reset token from the mailed link"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (e FinalizePasswordResetMessage) Type() string { return "auth.password.reset" }

// FinalizePasswordResetHandler sets a new password using the mailed reset
// token. An empty token or a confirmation mismatch fails locally without an
// outbound request.
type FinalizePasswordResetHandler struct {
	client   *Client
	store    *Store
	activity ActivitySink
	logger   Logger
}

func NewFinalizePasswordResetHandler(client *Client, store *Store) *FinalizePasswordResetHandler {
	return &FinalizePasswordResetHandler{
		client:   client,
		store:    store,
		activity: noopActivitySink{},
		logger:   defLogger{},
	}
}

func (h *FinalizePasswordResetHandler) WithActivitySink(sink ActivitySink) *FinalizePasswordResetHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

func (h *FinalizePasswordResetHandler) WithLogger(logger Logger) *FinalizePasswordResetHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *FinalizePasswordResetHandler) Execute(ctx context.Context, event FinalizePasswordResetMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during password reset finalization",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *FinalizePasswordResetHandler) execute(ctx context.Context, event FinalizePasswordResetMessage) error {
	if event.Token == "" {
		return goerrors.Wrap(ErrMissingResetToken, goerrors.CategoryValidation, "missing reset token").
			WithCode(goerrors.CodeBadRequest)
	}

	payload := ResetPasswordRequest{
		Token:           event.Token,
		NewPassword:     event.NewPassword,
		ConfirmPassword: event.ConfirmPassword,
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid reset payload")
	}

	h.store.SetLoading(true)
	defer h.store.SetLoading(false)
	h.store.ClearError()

	if err := h.client.ResetPassword(ctx, payload); err != nil {
		h.store.SetError(userMessage(err, "password reset failed"))
		return err
	}

	recordActivity(ctx, h.activity, h.logger, ActivityEvent{
		EventType: ActivityEventPasswordResetSuccess,
	})

	return nil
}

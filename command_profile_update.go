package authfront

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type UpdateProfileMessage struct {
	Nickname    string `json:"nickname"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

func (e UpdateProfileMessage) Type() string { return "auth.profile.update" }

// UpdateProfileHandler replaces the mutable profile fields and installs the
// refreshed user record in the store. The credential is untouched, so the
// authenticated flag stays consistent with it.
type UpdateProfileHandler struct {
	client   *Client
	store    *Store
	activity ActivitySink
	logger   Logger
}

func NewUpdateProfileHandler(client *Client, store *Store) *UpdateProfileHandler {
	return &UpdateProfileHandler{
		client:   client,
		store:    store,
		activity: noopActivitySink{},
		logger:   defLogger{},
	}
}

func (h *UpdateProfileHandler) WithActivitySink(sink ActivitySink) *UpdateProfileHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

func (h *UpdateProfileHandler) WithLogger(logger Logger) *UpdateProfileHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *UpdateProfileHandler) Execute(ctx context.Context, event UpdateProfileMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during profile update",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *UpdateProfileHandler) execute(ctx context.Context, event UpdateProfileMessage) error {
	payload := UpdateProfileRequest{
		Nickname:    event.Nickname,
		Name:        event.Name,
		PhoneNumber: NormalizePhoneNumber(event.PhoneNumber),
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid profile payload")
	}

	h.store.SetLoading(true)
	defer h.store.SetLoading(false)
	h.store.ClearError()

	user, err := h.client.UpdateProfile(ctx, payload)
	if err != nil {
		h.store.SetError(userMessage(err, "profile update failed"))
		return err
	}

	h.store.SetUser(user)

	recordActivity(ctx, h.activity, h.logger, ActivityEvent{
		EventType: ActivityEventProfileUpdated,
		Email:     user.Email,
	})

	return nil
}

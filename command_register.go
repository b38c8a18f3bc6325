package authfront

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

type RegisterUserMessage struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Nickname        string `json:"nickname"`
	Name            string `json:"name"`
	PhoneNumber     string `json:"phoneNumber"`
}

func (e RegisterUserMessage) Type() string { return "auth.register" }

// RegisterUserHandler signs up a new account. Success does not authenticate:
// the backend issues no credential on signup, the user logs in afterwards.
type RegisterUserHandler struct {
	client   *Client
	store    *Store
	activity ActivitySink
	logger   Logger
}

func NewRegisterUserHandler(client *Client, store *Store) *RegisterUserHandler {
	return &RegisterUserHandler{
		client:   client,
		store:    store,
		activity: noopActivitySink{},
		logger:   defLogger{},
	}
}

func (h *RegisterUserHandler) WithActivitySink(sink ActivitySink) *RegisterUserHandler {
	h.activity = normalizeActivitySink(sink)
	return h
}

func (h *RegisterUserHandler) WithLogger(logger Logger) *RegisterUserHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	payload := SignUpRequest{
		Email:           event.Email,
		Password:        event.Password,
		ConfirmPassword: event.ConfirmPassword,
		Nickname:        event.Nickname,
		Name:            event.Name,
		PhoneNumber:     NormalizePhoneNumber(event.PhoneNumber),
	}

	if err := payload.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid signup payload")
	}

	h.store.SetLoading(true)
	defer h.store.SetLoading(false)
	h.store.ClearError()

	user, err := h.client.SignUp(ctx, payload)
	if err != nil {
		h.store.SetError(userMessage(err, "signup failed"))
		return err
	}

	recordActivity(ctx, h.activity, h.logger, ActivityEvent{
		EventType: ActivityEventSignUp,
		Email:     user.Email,
	})

	return nil
}

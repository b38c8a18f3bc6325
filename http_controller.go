package authfront

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// RegisterAuthRoutes mounts the full routable surface: guest-only auth pages,
// authenticated-only app pages, and the root redirect.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {

	controller := NewAuthController(opts...)

	guest := controller.Guard.Guest()
	protected := controller.Guard.Protected()

	app.Get(controller.Routes.Home, controller.HomeRedirect).
		SetName("home.get")

	app.Get(controller.Routes.Login, controller.LoginShow, guest).
		SetName("sign-in.get")
	app.Post(controller.Routes.Login, controller.LoginPost, guest).
		SetName("sign-in.post")

	app.Get(controller.Routes.Logout, controller.LogOut).
		SetName("sign-out.get")

	app.Get(controller.Routes.Signup, controller.SignupShow, guest).
		SetName("register.get")
	app.Post(controller.Routes.Signup, controller.SignupPost, guest).
		SetName("register.post")

	app.Get(controller.Routes.ForgotPassword, controller.ForgotPasswordShow, guest).
		SetName("pwd-forgot.get")
	app.Post(controller.Routes.ForgotPassword, controller.ForgotPasswordPost, guest).
		SetName("pwd-forgot.post")

	app.Get(controller.Routes.ResetPassword, controller.ResetPasswordShow, guest).
		SetName("pwd-reset.get")
	app.Post(controller.Routes.ResetPassword, controller.ResetPasswordPost, guest).
		SetName("pwd-reset.post")

	app.Get(controller.Routes.Dashboard, controller.DashboardShow, protected).
		SetName("dashboard.get")

	app.Get(controller.Routes.Profile, controller.ProfileShow, protected).
		SetName("profile.get")
	app.Post(controller.Routes.Profile, controller.ProfilePost, protected).
		SetName("profile.post")
	app.Post(controller.Routes.Password, controller.PasswordPost, protected).
		SetName("password.post")
}

type AuthControllerRoutes struct {
	Home           string
	Login          string
	Logout         string
	Signup         string
	ForgotPassword string
	ResetPassword  string
	Dashboard      string
	Profile        string
	Password       string
}

type AuthControllerViews struct {
	Login          string
	Signup         string
	ForgotPassword string
	ResetPassword  string
	Dashboard      string
	Profile        string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Client       *Client
	Store        *Store
	Guard        *RouteGuard
	Activity     ActivitySink
	Routes       *AuthControllerRoutes
	Views        *AuthControllerViews
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		Activity:     noopActivitySink{},
		ErrorHandler: defaultErrHandler,
		Routes: &AuthControllerRoutes{
			Home:           "/",
			Login:          "/login",
			Logout:         "/logout",
			Signup:         "/signup",
			ForgotPassword: "/forgot-password",
			ResetPassword:  "/reset-password",
			Dashboard:      "/dashboard",
			Profile:        "/profile",
			Password:       "/profile/password",
		},
		Views: &AuthControllerViews{
			Login:          "login",
			Signup:         "signup",
			ForgotPassword: "forgot_password",
			ResetPassword:  "reset_password",
			Dashboard:      "dashboard",
			Profile:        "profile",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Client == nil {
		panic("Missing Client in auth controller...")
	}

	if c.Store == nil {
		panic("Missing session Store in auth controller...")
	}

	if c.Guard == nil {
		panic("Missing RouteGuard in auth controller...")
	}

	return c
}

// WithAuthControllerClient sets the API client.
func WithAuthControllerClient(client *Client) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Client = client
		return c
	}
}

// WithAuthControllerStore sets the session store.
func WithAuthControllerStore(store *Store) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Store = store
		return c
	}
}

// WithAuthControllerGuard sets the route guard.
func WithAuthControllerGuard(guard *RouteGuard) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Guard = guard
		return c
	}
}

// WithAuthControllerActivity sets the activity sink passed to commands.
func WithAuthControllerActivity(sink ActivitySink) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Activity = normalizeActivitySink(sink)
		return c
	}
}

// WithAuthControllerLogger sets the logger.
func WithAuthControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

// WithAuthControllerDebug toggles payload dumps.
func WithAuthControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func (a *AuthController) HomeRedirect(ctx router.Context) error {
	return ctx.Redirect(a.Routes.Dashboard, fiber.StatusFound)
}

func (a *AuthController) LoginShow(ctx router.Context) error {
	return ctx.Render(a.Views.Login, a.viewData(router.ViewContext{
		"errors": nil,
		"record": nil,
	}))
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)
	errors := map[string]string{}

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, a.viewData(router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		}))
	}

	if a.Debug {
		a.Logger.Debug("login payload: %s", print.MaybePrettyJSON(payload))
	}

	login := NewLoginUserHandler(a.Client, a.Store).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	if err := login.Execute(ctx.Context(), LoginUserMessage{
		Email:    payload.Email,
		Password: payload.Password,
	}); err != nil {
		errors["authentication"] = userMessage(err, "login failed")
		return ctx.Render(a.Views.Login, a.viewData(router.ViewContext{
			"errors": errors,
			"record": payload,
		}))
	}

	redirect := a.Guard.GetRedirectOrDefault(ctx)
	return ctx.Redirect(redirect, fiber.StatusSeeOther)
}

func (a *AuthController) LogOut(ctx router.Context) error {
	logout := NewLogoutUserHandler(a.Client, a.Store).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	// Local state clears even when revocation fails; nothing to surface.
	if err := logout.Execute(ctx.Context(), LogoutUserMessage{}); err != nil {
		a.Logger.Warn("logout: %v", err)
	}

	return ctx.Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

func (a *AuthController) SignupShow(ctx router.Context) error {
	return ctx.Render(a.Views.Signup, a.viewData(router.ViewContext{
		"errors": map[string]string{},
		"record": RegisterUserMessage{},
	}))
}

func (a *AuthController) SignupPost(ctx router.Context) error {
	payload := new(SignUpRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("signup parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Signup, a.viewData(router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": payload,
		}))
	}

	register := NewRegisterUserHandler(a.Client, a.Store).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	if err := register.Execute(ctx.Context(), RegisterUserMessage{
		Email:           payload.Email,
		Password:        payload.Password,
		ConfirmPassword: payload.ConfirmPassword,
		Nickname:        payload.Nickname,
		Name:            payload.Name,
		PhoneNumber:     payload.PhoneNumber,
	}); err != nil {
		a.Logger.Error("signup: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  userMessage(err, "signup failed"),
			"system_message": "Error registering account",
		}).Render(a.Views.Signup, a.viewData(router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
		}))
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Account created, please sign in",
	}).Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

func (a *AuthController) ForgotPasswordShow(ctx router.Context) error {
	return ctx.Render(a.Views.ForgotPassword, a.viewData(router.ViewContext{
		"errors": nil,
		"sent":   false,
	}))
}

func (a *AuthController) ForgotPasswordPost(ctx router.Context) error {
	payload := new(PasswordResetRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("reset request parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.ForgotPassword, a.viewData(router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": payload,
		}))
	}

	initReset := NewInitializePasswordResetHandler(a.Client, a.Store).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	if err := initReset.Execute(ctx.Context(), InitializePasswordResetMessage{
		Email: payload.Email,
	}); err != nil {
		a.Logger.Error("reset request: ", "error", err)
		return ctx.Render(a.Views.ForgotPassword, a.viewData(router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
			"sent":       false,
		}))
	}

	// Same response for known and unknown emails.
	return ctx.Render(a.Views.ForgotPassword, a.viewData(router.ViewContext{
		"sent":  true,
		"email": payload.Email,
	}))
}

func (a *AuthController) ResetPasswordShow(ctx router.Context) error {
	token := ctx.Query("token", "")

	// A missing token is an error state of the page, not a routing failure.
	if token == "" {
		return ctx.Render(a.Views.ResetPassword, a.viewData(router.ViewContext{
			"token_missing": true,
		}))
	}

	return ctx.Render(a.Views.ResetPassword, a.viewData(router.ViewContext{
		"token_missing": false,
		"token":         token,
	}))
}

func (a *AuthController) ResetPasswordPost(ctx router.Context) error {
	payload := new(ResetPasswordRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("reset parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.ResetPassword, a.viewData(router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
		}))
	}

	if a.Debug {
		fmt.Println("======= PASSWORD RESET ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=============================")
	}

	finalize := NewFinalizePasswordResetHandler(a.Client, a.Store).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	if err := finalize.Execute(ctx.Context(), FinalizePasswordResetMessage{
		Token:           payload.Token,
		NewPassword:     payload.NewPassword,
		ConfirmPassword: payload.ConfirmPassword,
	}); err != nil {
		return ctx.Render(a.Views.ResetPassword, a.viewData(router.ViewContext{
			"token":         payload.Token,
			"token_missing": payload.Token == "",
			"validation":    FormatValidationErrorToMap(err),
			"errors":        map[string]string{"reset": userMessage(err, "password reset failed")},
		}))
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Password updated, please sign in",
	}).Redirect(a.Routes.Login, fiber.StatusSeeOther)
}

func (a *AuthController) DashboardShow(ctx router.Context) error {
	return ctx.Render(a.Views.Dashboard, a.viewData(router.ViewContext{}))
}

func (a *AuthController) ProfileShow(ctx router.Context) error {
	return ctx.Render(a.Views.Profile, a.viewData(router.ViewContext{
		"errors": nil,
		"record": a.Store.User(),
	}))
}

func (a *AuthController) ProfilePost(ctx router.Context) error {
	payload := new(UpdateProfileRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("profile parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Profile, a.viewData(router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
			"record": payload,
		}))
	}

	update := NewUpdateProfileHandler(a.Client, a.Store).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	if err := update.Execute(ctx.Context(), UpdateProfileMessage{
		Nickname:    payload.Nickname,
		Name:        payload.Name,
		PhoneNumber: payload.PhoneNumber,
	}); err != nil {
		a.Logger.Error("profile update: ", "error", err)
		return ctx.Render(a.Views.Profile, a.viewData(router.ViewContext{
			"record":     payload,
			"validation": FormatValidationErrorToMap(err),
			"errors":     map[string]string{"profile": userMessage(err, "profile update failed")},
		}))
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Profile updated",
	}).Redirect(a.Routes.Profile, fiber.StatusSeeOther)
}

func (a *AuthController) PasswordPost(ctx router.Context) error {
	payload := new(ChangePasswordRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("password parse payload: ", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Profile, a.viewData(router.ViewContext{
			"errors": map[string]string{"form": "Failed to parse form"},
		}))
	}

	change := NewChangePasswordHandler(a.Client, a.Store).
		WithActivitySink(a.Activity).
		WithLogger(a.Logger)

	if err := change.Execute(ctx.Context(), ChangePasswordMessage{
		CurrentPassword:    payload.CurrentPassword,
		NewPassword:        payload.NewPassword,
		ConfirmNewPassword: payload.ConfirmNewPassword,
	}); err != nil {
		a.Logger.Error("password change: ", "error", err)
		return ctx.Render(a.Views.Profile, a.viewData(router.ViewContext{
			"record":     a.Store.User(),
			"validation": FormatValidationErrorToMap(err),
			"errors":     map[string]string{"password": userMessage(err, "password change failed")},
		}))
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Password changed",
	}).Redirect(a.Routes.Profile, fiber.StatusSeeOther)
}

func (a *AuthController) viewData(data router.ViewContext) router.ViewContext {
	return MergeSessionData(a.Store, data)
}

func defaultErrHandler(c router.Context, err error) error {
	return c.Render("errors/500", router.ViewContext{
		"message": err.Error(),
	})
}

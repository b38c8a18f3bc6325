package authfront

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// GuardDecision is the outcome of evaluating a guard for one navigation.
type GuardDecision int

const (
	// DecisionUnresolved means the guard has not been evaluated.
	DecisionUnresolved GuardDecision = iota
	// DecisionAdmitted means the wrapped content may render.
	DecisionAdmitted
	// DecisionRedirected means navigation must be sent elsewhere.
	DecisionRedirected
)

func (d GuardDecision) String() string {
	switch d {
	case DecisionAdmitted:
		return "admitted"
	case DecisionRedirected:
		return "redirected"
	default:
		return "unresolved"
	}
}

// Guard decides admission for a navigable subtree. The decision is a pure
// function of the authenticated flag, evaluated once per navigation against
// currently loaded session state. No network round-trip verifies the
// credential here; an invalid token surfaces later as a 401.
type Guard interface {
	Evaluate(authenticated bool) GuardDecision
}

type authenticatedOnlyGuard struct{}

func (authenticatedOnlyGuard) Evaluate(authenticated bool) GuardDecision {
	if authenticated {
		return DecisionAdmitted
	}
	return DecisionRedirected
}

type guestOnlyGuard struct{}

func (guestOnlyGuard) Evaluate(authenticated bool) GuardDecision {
	if authenticated {
		return DecisionRedirected
	}
	return DecisionAdmitted
}

// AuthenticatedOnly returns the guard admitting only authenticated sessions.
func AuthenticatedOnly() Guard { return authenticatedOnlyGuard{} }

// GuestOnly returns the guard admitting only unauthenticated sessions.
func GuestOnly() Guard { return guestOnlyGuard{} }

// RouteGuard composes the two guard variants around router middleware and
// owns the navigation-intent cookie that remembers where a rejected visitor
// was originally headed.
type RouteGuard struct {
	session SessionReader
	cfg     Config
	Logger  Logger
}

func NewRouteGuard(session SessionReader, cfg Config) *RouteGuard {
	if cfg == nil {
		cfg = SimpleConfig{}
	}
	return &RouteGuard{
		session: session,
		cfg:     cfg,
		Logger:  defLogger{},
	}
}

func (g *RouteGuard) WithLogger(logger Logger) *RouteGuard {
	if logger != nil {
		g.Logger = logger
	}
	return g
}

// Protected admits authenticated sessions; everyone else is remembered and
// sent to the login page.
func (g *RouteGuard) Protected() router.MiddlewareFunc {
	guard := AuthenticatedOnly()
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if guard.Evaluate(g.session.IsAuthenticated()) == DecisionAdmitted {
				if snap := g.session.Snapshot(); snap.User != nil {
					ctx.SetContext(WithContext(ctx.Context(), snap.User))
				}
				return next(ctx)
			}

			g.SetRedirect(ctx)
			return ctx.Redirect(g.cfg.GetLoginPath(), http.StatusSeeOther)
		}
	}
}

// Guest admits unauthenticated sessions; an authenticated visitor is sent to
// their remembered destination, or the default landing page.
func (g *RouteGuard) Guest() router.MiddlewareFunc {
	guard := GuestOnly()
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if guard.Evaluate(g.session.IsAuthenticated()) == DecisionAdmitted {
				return next(ctx)
			}

			return ctx.Redirect(g.GetRedirect(ctx, g.cfg.GetDefaultLanding()), http.StatusSeeOther)
		}
	}
}

// SetRedirect records the originally requested path so login can return the
// user to it. The intent is ephemeral: short TTL, consumed on first read.
func (g *RouteGuard) SetRedirect(ctx router.Context) {
	rejectedRoute := g.cfg.GetRejectedRouteKey()

	g.Logger.Info("setting redirect cookie", "key", rejectedRoute, "path", ctx.OriginalURL())

	ctx.Cookie(&router.Cookie{
		Name:     rejectedRoute,
		Value:    ctx.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// GetRedirect consumes the navigation intent, falling back to def.
func (g *RouteGuard) GetRedirect(ctx router.Context, def string) string {
	rejectedRoute := g.cfg.GetRejectedRouteKey()
	r := ctx.Cookies(rejectedRoute)
	if r == "" {
		return def
	}
	g.cookieDel(ctx, rejectedRoute)
	return r
}

// GetRedirectOrDefault consumes the navigation intent, falling back to the
// configured default landing path.
func (g *RouteGuard) GetRedirectOrDefault(ctx router.Context) string {
	return g.GetRedirect(ctx, g.cfg.GetDefaultLanding())
}

func (g *RouteGuard) cookieDel(ctx router.Context, name string) {
	ctx.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

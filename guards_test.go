package authfront_test

import (
	"net/http"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authfront "github.com/hsapp/go-authfront"
)

func TestGuardEvaluate(t *testing.T) {
	cases := []struct {
		name          string
		guard         authfront.Guard
		authenticated bool
		want          authfront.GuardDecision
	}{
		{"authenticated-only admits signed in", authfront.AuthenticatedOnly(), true, authfront.DecisionAdmitted},
		{"authenticated-only redirects guests", authfront.AuthenticatedOnly(), false, authfront.DecisionRedirected},
		{"guest-only admits guests", authfront.GuestOnly(), false, authfront.DecisionAdmitted},
		{"guest-only redirects signed in", authfront.GuestOnly(), true, authfront.DecisionRedirected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.guard.Evaluate(tc.authenticated))
		})
	}
}

func TestGuardDecisionString(t *testing.T) {
	assert.Equal(t, "unresolved", authfront.DecisionUnresolved.String())
	assert.Equal(t, "admitted", authfront.DecisionAdmitted.String())
	assert.Equal(t, "redirected", authfront.DecisionRedirected.String())
}

func protectedHandler(guard *authfront.RouteGuard) router.HandlerFunc {
	return guard.Protected()(func(ctx router.Context) error {
		return ctx.SendString("protected content")
	})
}

func guestHandler(guard *authfront.RouteGuard) router.HandlerFunc {
	return guard.Guest()(func(ctx router.Context) error {
		return ctx.SendString("guest content")
	})
}

func TestProtectedAdmitsAuthenticated(t *testing.T) {
	user := &authfront.User{Email: "test@example.com"}
	guard := authfront.NewRouteGuard(stubSession{
		authenticated: true,
		user:          user,
		token:         "tok",
	}, nil)

	ctx := newFakeContext()
	require.NoError(t, protectedHandler(guard)(ctx))

	assert.Equal(t, "protected content", ctx.sent)
	assert.Empty(t, ctx.redirectedTo)

	// The admitted user is visible downstream through the request context.
	got, ok := authfront.FromContext(ctx.Context())
	require.True(t, ok)
	assert.Equal(t, "test@example.com", got.Email)
}

func TestProtectedRedirectsAndRemembersIntent(t *testing.T) {
	guard := authfront.NewRouteGuard(stubSession{authenticated: false}, nil)

	ctx := newFakeContext()
	ctx.originalURL = "/profile"

	require.NoError(t, protectedHandler(guard)(ctx))

	assert.Empty(t, ctx.sent)
	assert.Equal(t, "/login", ctx.redirectedTo)
	assert.Equal(t, http.StatusSeeOther, ctx.redirectStatus)
	assert.Equal(t, "/profile", ctx.cookies[authfront.DefaultRejectedRouteKey])

	require.Len(t, ctx.setCookies, 1)
	cookie := ctx.setCookies[0]
	assert.True(t, cookie.HTTPOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "Lax", cookie.SameSite)
}

func TestGuestAdmitsUnauthenticated(t *testing.T) {
	guard := authfront.NewRouteGuard(stubSession{authenticated: false}, nil)

	ctx := newFakeContext()
	require.NoError(t, guestHandler(guard)(ctx))

	assert.Equal(t, "guest content", ctx.sent)
	assert.Empty(t, ctx.redirectedTo)
}

func TestGuestRedirectsAuthenticatedToLanding(t *testing.T) {
	guard := authfront.NewRouteGuard(stubSession{authenticated: true}, nil)

	ctx := newFakeContext()
	require.NoError(t, guestHandler(guard)(ctx))

	assert.Empty(t, ctx.sent)
	assert.Equal(t, "/dashboard", ctx.redirectedTo)
	assert.Equal(t, http.StatusSeeOther, ctx.redirectStatus)
}

func TestGuestRedirectsToRememberedIntent(t *testing.T) {
	guard := authfront.NewRouteGuard(stubSession{authenticated: true}, nil)

	ctx := newFakeContext()
	ctx.cookies[authfront.DefaultRejectedRouteKey] = "/profile"

	require.NoError(t, guestHandler(guard)(ctx))

	assert.Equal(t, "/profile", ctx.redirectedTo)

	// The intent is consumed on first read.
	_, stillThere := ctx.cookies[authfront.DefaultRejectedRouteKey]
	assert.False(t, stillThere)
}

func TestInterceptedNavigationRoundTrip(t *testing.T) {
	// A guest asks for /profile, is bounced to login, signs in, and lands on
	// /profile rather than the default page.
	guard := authfront.NewRouteGuard(stubSession{authenticated: false}, nil)

	ctx := newFakeContext()
	ctx.originalURL = "/profile"

	require.NoError(t, protectedHandler(guard)(ctx))
	require.Equal(t, "/login", ctx.redirectedTo)

	// Same browser, next request carries the cookie back.
	after := newFakeContext()
	after.cookies = ctx.cookies

	assert.Equal(t, "/profile", guard.GetRedirectOrDefault(after))

	// Once consumed, the default landing takes over.
	assert.Equal(t, "/dashboard", guard.GetRedirectOrDefault(after))
}

func TestRouteGuardCustomConfig(t *testing.T) {
	cfg := authfront.SimpleConfig{
		LoginPath:        "/account/sign-in",
		DefaultLanding:   "/home",
		RejectedRouteKey: "return_to",
	}
	guard := authfront.NewRouteGuard(stubSession{authenticated: false}, cfg)

	ctx := newFakeContext()
	ctx.originalURL = "/settings"

	require.NoError(t, protectedHandler(guard)(ctx))

	assert.Equal(t, "/account/sign-in", ctx.redirectedTo)
	assert.Equal(t, "/settings", ctx.cookies["return_to"])
}

// Package authfront implements the client half of a token-based
// authentication front-end: a session store with durable persistence, a
// credential-attaching HTTP transport, route authorization guards, and the
// request/response operations that keep all of it consistent with a remote
// token-issuing service.
//
// Session store:
//   - Store holds the current user identity, the bearer credential, and the
//     authenticated flag. Every mutation persists the {user, token,
//     authenticated} subset to a Storage implementation under a fixed
//     namespace. Absent or corrupt stored data hydrates to an empty session,
//     never an error.
//
// Credential transport:
//   - CredentialTransport wraps an http.RoundTripper and re-reads Storage on
//     every request so multiple processes sharing the same storage stay
//     eventually consistent. A 401 from a non-auth endpoint clears the stored
//     session and navigates to the login entry point; auth endpoints and the
//     login/signup pages themselves are exempt to avoid redirect loops.
//
// Route guards:
//   - Guard evaluates the authenticated flag into an admit-or-redirect
//     decision, synchronously, with no network round-trip. RouteGuard adapts
//     the two variants (authenticated-only, guest-only) to router middleware,
//     carrying the originally requested path through a short-lived cookie so
//     a successful login can return the user to it.
package authfront

package authfront

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// Client talks to the token-issuing backend. Wire the http.Client with a
// CredentialTransport so every call carries the stored bearer credential and
// 401 handling stays global.
type Client struct {
	baseURL string
	http    *http.Client
	logger  Logger
	debug   bool
}

type ClientOption func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClientLogger overrides the logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request/response dumps.
func WithDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.debug = debug
	}
}

func NewClient(cfg Config, opts ...ClientOption) *Client {
	if cfg == nil {
		cfg = SimpleConfig{}
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.GetBaseURL(), "/"),
		http:    http.DefaultClient,
		logger:  defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c
}

// SignUp registers a new account. The created user is returned but no
// credential is issued; the caller still has to log in.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	user := &User{}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login exchanges credentials for a bearer token plus the user record.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenGrant, error) {
	grant := &TokenGrant{}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// Logout invalidates the server-side session. Local state is the Store's
// problem, not ours.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Refresh trades the current credential for a fresh one.
func (c *Client) Refresh(ctx context.Context) (*TokenGrant, error) {
	grant := &TokenGrant{}
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// UpdateProfile replaces the mutable profile fields, returning the updated
// user record.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	user := &User{}
	if err := c.do(ctx, http.MethodPut, "/auth/profile", req, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword rotates the signed-in user's password.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "/auth/password", req, nil)
}

// RequestPasswordReset asks the backend to mail a reset link.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/password/reset-request", PasswordResetRequest{Email: email}, nil)
}

// ResetPassword finalizes a reset using the mailed token.
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/password/reset", req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "request failed")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "unable to read response")
	}

	var env Envelope
	if len(payload) > 0 {
		// A body that isn't the standard envelope is tolerated; the status
		// code alone decides success.
		if err := json.Unmarshal(payload, &env); err != nil {
			c.logger.Debug("non-envelope response from %s %s", method, path)
		}
	}

	if c.debug {
		c.logger.Debug("%s %s -> %d\n%s", method, path, resp.StatusCode, print.MaybePrettyJSON(env))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ServerError(resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "unable to parse response payload")
		}
	}

	return nil
}

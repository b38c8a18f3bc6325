package authfront

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// CredentialTransport decorates an http.RoundTripper so every outbound API
// call carries the persisted bearer credential, and authorization failures
// are handled in one place instead of per screen.
//
// The token is re-read from Storage on every request, deliberately: storage
// is the only thing shared between concurrent instances of the front-end, so
// reparsing it per request is what keeps them eventually consistent. Do not
// cache it here.
type CredentialTransport struct {
	base       http.RoundTripper
	storage    Storage
	navigator  Navigator
	cfg        Config
	logger     Logger
	activity   ActivitySink
	invalidate func()
}

var _ http.RoundTripper = (*CredentialTransport)(nil)

type TransportOption func(*CredentialTransport)

// WithBaseTransport overrides the wrapped transport, which defaults to
// http.DefaultTransport.
func WithBaseTransport(base http.RoundTripper) TransportOption {
	return func(t *CredentialTransport) {
		if base != nil {
			t.base = base
		}
	}
}

// WithTransportLogger overrides the logger.
func WithTransportLogger(logger Logger) TransportOption {
	return func(t *CredentialTransport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithTransportActivitySink forwards session-expiry events to the sink.
func WithTransportActivitySink(sink ActivitySink) TransportOption {
	return func(t *CredentialTransport) {
		t.activity = sink
	}
}

// WithTransportSessionInvalidator registers a callback run after a 401
// teardown clears the persisted session. A Store sharing this transport's
// storage keeps its own in-memory state, so it must be told to reset too;
// pass its Logout method here.
func WithTransportSessionInvalidator(fn func()) TransportOption {
	return func(t *CredentialTransport) {
		t.invalidate = fn
	}
}

func NewCredentialTransport(storage Storage, navigator Navigator, cfg Config, opts ...TransportOption) *CredentialTransport {
	if cfg == nil {
		cfg = SimpleConfig{}
	}

	t := &CredentialTransport{
		base:      http.DefaultTransport,
		storage:   storage,
		navigator: navigator,
		cfg:       cfg,
		logger:    defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	return t
}

func (t *CredentialTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per RoundTripper contract the original request is not mutated.
	out := req.Clone(req.Context())
	out.Header.Set(requestIDHeader, uuid.NewString())

	if token := t.currentToken(out); token != "" {
		out.Header.Set("Authorization", t.cfg.GetAuthScheme()+" "+token)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		// Transport failures are the caller's to handle locally.
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !t.exempt(out) {
		t.logger.Info("authorization failure on %s, clearing session", out.URL.Path)

		// Reset in-memory state first so a later persist cannot
		// resurrect the credential, then drop the stored copy.
		if t.invalidate != nil {
			t.invalidate()
		}
		if err := t.storage.Clear(out.Context()); err != nil {
			t.logger.Warn("unable to clear stored session: %v", err)
		}

		recordActivity(out.Context(), t.activity, t.logger, ActivityEvent{
			EventType: ActivityEventSessionExpired,
			Metadata:  map[string]any{"path": out.URL.Path},
		})

		if t.navigator != nil {
			t.navigator.NavigateTo(t.cfg.GetLoginPath())
		}
	}

	return resp, nil
}

// currentToken reads and defensively parses the persisted session. Malformed
// or missing data means the request simply proceeds unauthenticated.
func (t *CredentialTransport) currentToken(req *http.Request) string {
	if t.storage == nil {
		return ""
	}

	data, err := t.storage.Load(req.Context())
	if err != nil {
		if err != ErrNoStoredSession {
			t.logger.Debug("session load failed: %v", err)
		}
		return ""
	}

	snap, ok := DecodeSnapshot(data)
	if !ok {
		t.logger.Debug("ignoring unreadable persisted session")
		return ""
	}

	return snap.AccessToken
}

// exempt reports whether a 401 on this request should be left to the caller:
// credential-establishing endpoints fail with 401 as part of their normal
// contract, and redirecting while already on an auth page would loop.
func (t *CredentialTransport) exempt(req *http.Request) bool {
	path := req.URL.Path
	if strings.Contains(path, "/auth/login") || strings.Contains(path, "/auth/signup") {
		return true
	}

	if t.navigator == nil {
		return false
	}

	current := t.navigator.CurrentPath()
	return current == t.cfg.GetLoginPath() || current == t.cfg.GetSignupPath()
}

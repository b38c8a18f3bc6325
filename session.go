package authfront

import (
	"encoding/json"
	"fmt"
)

// SessionState is the full in-memory session: identity, credential, the
// derived authenticated flag, plus transient UI state that never persists.
type SessionState struct {
	User            *User  `json:"user,omitempty"`
	AccessToken     string `json:"accessToken,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	IsLoading       bool   `json:"-"`
	Error           string `json:"-"`
}

// SessionSnapshot is the subset of SessionState written to durable storage.
// It must round-trip exactly and is only ever written whole.
type SessionSnapshot struct {
	User            *User  `json:"user,omitempty"`
	AccessToken     string `json:"accessToken,omitempty"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Authenticated reports whether the snapshot carries both an identity and a
// credential. The persisted flag is rederived from this on hydration so a
// tampered or stale record cannot produce a half-authenticated session.
func (s SessionSnapshot) Authenticated() bool {
	return s.User != nil && s.AccessToken != ""
}

func (s SessionSnapshot) IsZero() bool {
	return s.User == nil && s.AccessToken == "" && !s.IsAuthenticated
}

func (s SessionSnapshot) String() string {
	email := "<nil>"
	if s.User != nil {
		email = s.User.Email
	}
	return fmt.Sprintf("user=%s authenticated=%t token_present=%t",
		email,
		s.IsAuthenticated,
		s.AccessToken != "",
	)
}

// EncodeSnapshot serializes a snapshot for storage.
func EncodeSnapshot(s SessionSnapshot) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses stored bytes defensively: absent, empty, or malformed
// data yields (zero, false) rather than an error, since stored state is
// best-effort and "no session" is always a safe answer.
func DecodeSnapshot(data []byte) (SessionSnapshot, bool) {
	if len(data) == 0 {
		return SessionSnapshot{}, false
	}

	var snap SessionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return SessionSnapshot{}, false
	}

	snap.IsAuthenticated = snap.Authenticated()
	return snap, true
}

package authfront

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Storage is the durable record the session state is persisted to. A single
// payload lives under a fixed namespace key; there is no locking across
// processes sharing the same storage, last writer wins.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// Navigator abstracts the navigation surface the interceptor acts on: where
// the user currently is and how to force them somewhere else.
type Navigator interface {
	CurrentPath() string
	NavigateTo(path string)
}

// SessionReader is the read side of the store, all the guards need.
type SessionReader interface {
	IsAuthenticated() bool
	Snapshot() SessionSnapshot
}

// Config holds front-end auth options
type Config interface {
	GetBaseURL() string
	GetAuthScheme() string
	GetStorageKey() string
	GetLoginPath() string
	GetSignupPath() string
	GetDefaultLanding() string
	GetRejectedRouteKey() string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTHFRONT "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTHFRONT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTHFRONT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTHFRONT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}

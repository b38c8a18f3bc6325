package main

import (
	"sync"

	authfront "github.com/hsapp/go-authfront"
)

// serverNavigator records forced navigations from the credential transport.
// In a server rendered deployment the actual teardown happens through the
// transport's session invalidator (the store's Logout), after which the
// route guards reject the next request; the navigator keeps the forced
// destination visible for diagnostics.
type serverNavigator struct {
	mu      sync.RWMutex
	current string
	logger  authfront.Logger
}

var _ authfront.Navigator = (*serverNavigator)(nil)

func newServerNavigator(logger authfront.Logger) *serverNavigator {
	return &serverNavigator{logger: logger}
}

func (n *serverNavigator) CurrentPath() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

func (n *serverNavigator) NavigateTo(path string) {
	n.mu.Lock()
	n.current = path
	n.mu.Unlock()

	if n.logger != nil {
		n.logger.Info("forced navigation", "path", path)
	}
}

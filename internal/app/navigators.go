package app

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultSessionTTL is how long an idle visitor keeps its navigator.
const DefaultSessionTTL = 30 * time.Minute

// NavigatorsConfig contains configuration for the navigator registry.
type NavigatorsConfig struct {
	Navigator NavigatorConfig
	TTL       time.Duration
	Logger    *slog.Logger

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

type navigatorEntry struct {
	navigator *Navigator
	lastSeen  time.Time
}

// Navigators holds one Navigator per visitor session.
// Sessions idle for longer than TTL are evicted by Sweep, which Run calls
// periodically.
type Navigators struct {
	cfg    NavigatorConfig
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	// viewer serves direct lookups for sessions that never navigated. It is
	// shared and never navigates, so it holds no visitor state.
	viewer *Navigator

	mu      sync.Mutex
	entries map[string]*navigatorEntry
}

// NewNavigators creates an empty registry.
func NewNavigators(cfg NavigatorsConfig) *Navigators {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	navCfg := cfg.Navigator
	if navCfg.Logger == nil {
		navCfg.Logger = logger
	}

	return &Navigators{
		cfg:     navCfg,
		ttl:     ttl,
		now:     now,
		logger:  logger.With(slog.String("component", "app.Navigators")),
		viewer:  NewNavigator(navCfg),
		entries: make(map[string]*navigatorEntry),
	}
}

// Get returns the navigator of a session, creating it on first use.
func (r *Navigators) Get(sessionID string) *Navigator {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	if entry, ok := r.entries[sessionID]; ok {
		entry.lastSeen = now
		return entry.navigator
	}

	nav := NewNavigator(r.cfg)
	r.entries[sessionID] = &navigatorEntry{navigator: nav, lastSeen: now}

	return nav
}

// Peek returns the navigator of a session without creating one. Sessions
// that have not navigated get the shared viewer, which only looks quotes up
// and never animates. Page views go through Peek so that cookieless clients
// such as crawlers and link previews leave no entry behind.
func (r *Navigators) Peek(sessionID string) *Navigator {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[sessionID]; ok {
		entry.lastSeen = r.now()
		return entry.navigator
	}

	return r.viewer
}

// Len returns the number of live sessions.
func (r *Navigators) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

// Sweep evicts idle sessions and returns how many were removed.
func (r *Navigators) Sweep() int {
	r.mu.Lock()

	cutoff := r.now().Add(-r.ttl)

	var evicted []*Navigator

	for id, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			evicted = append(evicted, entry.navigator)
			delete(r.entries, id)
		}
	}

	r.mu.Unlock()

	for _, nav := range evicted {
		nav.Close()
	}

	return len(evicted)
}

// Close evicts every session.
func (r *Navigators) Close() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]*navigatorEntry)
	r.mu.Unlock()

	for _, entry := range entries {
		entry.navigator.Close()
	}
}

// Run sweeps idle sessions every half TTL until ctx is done.
// It always returns nil so it can run inside an errgroup.
func (r *Navigators) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.ttl / 2) //nolint:mnd // sweep twice per ttl
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Close()
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("evicted idle sessions", slog.Int("count", n), slog.Int("remaining", r.Len()))
			}
		}
	}
}

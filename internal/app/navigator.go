package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jsamuelsen/motivational-quotes/internal/domain"
	"github.com/jsamuelsen/motivational-quotes/internal/ports"
)

// ErrSuperseded is returned by a navigation that a newer navigation of the
// same navigator cancelled before it completed.
var ErrSuperseded = errors.New("navigation superseded")

// Action names a user navigation.
type Action string

const (
	ActionRandom   Action = "random"
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
)

// Metric outcomes.
const (
	outcomeOK         = "ok"
	outcomeNotFound   = "not_found"
	outcomeError      = "error"
	outcomeSuperseded = "superseded"
)

// Navigation is a destination for the client to move to.
// Replace means the destination takes the place of the current history entry.
type Navigation struct {
	Path    string `json:"path"`
	Replace bool   `json:"replace"`
}

// NotFoundNavigation is the replacing navigation for lookups that resolve to nothing.
func NotFoundNavigation() *Navigation {
	return &Navigation{Path: domain.NotFoundPath, Replace: true}
}

// NavigatorConfig contains configuration for a navigator.
type NavigatorConfig struct {
	Service    *QuoteService
	Resolver   *domain.Resolver
	Transition time.Duration
	Recorder   ports.NavigationRecorder
	Logger     *slog.Logger
}

// Navigator turns user actions into destinations for one visitor.
//
// At most one navigation is in flight: starting a navigation cancels the
// previous one, which then returns ErrSuperseded. The animating flag is set
// when a navigation starts and cleared Transition after the latest navigation
// settles, whatever its outcome.
type Navigator struct {
	service    *QuoteService
	resolver   *domain.Resolver
	transition time.Duration
	recorder   ports.NavigationRecorder
	logger     *slog.Logger

	mu        sync.Mutex
	seq       uint64
	cancel    context.CancelFunc
	animating bool
	timer     *time.Timer
	closed    bool
}

// NewNavigator creates a navigator.
// Panics if Service or Resolver is nil. Defaults logger to slog.Default() if nil.
func NewNavigator(cfg NavigatorConfig) *Navigator {
	if cfg.Service == nil {
		panic("Navigator: Service is required")
	}

	if cfg.Resolver == nil {
		panic("Navigator: Resolver is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transition := cfg.Transition
	if transition < 0 {
		transition = 0
	}

	return &Navigator{
		service:    cfg.Service,
		resolver:   cfg.Resolver,
		transition: transition,
		recorder:   cfg.Recorder,
		logger:     logger.With(slog.String("component", "app.Navigator")),
	}
}

// Random navigates to a random quote.
func (n *Navigator) Random(ctx context.Context) (*Navigation, error) {
	return n.navigate(ctx, ActionRandom, n.service.Random)
}

// Next navigates to the quote after currentID.
func (n *Navigator) Next(ctx context.Context, currentID string) (*Navigation, error) {
	return n.navigate(ctx, ActionNext, func(ctx context.Context) *Query {
		return n.service.Next(ctx, currentID)
	})
}

// Previous navigates to the quote before currentID.
func (n *Navigator) Previous(ctx context.Context, currentID string) (*Navigation, error) {
	return n.navigate(ctx, ActionPrevious, func(ctx context.Context) *Query {
		return n.service.Previous(ctx, currentID)
	})
}

// Navigate dispatches an action. currentID is ignored for ActionRandom.
func (n *Navigator) Navigate(ctx context.Context, action Action, currentID string) (*Navigation, error) {
	switch action {
	case ActionRandom:
		return n.Random(ctx)
	case ActionNext:
		return n.Next(ctx, currentID)
	case ActionPrevious:
		return n.Previous(ctx, currentID)
	default:
		return nil, domain.NewValidationErrorWithValue("action", "must be one of: random next previous", string(action))
	}
}

// Animating reports whether a transition is in progress.
func (n *Navigator) Animating() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.animating
}

// Close cancels any in-flight navigation and stops the pending transition.
func (n *Navigator) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	n.seq++

	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}

	n.animating = false
}

func (n *Navigator) navigate(ctx context.Context, action Action, start func(context.Context) *Query) (*Navigation, error) {
	navCtx, gen := n.begin(ctx)
	logger := n.logger.With(slog.String("action", string(action)))

	quote, err := start(navCtx).Wait(navCtx)
	superseded := n.settle(gen)

	switch {
	case superseded:
		logger.DebugContext(ctx, "navigation superseded")
		n.recordNavigation(action, outcomeSuperseded)

		return nil, ErrSuperseded
	case err != nil:
		logger.WarnContext(ctx, "navigation failed", slog.Any("error", err))
		n.recordNavigation(action, outcomeError)

		return nil, err
	case quote == nil:
		logger.InfoContext(ctx, "navigation target not found")
		n.recordNavigation(action, outcomeNotFound)

		return nil, nil //nolint:nilnil // no destination is a valid answer
	}

	nav := &Navigation{Path: n.resolver.BuildPath(quote)}
	logger.DebugContext(ctx, "navigating", slog.String("path", nav.Path))
	n.recordNavigation(action, outcomeOK)

	return nav, nil
}

// begin supersedes any in-flight navigation and raises the animating flag.
func (n *Navigator) begin(ctx context.Context) (context.Context, uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.cancel != nil {
		n.cancel()
	}

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}

	navCtx, cancel := context.WithCancel(ctx)
	n.cancel = cancel
	n.seq++
	n.animating = !n.closed

	return navCtx, n.seq
}

// settle reports whether gen was superseded. The latest navigation schedules
// the animating flag to drop after the transition.
func (n *Navigator) settle(gen uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.seq != gen {
		return true
	}

	n.cancel()
	n.cancel = nil

	if n.transition == 0 {
		n.animating = false
		return false
	}

	n.timer = time.AfterFunc(n.transition, func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		if n.seq == gen {
			n.animating = false
			n.timer = nil
		}
	})

	return false
}

// Lookup loads the quote addressed by id for a direct view.
// When nothing can be shown it returns the replacing not-found navigation
// instead of a quote. Identifiers that do not parse are not queried.
func (n *Navigator) Lookup(ctx context.Context, id string) (*domain.Quote, *Navigation, error) {
	if _, err := domain.ParseQuoteID(id); err != nil {
		n.logger.DebugContext(ctx, "skipping lookup of invalid id", slog.String("quote_id", id))
		n.recordLookup("id", outcomeNotFound)

		return nil, NotFoundNavigation(), nil
	}

	return n.lookup(ctx, "id", n.service.ByID(ctx, id))
}

// LookupPermalink loads the quote addressed by a slug pair for a direct view.
func (n *Navigator) LookupPermalink(ctx context.Context, authorSlug, quoteSlug string) (*domain.Quote, *Navigation, error) {
	if strings.TrimSpace(authorSlug) == "" || strings.TrimSpace(quoteSlug) == "" {
		n.recordLookup("permalink", outcomeNotFound)
		return nil, NotFoundNavigation(), nil
	}

	return n.lookup(ctx, "permalink", n.service.ByPermalink(ctx, authorSlug, quoteSlug))
}

func (n *Navigator) lookup(ctx context.Context, kind string, q *Query) (*domain.Quote, *Navigation, error) {
	quote, err := q.Wait(ctx)

	switch {
	case err != nil && domain.IsValidation(err):
		n.recordLookup(kind, outcomeNotFound)
		return nil, NotFoundNavigation(), nil
	case err != nil:
		n.recordLookup(kind, outcomeError)
		return nil, nil, err
	case quote == nil:
		n.recordLookup(kind, outcomeNotFound)
		return nil, NotFoundNavigation(), nil
	}

	n.recordLookup(kind, outcomeOK)

	return quote, nil, nil
}

// Path returns the canonical path of a quote.
func (n *Navigator) Path(q *domain.Quote) string {
	return n.resolver.BuildPath(q)
}

func (n *Navigator) recordNavigation(action Action, outcome string) {
	if n.recorder != nil {
		n.recorder.RecordNavigation(string(action), outcome)
	}
}

func (n *Navigator) recordLookup(kind, outcome string) {
	if n.recorder != nil {
		n.recorder.RecordLookup(kind, outcome)
	}
}

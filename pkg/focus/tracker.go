package focus

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/ports"
	"github.com/aretw0/navfocus/pkg/registry"
)

// Tracker decides which child route of one navigator is focused.
// It is not safe for concurrent use; dispatch is synchronous.
type Tracker struct {
	nav      ports.Navigation
	out      Output
	logger   *slog.Logger
	observer ports.Observer
	name     string
	now      func() time.Time

	// lastFocusedKey is only meaningful when determined is true.
	lastFocusedKey string
	determined     bool

	attached   bool
	subscriber ports.Subscriber
	subs       []*registry.Subscription
}

// New creates a tracker for nav delivering events to out.
func New(nav ports.Navigation, out Output, opts ...Option) *Tracker {
	t := &Tracker{
		nav:  nav,
		out:  out,
		name: "root",
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	t.logger = t.logger.With("navigator", t.name)
	return t
}

// Name returns the label given with WithName.
func (t *Tracker) Name() string {
	return t.name
}

// LastFocusedKey returns the child key this tracker last believed focused.
// ok is false while undetermined (before the first decision, or while blurred).
func (t *Tracker) LastFocusedKey() (key string, ok bool) {
	return t.lastFocusedKey, t.determined
}

// Attached reports whether Attach has been called without a matching Detach.
func (t *Tracker) Attached() bool {
	return t.attached
}

// Attach subscribes to the action, willFocus and willBlur notifications of the
// navigation object and resets the tracker to undetermined.
// Navigation objects that do not implement ports.Subscriber are tolerated.
func (t *Tracker) Attach() error {
	if t.attached {
		return domain.ErrAlreadyAttached
	}
	t.attached = true
	t.lastFocusedKey, t.determined = "", false

	sub, ok := t.nav.(ports.Subscriber)
	if !ok {
		t.logger.Debug("navigation object has no listeners, not subscribing")
		return nil
	}
	t.subscriber = sub

	t.subs = append(t.subs,
		sub.AddListener(domain.EventAction, func(p domain.Payload) {
			if err := t.HandleAction(p.TransitionPayload); err != nil {
				t.logger.Error("action dropped", "err", err)
			}
		}),
		sub.AddListener(domain.EventWillFocus, func(p domain.Payload) {
			if err := t.HandleWillFocus(p.TransitionPayload); err != nil {
				t.logger.Error("willFocus dropped", "err", err)
			}
		}),
		sub.AddListener(domain.EventWillBlur, func(p domain.Payload) {
			if err := t.HandleWillBlur(p.TransitionPayload); err != nil {
				t.logger.Error("willBlur dropped", "err", err)
			}
		}),
	)
	return nil
}

// Detach removes every subscription made by Attach. It is idempotent, so
// owners can defer it unconditionally.
func (t *Tracker) Detach() {
	if !t.attached {
		return
	}
	for _, s := range t.subs {
		t.subscriber.RemoveListener(s.EventType(), s)
	}
	t.subs = nil
	t.subscriber = nil
	t.attached = false
	t.lastFocusedKey, t.determined = "", false
}

// HandleAction processes a state change of this navigator.
func (t *Tracker) HandleAction(p domain.TransitionPayload) error {
	if err := p.State.Validate(); err != nil {
		return fmt.Errorf("handle action: %w", err)
	}
	current := *p.State.ActiveRoute()

	var previous *domain.Route
	if p.LastState != nil {
		if err := p.LastState.Validate(); err != nil {
			return fmt.Errorf("handle action: last state: %w", err)
		}
		prev := *p.LastState.ActiveRoute()
		previous = &prev
	}

	payload := domain.Enrich(p, current, previous)

	if previous == nil || previous.Key != current.Key {
		t.handleFocusedKey(current.Key, payload)
	}

	// Completion of an animated transition, independent of route-change detection.
	if settledNow(p.LastState, p.State) {
		if previous != nil {
			t.deliver(domain.EventDidBlur, previous.Key, payload)
		}
		t.deliver(domain.EventDidFocus, current.Key, payload)
	}

	t.deliver(domain.EventAction, current.Key, payload)
	return nil
}

// HandleWillFocus is invoked when the parent signals this subtree is gaining focus.
func (t *Tracker) HandleWillFocus(p domain.TransitionPayload) error {
	route, payload, err := t.ownRoute(p)
	if err != nil {
		return fmt.Errorf("handle willFocus: %w", err)
	}
	t.lastFocusedKey, t.determined = route.Key, true
	t.emitFocus(route.Key, payload)
	return nil
}

// HandleWillBlur is invoked when the parent signals this subtree is losing focus.
func (t *Tracker) HandleWillBlur(p domain.TransitionPayload) error {
	route, payload, err := t.ownRoute(p)
	if err != nil {
		return fmt.Errorf("handle willBlur: %w", err)
	}
	t.lastFocusedKey, t.determined = "", false
	t.emitBlur(route.Key, payload)
	return nil
}

// ownRoute returns this navigator's active route and a payload rebuilt from
// its own state rather than the parent's.
func (t *Tracker) ownRoute(p domain.TransitionPayload) (domain.Route, domain.Payload, error) {
	state := t.nav.State()
	if err := state.Validate(); err != nil {
		return domain.Route{}, domain.Payload{}, err
	}
	route := *state.ActiveRoute()

	var last *domain.Route
	if r := p.LastState.RouteByKey(route.Key); r != nil {
		prev := *r
		last = &prev
	}
	return route, domain.Enrich(p, route, last), nil
}

func (t *Tracker) handleFocusedKey(key string, payload domain.Payload) {
	previousKey, hadPrevious := t.lastFocusedKey, t.determined

	// Updated before any emission so re-entrant listeners see the new key.
	t.lastFocusedKey, t.determined = key, true

	// The root has nobody to send it willFocus.
	if !hadPrevious && t.nav.Parent() == nil {
		t.emitFocus(key, payload)
	}

	if hadPrevious && previousKey == key {
		return
	}
	if !t.nav.IsFocused() {
		t.logger.Debug("navigator not focused, suppressing focus change", "key", key)
		return
	}
	if !hadPrevious {
		// First determination below the root waits for the parent's willFocus.
		return
	}

	t.emitFocus(key, payload)
	t.emitBlur(previousKey, payload)
}

func (t *Tracker) emitFocus(target string, payload domain.Payload) {
	t.deliver(domain.EventWillFocus, target, payload)
	if !t.nav.State().Animated() {
		t.deliver(domain.EventDidFocus, target, payload)
	}
}

func (t *Tracker) emitBlur(target string, payload domain.Payload) {
	t.deliver(domain.EventWillBlur, target, payload)
	if !t.nav.State().Animated() {
		t.deliver(domain.EventDidBlur, target, payload)
	}
}

func (t *Tracker) deliver(eventType domain.EventType, target string, payload domain.Payload) {
	t.logger.Debug("emit", "event", eventType, "target", target, "context", payload.Context)

	// Observed before delivery so records follow emission order even when a
	// listener cascades into a nested tracker.
	if t.observer != nil {
		t.observer.Observe(domain.LifecycleEvent{
			Timestamp: t.now(),
			Navigator: t.name,
			Type:      eventType,
			Target:    target,
			Context:   payload.Context,
			Action:    payload.Action.Type,
			Animated:  t.nav.State().Animated(),
		})
	}
	t.out.deliver(eventType, target, payload)
}

// settledNow reports whether IsTransitioning changed between last and next and
// is now false.
func settledNow(last, next *domain.NavigationState) bool {
	if !next.Settled() {
		return false
	}
	if last == nil || last.IsTransitioning == nil {
		return true
	}
	return *last.IsTransitioning != *next.IsTransitioning
}

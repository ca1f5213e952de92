package navigator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/ports"
	"github.com/aretw0/navfocus/pkg/registry"
)

// ActionInit is the action type dispatched by Start.
const ActionInit = "Navigation/INIT"

// rootTarget is the key under which the container addresses the root navigator.
const rootTarget = "root"

var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("container already started")

	// ErrNotStarted is returned when dispatching before Start.
	ErrNotStarted = errors.New("container not started")

	// ErrClosed is returned when using a closed container.
	ErrClosed = errors.New("container closed")
)

// Container owns the committed navigation state and the navigator tree mounted over it.
// It is not safe for concurrent use.
type Container struct {
	state    *domain.NavigationState
	events   *registry.Registry
	root     *Navigator
	logger   *slog.Logger
	observer ports.Observer
	started  bool
	closed   bool
}

// NewContainer validates the initial state and mounts the navigator tree over it.
func NewContainer(initial *domain.NavigationState, opts ...Option) (*Container, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial state: %w", err)
	}

	c := &Container{
		state:  initial.Clone(),
		events: registry.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c.root = newNavigator(c, nil, "", c.events.Create(rootTarget))
	if err := c.root.mount(); err != nil {
		return nil, err
	}
	c.root.mountMissing()
	return c, nil
}

// Root returns the root navigator.
func (c *Container) Root() *Navigator {
	return c.root
}

// State returns a copy of the committed root state.
func (c *Container) State() *domain.NavigationState {
	return c.state.Clone()
}

// Start notifies the tree of its initial state, which focuses the initial
// route at every level.
func (c *Container) Start() error {
	if c.closed {
		return ErrClosed
	}
	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true
	c.logger.Debug("container started", "route", c.state.ActiveRoute().Key)
	c.notify(domain.Action{Type: ActionInit}, nil)
	return nil
}

// Dispatch commits next, produced by an external reducer for action, and
// notifies the tree of the change.
func (c *Container) Dispatch(action domain.Action, next *domain.NavigationState) error {
	switch {
	case c.closed:
		return ErrClosed
	case !c.started:
		return ErrNotStarted
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("dispatch %s: %w", action.Type, err)
	}

	last := c.state
	c.state = next.Clone()

	// New navigators are mounted before the notification so they can receive
	// their parent's willFocus; vanished ones are unmounted after it so they
	// can still receive willBlur.
	c.root.mountMissing()
	c.notify(action, last)
	c.root.unmountVanished()

	c.logger.Debug("dispatched", "action", action.Type, "path", c.FocusPath())
	return nil
}

// Close unmounts the whole tree. It is idempotent.
func (c *Container) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.root.Unmount()
}

// FocusPath returns the route keys from the root to the focused leaf as
// believed by the trackers. It is empty before Start.
func (c *Container) FocusPath() []string {
	var path []string
	for nav := c.root; nav != nil && nav.tracker != nil; {
		key, ok := nav.tracker.LastFocusedKey()
		if !ok {
			break
		}
		path = append(path, key)
		nav = nav.children[key]
	}
	return path
}

// Navigator returns the mounted navigator at the given route-key path.
func (c *Container) Navigator(path ...string) (*Navigator, error) {
	nav := c.root
	for _, key := range path {
		child, ok := nav.children[key]
		if !ok {
			return nil, fmt.Errorf("%w: %v", domain.ErrNotMounted, path)
		}
		nav = child
	}
	return nav, nil
}

func (c *Container) notify(action domain.Action, last *domain.NavigationState) {
	c.events.Emit(domain.EventAction, registry.Envelope{
		Target: rootTarget,
		Data: domain.Payload{
			TransitionPayload: domain.TransitionPayload{
				Type:      string(domain.EventAction),
				Action:    action,
				State:     c.state,
				LastState: last,
			},
		},
	})
}

package navigator

import (
	"sort"
	"strings"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/focus"
	"github.com/aretw0/navfocus/pkg/ports"
	"github.com/aretw0/navfocus/pkg/registry"
)

// Navigator is one level of the tree. It is the navigation object of its
// tracker and the emitter its children listen to.
type Navigator struct {
	container *Container
	parent    *Navigator
	key       string
	path      []string

	inbound  *registry.Channel
	outbound *registry.Registry
	tracker  *focus.Tracker
	children map[string]*Navigator

	// lastKnown keeps the state of a navigator whose route was removed, so
	// it can still answer while being blurred and unmounted.
	lastKnown *domain.NavigationState
	mounted   bool
}

var (
	_ ports.Navigation = (*Navigator)(nil)
	_ ports.Subscriber = (*Navigator)(nil)
)

func newNavigator(c *Container, parent *Navigator, key string, inbound *registry.Channel) *Navigator {
	n := &Navigator{
		container: c,
		parent:    parent,
		key:       key,
		inbound:   inbound,
		outbound:  registry.New(),
		children:  make(map[string]*Navigator),
	}
	if parent != nil {
		n.path = append(append([]string{}, parent.path...), key)
	}

	opts := []focus.Option{
		focus.WithName(n.Name()),
		focus.WithLogger(c.logger),
	}
	if c.observer != nil {
		opts = append(opts, focus.WithObserver(c.observer))
	}
	n.tracker = focus.New(n, focus.ToEmitter(n.outbound), opts...)
	return n
}

// Name returns the route-key path of the navigator, "root" for the root.
func (n *Navigator) Name() string {
	if len(n.path) == 0 {
		return rootTarget
	}
	return strings.Join(n.path, "/")
}

// Key returns the key of the route hosting this navigator ("" for the root).
func (n *Navigator) Key() string {
	return n.key
}

// Path returns the route keys leading from the root to this navigator.
func (n *Navigator) Path() []string {
	return append([]string{}, n.path...)
}

// Mounted reports whether the navigator's tracker is attached.
func (n *Navigator) Mounted() bool {
	return n.mounted
}

// State returns the latest committed state of this navigator.
func (n *Navigator) State() *domain.NavigationState {
	if s, err := n.container.state.Resolve(n.path); err == nil {
		n.lastKnown = s
	}
	return n.lastKnown
}

// IsFocused reports whether this navigator is the active route of every ancestor.
func (n *Navigator) IsFocused() bool {
	if n.parent == nil {
		return true
	}
	if !n.parent.IsFocused() {
		return false
	}
	ps := n.parent.State()
	if ps.Validate() != nil {
		return false
	}
	return ps.ActiveRoute().Key == n.key
}

// Parent returns the parent navigator, or nil at the root.
func (n *Navigator) Parent() ports.Navigation {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// AddListener subscribes to notifications addressed to this navigator by its parent.
func (n *Navigator) AddListener(eventType domain.EventType, fn registry.Listener) *registry.Subscription {
	return n.inbound.AddListener(eventType, fn)
}

// RemoveListener removes a subscription made with AddListener.
func (n *Navigator) RemoveListener(eventType domain.EventType, sub *registry.Subscription) {
	n.inbound.RemoveListener(eventType, sub)
}

// Listen returns the channel carrying lifecycle events of one child route.
// Screens subscribe here.
func (n *Navigator) Listen(routeKey string) *registry.Channel {
	return n.outbound.Create(routeKey)
}

// Child returns the mounted navigator hosted by routeKey.
func (n *Navigator) Child(routeKey string) (*Navigator, bool) {
	c, ok := n.children[routeKey]
	return c, ok
}

// Children returns the keys of mounted child navigators in sorted order.
func (n *Navigator) Children() []string {
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LastFocusedKey exposes the tracker's belief about the focused child.
func (n *Navigator) LastFocusedKey() (string, bool) {
	return n.tracker.LastFocusedKey()
}

// Unmount detaches this navigator and all of its descendants.
func (n *Navigator) Unmount() {
	for _, key := range n.Children() {
		n.children[key].Unmount()
	}
	n.tracker.Detach()
	n.mounted = false
	if n.parent != nil {
		delete(n.parent.children, n.key)
	}
}

func (n *Navigator) mount() error {
	if n.mounted {
		return domain.ErrAlreadyMounted
	}
	if err := n.tracker.Attach(); err != nil {
		return err
	}
	n.mounted = true
	return nil
}

// mountMissing mounts a navigator for every nested state reachable from n.
func (n *Navigator) mountMissing() {
	state := n.State()
	if state == nil {
		return
	}
	for _, route := range state.Routes {
		if !route.IsNavigator() {
			continue
		}
		child, ok := n.children[route.Key]
		if !ok {
			child = newNavigator(n.container, n, route.Key, n.outbound.Create(route.Key))
			if err := child.mount(); err != nil {
				n.container.logger.Error("mount failed", "navigator", child.Name(), "err", err)
				continue
			}
			n.children[route.Key] = child
			n.container.logger.Debug("mounted", "navigator", child.Name())
		}
		child.mountMissing()
	}
}

// unmountVanished unmounts children whose route no longer hosts nested state.
func (n *Navigator) unmountVanished() {
	state, err := n.container.state.Resolve(n.path)
	for _, key := range n.Children() {
		child := n.children[key]
		if err != nil {
			child.Unmount()
			continue
		}
		if r := state.RouteByKey(key); r == nil || !r.IsNavigator() {
			n.container.logger.Debug("unmounted", "navigator", child.Name())
			child.Unmount()
			continue
		}
		child.unmountVanished()
	}
}

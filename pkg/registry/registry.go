// Package registry implements the per-navigator listener directory through
// which lifecycle events are broadcast to child routes.
package registry

import (
	"sync"

	"github.com/aretw0/navfocus/pkg/domain"
)

// Listener receives the payload of one emitted event.
type Listener func(domain.Payload)

// Envelope addresses an emitted payload to one target route key.
type Envelope struct {
	Target string
	Data   domain.Payload
}

// entry boxes a Listener so it has a comparable identity.
type entry struct {
	fn Listener
}

// Registry maps event type -> target key -> listeners in registration order.
// Listeners run synchronously on the emitting goroutine, outside the lock.
type Registry struct {
	mu        sync.RWMutex
	listeners map[domain.EventType]map[string][]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		listeners: make(map[domain.EventType]map[string][]*entry),
	}
}

// Create returns a subscription handle scoped to a single target key.
func (r *Registry) Create(target string) *Channel {
	return &Channel{registry: r, target: target}
}

// Emit delivers data to every listener registered under (eventType, env.Target).
// The listener list is copied before dispatch: listeners added or removed
// while dispatching only affect subsequent emits.
func (r *Registry) Emit(eventType domain.EventType, env Envelope) {
	r.mu.RLock()
	var snapshot []*entry
	if targets, ok := r.listeners[eventType]; ok {
		if list, ok := targets[env.Target]; ok {
			snapshot = make([]*entry, len(list))
			copy(snapshot, list)
		}
	}
	r.mu.RUnlock()

	for _, e := range snapshot {
		e.fn(env.Data)
	}
}

// Len returns the number of listeners registered under (eventType, target).
func (r *Registry) Len(eventType domain.EventType, target string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners[eventType][target])
}

func (r *Registry) add(eventType domain.EventType, target string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	targets, ok := r.listeners[eventType]
	if !ok {
		targets = make(map[string][]*entry)
		r.listeners[eventType] = targets
	}
	targets[target] = append(targets[target], e)
}

// remove drops the first occurrence of e. Absent type, target or entry is a no-op.
func (r *Registry) remove(eventType domain.EventType, target string, e *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	targets, ok := r.listeners[eventType]
	if !ok {
		return
	}
	list, ok := targets[target]
	if !ok {
		return
	}
	for i, candidate := range list {
		if candidate == e {
			// Build a fresh slice so snapshots taken by in-flight emits stay intact.
			next := make([]*entry, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(targets, target)
			} else {
				targets[target] = next
			}
			return
		}
	}
}

// Channel is the view of a Registry scoped to one target key.
type Channel struct {
	registry *Registry
	target   string
}

// Target returns the route key this channel is scoped to.
func (c *Channel) Target() string {
	return c.target
}

// AddListener registers fn under (eventType, target). Multiple listeners per
// pair are allowed and invoked in registration order. The returned
// Subscription is the listener's identity for RemoveListener.
func (c *Channel) AddListener(eventType domain.EventType, fn Listener) *Subscription {
	e := &entry{fn: fn}
	c.registry.add(eventType, c.target, e)
	return &Subscription{channel: c, eventType: eventType, entry: e}
}

// RemoveListener removes the listener identified by sub.
//
// Removing a subscription that was never registered here, or was already
// removed, is a silent no-op. This can hide a double unsubscribe.
func (c *Channel) RemoveListener(eventType domain.EventType, sub *Subscription) {
	if sub == nil {
		return
	}
	c.registry.remove(eventType, c.target, sub.entry)
}

// Subscription is the disposer returned by AddListener.
type Subscription struct {
	channel   *Channel
	eventType domain.EventType
	entry     *entry
}

// EventType returns the event type the subscription listens to.
func (s *Subscription) EventType() domain.EventType {
	return s.eventType
}

// Remove unregisters the listener. Calling it again is a no-op.
func (s *Subscription) Remove() {
	s.channel.RemoveListener(s.eventType, s)
}

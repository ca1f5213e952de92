package ports

import (
	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/registry"
)

// Navigation is the navigation object a focus tracker reads from.
type Navigation interface {
	// State returns the latest committed state of this navigator.
	State() *domain.NavigationState

	// IsFocused reports whether this navigator and all its ancestors are focused.
	IsFocused() bool

	// Parent returns the parent navigation object, or nil at the root.
	Parent() Navigation
}

// Subscriber is implemented by navigation objects that deliver the
// action, willFocus and willBlur notifications addressed to their navigator.
// A Navigation without it is tolerated: the tracker simply does not subscribe.
type Subscriber interface {
	AddListener(eventType domain.EventType, fn registry.Listener) *registry.Subscription
	RemoveListener(eventType domain.EventType, sub *registry.Subscription)
}

// Observer receives a record of every lifecycle event after it was delivered.
type Observer interface {
	Observe(event domain.LifecycleEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(domain.LifecycleEvent)

// Observe calls f(event).
func (f ObserverFunc) Observe(event domain.LifecycleEvent) {
	f(event)
}

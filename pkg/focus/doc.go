/*
Package focus implements focus propagation for one level of a navigator tree.

A Tracker belongs to one navigator. It listens to the action, willFocus and
willBlur notifications addressed to that navigator and decides which of the
navigator's child routes gains or loses focus. The resulting lifecycle events
are delivered through an Output, either broadcast through an Emitter (usually
a registry.Registry keyed by child route) or handed to a single Callback.

# Lifecycle

	tracker := focus.New(nav, focus.ToEmitter(children))
	if err := tracker.Attach(); err != nil {
		return err
	}
	defer tracker.Detach()

# Ordering

On a route switch the new route is focused before the old one is blurred:

	willFocus(B) didFocus(B) willBlur(A) didBlur(A)

Navigators whose state carries IsTransitioning only emit the will* half while
the transition runs; didBlur(previous) and didFocus(current) follow once
IsTransitioning flips back to false.

A nested navigator never emits focus events on its own first action: it waits
for its parent's willFocus so that screens hidden behind a sibling at a higher
level are never reported as focused. Only the root self-initiates.
*/
package focus

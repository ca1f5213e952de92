/*
Package domain contains the core domain models of the navfocus library.

It defines the navigation-state tree that the external reducer produces, the
payloads exchanged between navigator levels and the closed vocabulary of
lifecycle events. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Route: One screen instance, identified by a key unique among its siblings.
  - NavigationState: The ordered routes of one navigator and its active index.
  - TransitionPayload: One state change at one navigator level.
  - Payload: A TransitionPayload re-scoped to a child route, carrying a causal context string.
  - LifecycleEvent: A serialisable record of one emitted event, used by observers.
*/
package domain

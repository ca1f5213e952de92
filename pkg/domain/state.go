package domain

import (
	"fmt"
	"maps"
)

// Route identifies one screen instance.
type Route struct {
	// Key is unique among siblings and stable across re-renders.
	Key string `json:"key" mapstructure:"key"`

	// Name is the route name the screen was registered under (informational).
	Name string `json:"routeName,omitempty" mapstructure:"name"`

	Params map[string]any `json:"params,omitempty" mapstructure:"params"`

	// State is set when the route hosts a nested navigator.
	State *NavigationState `json:"state,omitempty" mapstructure:"state"`
}

// IsNavigator reports whether the route hosts a nested navigator.
func (r Route) IsNavigator() bool {
	return r.State != nil
}

// NavigationState is the state of one navigator.
type NavigationState struct {
	// Key identifies the navigator itself. Optional; the root has none.
	Key string `json:"key,omitempty" mapstructure:"key"`

	// Index points at the active child in Routes.
	Index int `json:"index" mapstructure:"index"`

	Routes []Route `json:"routes" mapstructure:"routes"`

	// IsTransitioning is nil for navigators without animated transitions.
	// Otherwise it is true while a transition is in flight and false once settled.
	IsTransitioning *bool `json:"isTransitioning,omitempty" mapstructure:"isTransitioning"`
}

// Transitioning returns a pointer suitable for NavigationState.IsTransitioning.
func Transitioning(v bool) *bool {
	return &v
}

// Validate checks the structural precondition every consumer relies on:
// at least one route and an index within bounds.
func (s *NavigationState) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil state", ErrMalformedState)
	}
	if len(s.Routes) == 0 {
		return fmt.Errorf("%w: no routes", ErrMalformedState)
	}
	if s.Index < 0 || s.Index >= len(s.Routes) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", ErrMalformedState, s.Index, len(s.Routes))
	}
	seen := make(map[string]struct{}, len(s.Routes))
	for i, r := range s.Routes {
		if r.Key == "" {
			return fmt.Errorf("%w: route %d has empty key", ErrMalformedState, i)
		}
		if _, dup := seen[r.Key]; dup {
			return fmt.Errorf("%w: duplicate route key %q", ErrMalformedState, r.Key)
		}
		seen[r.Key] = struct{}{}
		if r.State != nil {
			if err := r.State.Validate(); err != nil {
				return fmt.Errorf("route %q: %w", r.Key, err)
			}
		}
	}
	return nil
}

// ActiveRoute returns the route at Index. The state must be valid.
func (s *NavigationState) ActiveRoute() *Route {
	return &s.Routes[s.Index]
}

// RouteByKey returns the route with the given key, or nil.
func (s *NavigationState) RouteByKey(key string) *Route {
	if s == nil {
		return nil
	}
	for i := range s.Routes {
		if s.Routes[i].Key == key {
			return &s.Routes[i]
		}
	}
	return nil
}

// Animated reports whether the navigator has a transition concept,
// i.e. whether IsTransitioning carries a boolean.
func (s *NavigationState) Animated() bool {
	return s != nil && s.IsTransitioning != nil
}

// Settled reports whether IsTransitioning is present and false.
func (s *NavigationState) Settled() bool {
	return s.Animated() && !*s.IsTransitioning
}

// Clone returns a deep copy of the state tree.
func (s *NavigationState) Clone() *NavigationState {
	if s == nil {
		return nil
	}
	c := &NavigationState{
		Key:    s.Key,
		Index:  s.Index,
		Routes: make([]Route, len(s.Routes)),
	}
	if s.IsTransitioning != nil {
		c.IsTransitioning = Transitioning(*s.IsTransitioning)
	}
	for i, r := range s.Routes {
		c.Routes[i] = Route{
			Key:    r.Key,
			Name:   r.Name,
			Params: maps.Clone(r.Params),
			State:  r.State.Clone(),
		}
	}
	return c
}

// Resolve walks the state tree along a path of route keys and returns the
// nested state found at its end. An empty path returns s itself.
func (s *NavigationState) Resolve(path []string) (*NavigationState, error) {
	cur := s
	for _, key := range path {
		r := cur.RouteByKey(key)
		if r == nil {
			return nil, fmt.Errorf("%w: %q", ErrRouteNotFound, key)
		}
		if r.State == nil {
			return nil, fmt.Errorf("%w: %q", ErrNotNavigator, key)
		}
		cur = r.State
	}
	return cur, nil
}

package domain

import (
	"fmt"
	"time"
)

// EventType defines the category of a lifecycle event.
type EventType string

// The event vocabulary is fixed and closed.
const (
	EventAction    EventType = "action"
	EventWillFocus EventType = "willFocus"
	EventDidFocus  EventType = "didFocus"
	EventWillBlur  EventType = "willBlur"
	EventDidBlur   EventType = "didBlur"
)

// EventTypes lists the vocabulary in a stable order.
var EventTypes = []EventType{EventAction, EventWillFocus, EventDidFocus, EventWillBlur, EventDidBlur}

// ParseEventType converts a string into an EventType of the closed vocabulary.
func ParseEventType(s string) (EventType, error) {
	for _, t := range EventTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEventType, s)
}

// IsFocusEvent reports whether t belongs to the focus half of the lifecycle.
func (t EventType) IsFocusEvent() bool {
	return t == EventWillFocus || t == EventDidFocus
}

// IsBlurEvent reports whether t belongs to the blur half of the lifecycle.
func (t EventType) IsBlurEvent() bool {
	return t == EventWillBlur || t == EventDidBlur
}

// Action is the reducer action that caused a state change.
// navfocus never interprets it beyond its Type.
type Action struct {
	Type   string         `json:"type" mapstructure:"type"`
	Params map[string]any `json:"params,omitempty" mapstructure:"params"`
}

// TransitionPayload describes one state change at one navigator level.
type TransitionPayload struct {
	Type      string           `json:"type"`
	Action    Action           `json:"action"`
	State     *NavigationState `json:"state"`
	LastState *NavigationState `json:"lastState,omitempty"`
	Context   string           `json:"context,omitempty"`
}

// Payload is the data delivered with every lifecycle event.
//
// It is a TransitionPayload re-scoped to a child route: State and LastState are
// the nested states of Route and LastRoute (nil for leaf screens), so a nested
// navigator can consume it as its own TransitionPayload.
type Payload struct {
	TransitionPayload
	Route     Route  `json:"route"`
	LastRoute *Route `json:"lastRoute,omitempty"`
}

// RootContext terminates every context chain.
const RootContext = "Root"

// BuildContext returns the causal trace tag "<routeKey>:<actionType>_<parent-or-Root>".
func BuildContext(routeKey, actionType, parent string) string {
	if parent == "" {
		parent = RootContext
	}
	return routeKey + ":" + actionType + "_" + parent
}

// Enrich builds the Payload delivered to children for the given current and
// previous child routes of a transition.
func Enrich(p TransitionPayload, current Route, previous *Route) Payload {
	out := Payload{
		TransitionPayload: TransitionPayload{
			Type:    p.Type,
			Action:  p.Action,
			State:   current.State,
			Context: BuildContext(current.Key, p.Action.Type, p.Context),
		},
		Route:     current,
		LastRoute: previous,
	}
	if previous != nil {
		out.LastState = previous.State
	}
	return out
}

// LifecycleEvent is a serialisable record of one emitted event.
type LifecycleEvent struct {
	Sequence  uint64    `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Navigator string    `json:"navigator"`
	Type      EventType `json:"type"`
	Target    string    `json:"target"`
	Context   string    `json:"context,omitempty"`
	Action    string    `json:"action,omitempty"`
	Animated  bool      `json:"animated,omitempty"`
}

// String renders the event as "type(target)".
func (e LifecycleEvent) String() string {
	return string(e.Type) + "(" + e.Target + ")"
}

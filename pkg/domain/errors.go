package domain

import "errors"

// ErrMalformedState is returned when a NavigationState has no routes or an out of range index.
var ErrMalformedState = errors.New("malformed navigation state")

// ErrUnknownEventType is returned when parsing an event type outside the closed vocabulary.
var ErrUnknownEventType = errors.New("unknown event type")

// ErrRouteNotFound is returned when a route key does not exist in a navigator's state.
var ErrRouteNotFound = errors.New("route not found")

// ErrNotNavigator is returned when a route is expected to host a nested navigator but does not.
var ErrNotNavigator = errors.New("route does not host a navigator")

// ErrAlreadyAttached is returned when a focus tracker is attached twice.
var ErrAlreadyAttached = errors.New("tracker already attached")

// ErrAlreadyMounted is returned when a navigator is mounted twice.
var ErrAlreadyMounted = errors.New("navigator already mounted")

// ErrNotMounted is returned when operating on a navigator that is not mounted.
var ErrNotMounted = errors.New("navigator not mounted")

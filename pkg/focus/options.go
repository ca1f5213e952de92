package focus

import (
	"log/slog"
	"time"

	"github.com/aretw0/navfocus/pkg/ports"
)

// Option defines a functional option for configuring a Tracker.
type Option func(*Tracker)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// WithObserver registers an observer notified of every event just before it is delivered.
func WithObserver(o ports.Observer) Option {
	return func(t *Tracker) {
		t.observer = o
	}
}

// WithName labels the tracker's navigator in logs and lifecycle records.
func WithName(name string) Option {
	return func(t *Tracker) {
		t.name = name
	}
}

// WithClock overrides the time source used for lifecycle records.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

package navigator

import (
	"log/slog"

	"github.com/aretw0/navfocus/pkg/ports"
)

// Option defines a functional option for configuring a Container.
type Option func(*Container)

// WithLogger configures the structured logger shared by every tracker.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithObserver registers an observer for every lifecycle event in the tree.
func WithObserver(o ports.Observer) Option {
	return func(c *Container) {
		c.observer = o
	}
}

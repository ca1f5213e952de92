package observability

import (
	"sync/atomic"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/ports"
)

// Aggregator combines multiple observers into a single one.
// Observers are notified in the order they were added.
//
// Events reaching the aggregator without a sequence number are numbered
// before fan-out, so every observer sees the same numbering.
type Aggregator struct {
	observers []ports.Observer
	seq       atomic.Uint64
}

// NewAggregator creates an aggregator over the given observers.
func NewAggregator(observers ...ports.Observer) *Aggregator {
	a := &Aggregator{}
	for _, o := range observers {
		a.Add(o)
	}
	return a
}

// Add registers an observer. Nil observers are ignored.
// Add must not race with Observe.
func (a *Aggregator) Add(o ports.Observer) {
	if o == nil {
		return
	}
	a.observers = append(a.observers, o)
}

// Observe forwards the event to every observer.
func (a *Aggregator) Observe(e domain.LifecycleEvent) {
	if e.Sequence == 0 {
		e.Sequence = a.seq.Add(1)
	}
	for _, o := range a.observers {
		o.Observe(e)
	}
}

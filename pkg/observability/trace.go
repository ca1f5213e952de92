package observability

import (
	"sync"

	"github.com/aretw0/navfocus/pkg/domain"
)

// Trace records lifecycle events in emission order.
// Safe for concurrent use.
type Trace struct {
	mu     sync.RWMutex
	events []domain.LifecycleEvent
	seq    uint64
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// Observe appends e, numbering it when it carries no sequence yet.
func (t *Trace) Observe(e domain.LifecycleEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	if e.Sequence == 0 {
		e.Sequence = t.seq
	}
	t.events = append(t.events, e)
}

// Events returns a copy of every recorded event.
func (t *Trace) Events() []domain.LifecycleEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]domain.LifecycleEvent, len(t.events))
	copy(out, t.events)
	return out
}

// Last returns up to n most recent events, oldest first. n <= 0 returns all.
func (t *Trace) Last(n int) []domain.LifecycleEvent {
	events := t.Events()
	if n <= 0 || n >= len(events) {
		return events
	}
	return events[len(events)-n:]
}

// Len returns the number of recorded events.
func (t *Trace) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.events)
}

// Reset drops every recorded event and restarts numbering.
func (t *Trace) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = nil
	t.seq = 0
}

// Focused replays the recorded didFocus/didBlur pairs and returns, per
// navigator, the target currently holding focus.
func (t *Trace) Focused() map[string]string {
	focused := make(map[string]string)
	for _, e := range t.Events() {
		switch e.Type {
		case domain.EventDidFocus:
			focused[e.Navigator] = e.Target
		case domain.EventDidBlur:
			if focused[e.Navigator] == e.Target {
				delete(focused, e.Navigator)
			}
		}
	}
	return focused
}

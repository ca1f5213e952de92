package observability

import (
	"sync"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports lifecycle events as Prometheus metrics.
type Metrics struct {
	events   *prometheus.CounterVec
	inFlight *prometheus.GaugeVec

	mu      sync.Mutex
	pending map[string]int
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		pending: make(map[string]int),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "navfocus_lifecycle_events_total",
				Help: "Total number of lifecycle events emitted, by event type",
			},
			[]string{"event"},
		),
		inFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "navfocus_focus_transitions_in_flight",
				Help: "Animated focus transitions announced by willFocus and not yet completed by didFocus",
			},
			[]string{"navigator"},
		),
	}

	for _, c := range []prometheus.Collector{m.events, m.inFlight} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	// Expose every event type from the start, even before it occurs.
	for _, t := range domain.EventTypes {
		m.events.WithLabelValues(string(t))
	}
	return m, nil
}

// Observe records one lifecycle event.
func (m *Metrics) Observe(e domain.LifecycleEvent) {
	m.events.WithLabelValues(string(e.Type)).Inc()

	if !e.Animated {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.pending[e.Navigator]
	switch e.Type {
	case domain.EventWillFocus:
		n++
	case domain.EventDidFocus:
		// A completion may arrive without a matching willFocus (first
		// determination below the root), so never go below zero.
		if n > 0 {
			n--
		}
	default:
		return
	}
	m.pending[e.Navigator] = n
	m.inFlight.WithLabelValues(e.Navigator).Set(float64(n))
}

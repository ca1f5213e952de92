package observability_test

import (
	"strings"
	"testing"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/observability"
	"github.com/aretw0/navfocus/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace_Contract(t *testing.T) {
	trace := observability.NewTrace()
	ports.RunObserverContract(t, trace, func() ([]domain.LifecycleEvent, error) {
		return trace.Events(), nil
	})
}

func TestTrace_NumbersAndWindows(t *testing.T) {
	trace := observability.NewTrace()
	for _, target := range []string{"a", "b", "c"} {
		trace.Observe(domain.LifecycleEvent{Type: domain.EventAction, Target: target})
	}

	events := trace.Events()
	require.Len(t, events, 3)
	assert.Equal(t, uint64(1), events[0].Sequence)
	assert.Equal(t, uint64(3), events[2].Sequence)

	last := trace.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, "b", last[0].Target)
	assert.Len(t, trace.Last(0), 3)

	trace.Reset()
	assert.Equal(t, 0, trace.Len())
	trace.Observe(domain.LifecycleEvent{Type: domain.EventAction})
	assert.Equal(t, uint64(1), trace.Events()[0].Sequence)
}

func TestTrace_Focused(t *testing.T) {
	trace := observability.NewTrace()
	obs := func(nav string, et domain.EventType, target string) {
		trace.Observe(domain.LifecycleEvent{Navigator: nav, Type: et, Target: target})
	}
	obs("root", domain.EventDidFocus, "home")
	obs("home", domain.EventDidFocus, "feed")
	obs("root", domain.EventDidFocus, "settings")
	obs("root", domain.EventDidBlur, "home")
	obs("home", domain.EventDidBlur, "feed")

	assert.Equal(t, map[string]string{"root": "settings"}, trace.Focused())
}

func TestAggregator_FansOutInOrder(t *testing.T) {
	var order []string
	var seqs []uint64
	a := observability.NewAggregator(
		ports.ObserverFunc(func(e domain.LifecycleEvent) {
			order = append(order, "first")
			seqs = append(seqs, e.Sequence)
		}),
		nil,
		ports.ObserverFunc(func(e domain.LifecycleEvent) {
			order = append(order, "second")
			seqs = append(seqs, e.Sequence)
		}),
	)

	a.Observe(domain.LifecycleEvent{Type: domain.EventDidFocus})
	a.Observe(domain.LifecycleEvent{Type: domain.EventDidBlur, Sequence: 42})

	assert.Equal(t, []string{"first", "second", "first", "second"}, order)
	assert.Equal(t, []uint64{1, 1, 42, 42}, seqs, "every observer sees the same numbering")
}

func TestMetrics_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	m.Observe(domain.LifecycleEvent{Navigator: "root", Type: domain.EventWillFocus, Target: "a"})
	m.Observe(domain.LifecycleEvent{Navigator: "root", Type: domain.EventDidFocus, Target: "a"})
	m.Observe(domain.LifecycleEvent{Navigator: "root", Type: domain.EventDidFocus, Target: "b"})

	expected := `
# HELP navfocus_lifecycle_events_total Total number of lifecycle events emitted, by event type
# TYPE navfocus_lifecycle_events_total counter
navfocus_lifecycle_events_total{event="action"} 0
navfocus_lifecycle_events_total{event="didBlur"} 0
navfocus_lifecycle_events_total{event="didFocus"} 2
navfocus_lifecycle_events_total{event="willBlur"} 0
navfocus_lifecycle_events_total{event="willFocus"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "navfocus_lifecycle_events_total"))
}

func TestMetrics_InFlightAnimatedTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	// A completion without a matching willFocus does not go negative.
	m.Observe(domain.LifecycleEvent{Navigator: "stack", Type: domain.EventDidFocus, Animated: true})
	m.Observe(domain.LifecycleEvent{Navigator: "stack", Type: domain.EventWillFocus, Animated: true})
	m.Observe(domain.LifecycleEvent{Navigator: "tabs", Type: domain.EventWillFocus})

	expected := `
# HELP navfocus_focus_transitions_in_flight Animated focus transitions announced by willFocus and not yet completed by didFocus
# TYPE navfocus_focus_transitions_in_flight gauge
navfocus_focus_transitions_in_flight{navigator="stack"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "navfocus_focus_transitions_in_flight"))

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err, "collectors cannot be registered twice")
}

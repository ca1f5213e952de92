package ports

import (
	"testing"
	"time"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunObserverContract runs a suite of tests to verify that an Observer records
// lifecycle events faithfully and in order. read returns what the observer has
// recorded so far.
func RunObserverContract(t *testing.T, observer Observer, read func() ([]domain.LifecycleEvent, error)) {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	sent := []domain.LifecycleEvent{
		{Sequence: 1, Timestamp: now, Navigator: "root", Type: domain.EventWillFocus, Target: "home", Context: "home:init_Root", Action: "init"},
		{Sequence: 2, Timestamp: now, Navigator: "root", Type: domain.EventDidFocus, Target: "home", Context: "home:init_Root", Action: "init"},
		{Sequence: 3, Timestamp: now, Navigator: "root", Type: domain.EventAction, Target: "home", Context: "home:init_Root", Action: "init"},
	}

	t.Run("Observe preserves order", func(t *testing.T) {
		for _, e := range sent {
			observer.Observe(e)
		}

		got, err := read()
		require.NoError(t, err, "read should not return error")
		require.Len(t, got, len(sent))

		for i := range sent {
			assert.Equal(t, sent[i].Type, got[i].Type)
			assert.Equal(t, sent[i].Target, got[i].Target)
			assert.Equal(t, sent[i].Navigator, got[i].Navigator)
			assert.Equal(t, sent[i].Context, got[i].Context)
			assert.Equal(t, sent[i].Action, got[i].Action)
			assert.Equal(t, sent[i].Sequence, got[i].Sequence)
		}
	})
}

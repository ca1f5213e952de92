package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSourceContract verifies that src lists exactly wantIDs, in order, and that
// every listed scenario loads and replays.
func RunSourceContract(t *testing.T, src Source, wantIDs []string) {
	t.Helper()
	ctx := context.Background()

	t.Run("List is sorted and complete", func(t *testing.T) {
		list, err := src.List(ctx)
		require.NoError(t, err)

		ids := make([]string, 0, len(list))
		for _, m := range list {
			ids = append(ids, m.ID)
		}
		assert.Equal(t, wantIDs, ids)
	})

	t.Run("Get returns replayable scenarios", func(t *testing.T) {
		for _, id := range wantIDs {
			sc, err := src.Get(ctx, id)
			require.NoError(t, err, id)
			require.NoError(t, sc.Validate(), id)
			assert.NotEmpty(t, sc.Name, "name defaults from metadata")

			res, err := Run(ctx, sc)
			require.NoError(t, err, id)
			assert.NotEmpty(t, res.Events, id)
		}
	})

	t.Run("Get unknown ID", func(t *testing.T) {
		_, err := src.Get(ctx, "does-not-exist")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

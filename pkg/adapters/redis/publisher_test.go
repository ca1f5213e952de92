package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/navfocus/pkg/adapters/redis"
	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/navigator"
	"github.com/aretw0/navfocus/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPublisher(t *testing.T, opts ...redis.Option) (*redis.Publisher, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	pub := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = pub.Close() })
	return pub, mr
}

func TestPublisher_Contract(t *testing.T) {
	pub, _ := newPublisher(t)
	ports.RunObserverContract(t, pub, func() ([]domain.LifecycleEvent, error) {
		return pub.Read(context.Background(), 0)
	})
}

func TestPublisher_StreamKeyAndMaxLen(t *testing.T) {
	pub, mr := newPublisher(t, redis.WithPrefix("app:"), redis.WithMaxLen(2))
	require.NoError(t, pub.Ping(context.Background()))
	assert.Equal(t, "app:events", pub.Stream())

	for _, target := range []string{"a", "b", "c"} {
		pub.Observe(domain.LifecycleEvent{Navigator: "root", Type: domain.EventWillFocus, Target: target})
	}

	assert.True(t, mr.Exists("app:events"))
	got, err := pub.Read(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Target)
	assert.Equal(t, "c", got[1].Target)
	assert.Equal(t, uint64(3), got[1].Sequence, "unsequenced events are numbered by the publisher")
}

func TestPublisher_ReadCount(t *testing.T) {
	pub, _ := newPublisher(t)
	for _, target := range []string{"a", "b", "c"} {
		pub.Observe(domain.LifecycleEvent{Navigator: "root", Type: domain.EventDidFocus, Target: target, Animated: true})
	}

	got, err := pub.Read(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Target)
	assert.True(t, got[0].Animated)
	assert.False(t, got[0].Timestamp.IsZero())
}

func TestPublisher_FailuresDoNotReachDispatch(t *testing.T) {
	pub, mr := newPublisher(t, redis.WithTimeout(100*time.Millisecond))
	mr.Close()

	c, err := navigator.NewContainer(&domain.NavigationState{
		Routes: []domain.Route{{Key: "home"}},
	}, navigator.WithObserver(pub))
	require.NoError(t, err)
	defer c.Close()

	assert.NoError(t, c.Start())
	assert.Equal(t, []string{"home"}, c.FocusPath())
}

func TestPublisher_FollowsContainer(t *testing.T) {
	pub, _ := newPublisher(t)

	c, err := navigator.NewContainer(&domain.NavigationState{
		Routes: []domain.Route{{Key: "home"}, {Key: "settings"}},
	}, navigator.WithObserver(pub))
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Start())
	require.NoError(t, c.Dispatch(domain.Action{Type: "Navigate"}, &domain.NavigationState{
		Index:  1,
		Routes: []domain.Route{{Key: "home"}, {Key: "settings"}},
	}))

	got, err := pub.Read(context.Background(), 0)
	require.NoError(t, err)

	var seen []string
	for _, e := range got {
		seen = append(seen, e.String())
	}
	assert.Equal(t, []string{
		"willFocus(home)", "didFocus(home)", "action(home)",
		"willFocus(settings)", "didFocus(settings)", "willBlur(home)", "didBlur(home)", "action(settings)",
	}, seen)
	assert.Equal(t, "settings:Navigate_Root", got[len(got)-1].Context)
}

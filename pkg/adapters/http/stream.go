package http

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/ports"
)

// StreamManager fans lifecycle events out to active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]string // channel -> navigator filter ("" for all)
	logger      *slog.Logger
}

var _ ports.Observer = (*StreamManager)(nil)

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan<- string]string),
		logger:      logger,
	}
}

// Subscribe registers a connection. The returned func unsubscribes and closes
// the channel.
func (sm *StreamManager) Subscribe(navigator string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 32)
	sm.subscribers[ch] = navigator

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

// Len returns the number of active subscribers.
func (sm *StreamManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// Observe broadcasts e to every subscriber whose filter matches.
func (sm *StreamManager) Observe(e domain.LifecycleEvent) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if len(sm.subscribers) == 0 {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		sm.logger.Error("SSE: encode event", "err", err)
		return
	}
	for ch, filter := range sm.subscribers {
		if filter != "" && filter != e.Navigator {
			continue
		}
		select {
		case ch <- string(data):
		default:
			// Slow client.
			sm.logger.Warn("SSE: client buffer full, dropping event", "event", e.String())
		}
	}
}

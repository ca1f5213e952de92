package focus

import (
	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/registry"
)

// Emitter broadcasts an event to the listeners of one target route.
// *registry.Registry implements it.
type Emitter interface {
	Emit(eventType domain.EventType, env registry.Envelope)
}

// Callback receives every event directly.
type Callback func(target string, eventType domain.EventType, data domain.Payload)

// Output selects where a Tracker delivers its events.
// Both strategies receive the same events, in the same order, with the same payloads.
// The zero Output discards events.
type Output struct {
	emitter  Emitter
	callback Callback
}

// ToEmitter delivers events through e.
func ToEmitter(e Emitter) Output {
	return Output{emitter: e}
}

// ToCallback delivers events to fn.
func ToCallback(fn Callback) Output {
	return Output{callback: fn}
}

func (o Output) deliver(eventType domain.EventType, target string, data domain.Payload) {
	switch {
	case o.emitter != nil:
		o.emitter.Emit(eventType, registry.Envelope{Target: target, Data: data})
	case o.callback != nil:
		o.callback(target, eventType, data)
	}
}

package scenario

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/navigator"
	"github.com/aretw0/navfocus/pkg/observability"
	"github.com/aretw0/navfocus/pkg/ports"
)

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	logger    *slog.Logger
	observers []ports.Observer
}

// WithLogger sets the logger handed to the container.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// WithObserver adds an observer next to the recording trace, e.g. metrics or
// a stream publisher.
func WithObserver(o ports.Observer) Option {
	return func(c *runConfig) {
		c.observers = append(c.observers, o)
	}
}

// StepResult is the outcome of the initial mount (Index 0) or one step.
type StepResult struct {
	Index    int                     `json:"index"`
	Action   string                  `json:"action"`
	Events   []domain.LifecycleEvent `json:"events"`
	Expected []string                `json:"expected,omitempty"`
	Focus    []string                `json:"focus"`
	Mismatch bool                    `json:"mismatch,omitempty"`
}

// Result is the recorded outcome of a replay.
type Result struct {
	Name   string                  `json:"name"`
	Steps  []StepResult            `json:"steps"`
	Events []domain.LifecycleEvent `json:"events"`
	Focus  []string                `json:"focus"`
}

// Passed reports whether every expectation matched.
func (r *Result) Passed() bool {
	for _, s := range r.Steps {
		if s.Mismatch {
			return false
		}
	}
	return true
}

// Run mounts the scenario's initial tree, starts it, and dispatches every step
// in order. ctx is checked between steps.
func Run(ctx context.Context, sc *Scenario, opts ...Option) (*Result, error) {
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	trace := observability.NewTrace()
	observer := observability.NewAggregator(trace)
	for _, o := range cfg.observers {
		observer.Add(o)
	}

	c, err := navigator.NewContainer(sc.Initial,
		navigator.WithLogger(cfg.logger.With("scenario", sc.Name)),
		navigator.WithObserver(observer),
	)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	defer c.Close()

	res := &Result{Name: sc.Name}
	record := func(index int, action string, expect []string, from int) {
		events := trace.Events()[from:]
		step := StepResult{
			Index:    index,
			Action:   action,
			Events:   events,
			Expected: expect,
			Focus:    c.FocusPath(),
		}
		if expect != nil {
			step.Mismatch = !slices.Equal(expect, Describe(events))
		}
		res.Steps = append(res.Steps, step)
	}

	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
	}
	record(0, navigator.ActionInit, sc.Expect, 0)

	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		from := trace.Len()
		if err := c.Dispatch(step.Action, step.State); err != nil {
			return nil, fmt.Errorf("scenario %q: step %d: %w", sc.Name, i+1, err)
		}
		record(i+1, step.Action.Type, step.Expect, from)
	}

	res.Events = trace.Events()
	res.Focus = c.FocusPath()
	return res, nil
}

// Describe renders focus events as "navigator:type(target)", skipping action
// events. It is the notation used by expectations.
func Describe(events []domain.LifecycleEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		if e.Type == domain.EventAction {
			continue
		}
		out = append(out, e.Navigator+":"+e.String())
	}
	return out
}

package navfocus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/navfocus/pkg/ports"
	"github.com/aretw0/navfocus/pkg/scenario"
)

// ErrNoSource is returned when a scenario is requested by ID from a
// workspace opened without a directory or source.
var ErrNoSource = errors.New("no scenario source configured")

// Workspace is the high-level entry point: a set of replayable scenarios plus
// the observers attached to every replay.
type Workspace struct {
	source    scenario.Source
	observers []ports.Observer
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Workspace.
type Option func(*Workspace)

// WithSource injects a scenario source, bypassing the default Loam library.
func WithSource(src scenario.Source) Option {
	return func(w *Workspace) {
		w.source = src
	}
}

// WithObserver attaches an observer to every replay.
func WithObserver(o ports.Observer) Option {
	return func(w *Workspace) {
		w.observers = append(w.observers, o)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// Open creates a workspace. By default scenarios are read through Loam from
// dir; with WithSource, dir only names the workspace and may be empty.
func Open(dir string, opts ...Option) (*Workspace, error) {
	w := &Workspace{}
	for _, opt := range opts {
		opt(w)
	}

	if w.source == nil && dir != "" {
		lib, err := scenario.OpenLibrary(dir)
		if err != nil {
			return nil, err
		}
		w.source = lib
	}
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			w.Name = filepath.Base(abs)
		}
	}

	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if w.Name != "" {
		w.logger = w.logger.With("workspace", w.Name)
	}
	return w, nil
}

// List returns the scenarios of the workspace.
func (w *Workspace) List(ctx context.Context) ([]scenario.Metadata, error) {
	if w.source == nil {
		return nil, ErrNoSource
	}
	return w.source.List(ctx)
}

// Load resolves ref as a YAML file path when it names one, and as a scenario
// ID otherwise.
func (w *Workspace) Load(ctx context.Context, ref string) (*scenario.Scenario, error) {
	if isYAMLFile(ref) {
		return scenario.Load(ref)
	}
	if w.source == nil {
		return nil, fmt.Errorf("%w: cannot resolve %q", ErrNoSource, ref)
	}
	return w.source.Get(ctx, ref)
}

// Replay loads ref and runs it.
func (w *Workspace) Replay(ctx context.Context, ref string) (*scenario.Result, error) {
	sc, err := w.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	return w.Run(ctx, sc)
}

// Run replays sc with the workspace observers attached.
func (w *Workspace) Run(ctx context.Context, sc *scenario.Scenario) (*scenario.Result, error) {
	opts := []scenario.Option{scenario.WithLogger(w.logger)}
	for _, o := range w.observers {
		opts = append(opts, scenario.WithObserver(o))
	}

	w.logger.Debug("replaying scenario", "scenario", sc.Name, "steps", len(sc.Steps))
	res, err := scenario.Run(ctx, sc, opts...)
	if err != nil {
		return nil, err
	}
	if !res.Passed() {
		w.logger.Warn("scenario expectations not met", "scenario", sc.Name)
	}
	return res, nil
}

func isYAMLFile(ref string) bool {
	ext := strings.ToLower(filepath.Ext(ref))
	if ext != ".yaml" && ext != ".yml" {
		return false
	}
	info, err := os.Stat(ref)
	return err == nil && !info.IsDir()
}

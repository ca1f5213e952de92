package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/navfocus"
	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/navigator"
	"github.com/aretw0/navfocus/pkg/observability"
	"github.com/aretw0/navfocus/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Inspector owns a navigator tree and exposes it over HTTP. Every access to
// the tree is serialised by one mutex, since dispatch itself is single-threaded.
type Inspector struct {
	mu        sync.Mutex
	container *navigator.Container

	trace    *observability.Trace
	streams  *StreamManager
	observer *observability.Aggregator
	registry *prometheus.Registry
	extra    []ports.Observer
	logger   *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithLogger sets the logger of the inspector and its navigator trees.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// WithObserver adds an observer notified of every lifecycle event, e.g. a
// Redis stream publisher.
func WithObserver(o ports.Observer) Option {
	return func(i *Inspector) {
		i.extra = append(i.extra, o)
	}
}

// WithRegistry registers the metrics on reg instead of a private registry.
// GET /metrics serves reg.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(i *Inspector) {
		i.registry = reg
	}
}

// DispatchResult is the response of dispatch and reset.
type DispatchResult struct {
	Events []domain.LifecycleEvent `json:"events"`
	Focus  []string                `json:"focus"`
}

type dispatchRequest struct {
	Action domain.Action           `json:"action"`
	State  *domain.NavigationState `json:"state"`
}

type resetRequest struct {
	State *domain.NavigationState `json:"state"`
}

// NewInspector mounts a tree over initial and starts it.
func NewInspector(initial *domain.NavigationState, opts ...Option) (*Inspector, error) {
	i := &Inspector{
		trace: observability.NewTrace(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if i.registry == nil {
		i.registry = prometheus.NewRegistry()
	}

	metrics, err := observability.NewMetrics(i.registry)
	if err != nil {
		return nil, err
	}
	i.streams = NewStreamManager(i.logger)
	i.observer = observability.NewAggregator(i.trace, metrics, i.streams)
	for _, o := range i.extra {
		i.observer.Add(o)
	}

	if _, err := i.Reset(initial); err != nil {
		return nil, err
	}
	return i, nil
}

// Reset replaces the tree with a new one mounted over initial, clears the
// trace and starts the new tree.
func (i *Inspector) Reset(initial *domain.NavigationState) (*DispatchResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	c, err := navigator.NewContainer(initial,
		navigator.WithLogger(i.logger),
		navigator.WithObserver(i.observer),
	)
	if err != nil {
		return nil, err
	}
	if i.container != nil {
		i.container.Close()
	}
	i.container = c
	i.trace.Reset()

	if err := c.Start(); err != nil {
		return nil, err
	}
	return &DispatchResult{Events: i.trace.Events(), Focus: c.FocusPath()}, nil
}

// Dispatch commits next for action and returns the events it produced.
func (i *Inspector) Dispatch(action domain.Action, next *domain.NavigationState) (*DispatchResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	from := i.trace.Len()
	if err := i.container.Dispatch(action, next); err != nil {
		return nil, err
	}
	return &DispatchResult{Events: i.trace.Events()[from:], Focus: i.container.FocusPath()}, nil
}

// Close unmounts the tree.
func (i *Inspector) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.container.Close()
}

// Streams exposes the SSE fan-out.
func (i *Inspector) Streams() *StreamManager {
	return i.streams
}

// Handler builds the router. Requests described by the embedded OpenAPI
// document are validated against it.
func (i *Inspector) Handler() (http.Handler, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(validate)

	r.Post("/dispatch", i.handleDispatch)
	r.Post("/reset", i.handleReset)
	r.Get("/trace", i.handleTrace)
	r.Get("/focus", i.handleFocus)
	r.Get("/state", i.handleState)
	r.Get("/events", i.handleEvents)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/info", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"app":         "navfocus-inspector",
			"version":     strings.TrimSpace(navfocus.Version),
			"api_version": doc.Info.Version,
		})
	})
	r.Handle("/metrics", promhttp.HandlerFor(i.registry, promhttp.HandlerOpts{}))
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	return enableCORS(r), nil
}

func (i *Inspector) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var body dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	res, err := i.Dispatch(body.Action, body.State)
	if err != nil {
		i.logger.Warn("dispatch rejected", "action", body.Action.Type, "err", err)
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (i *Inspector) handleReset(w http.ResponseWriter, r *http.Request) {
	var body resetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	res, err := i.Reset(body.State)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (i *Inspector) handleTrace(w http.ResponseWriter, r *http.Request) {
	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter limit: %w", err))
		return
	}
	if limit != nil && *limit < 0 {
		writeError(w, http.StatusBadRequest, errors.New("limit must not be negative"))
		return
	}

	n := 0
	if limit != nil {
		n = *limit
	}
	writeJSON(w, http.StatusOK, i.trace.Last(n))
}

func (i *Inspector) handleFocus(w http.ResponseWriter, r *http.Request) {
	i.mu.Lock()
	focus := i.container.FocusPath()
	i.mu.Unlock()

	if focus == nil {
		focus = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"focus": focus})
}

func (i *Inspector) handleState(w http.ResponseWriter, r *http.Request) {
	i.mu.Lock()
	state := i.container.State()
	i.mu.Unlock()

	writeJSON(w, http.StatusOK, state)
}

// handleEvents streams lifecycle events as server-sent events until the
// client disconnects.
func (i *Inspector) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, errors.New("streaming not supported"))
		return
	}

	var filter *string
	if err := runtime.BindQueryParameter("form", true, false, "navigator", r.URL.Query(), &filter); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid format for parameter navigator: %w", err))
		return
	}
	navigatorName := ""
	if filter != nil {
		navigatorName = *filter
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := i.streams.Subscribe(navigatorName)
	defer cancel()
	i.logger.Info("SSE: client subscribed", "navigator", navigatorName)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			i.logger.Info("SSE: client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: lifecycle\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedState):
		return http.StatusBadRequest
	case errors.Is(err, navigator.ErrClosed), errors.Is(err, navigator.ErrNotStarted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>navfocus inspector</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

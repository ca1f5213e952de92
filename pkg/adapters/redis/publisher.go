package redis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/aretw0/navfocus/pkg/domain"
	"github.com/aretw0/navfocus/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "navfocus:"

// Publisher implements ports.Observer by appending every lifecycle event to a
// Redis stream, so processes outside the navigator tree can follow focus.
type Publisher struct {
	client  *backend.Client
	prefix  string
	maxLen  int64
	timeout time.Duration
	logger  *slog.Logger
	seq     atomic.Uint64
}

var _ ports.Observer = (*Publisher)(nil)

type Option func(*Publisher)

// WithPrefix sets the key prefix of the stream.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithMaxLen caps the stream length. Zero keeps every entry.
func WithMaxLen(n int64) Option {
	return func(p *Publisher) {
		p.maxLen = n
	}
}

// WithTimeout bounds each XADD issued by Observe.
func WithTimeout(d time.Duration) Option {
	return func(p *Publisher) {
		p.timeout = d
	}
}

// WithLogger sets the logger used to report publish failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// New creates a publisher connected to the given address.
func New(address, password string, db int, opts ...Option) *Publisher {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a publisher from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Publisher {
	p := &Publisher{
		client:  client,
		prefix:  defaultPrefix,
		timeout: time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p
}

// Stream returns the key of the stream events are appended to.
func (p *Publisher) Stream() string {
	return p.prefix + "events"
}

// Ping checks the connection.
func (p *Publisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Observe appends e to the stream. Dispatch never fails because of Redis:
// errors are logged and the event is dropped.
func (p *Publisher) Observe(e domain.LifecycleEvent) {
	if e.Sequence == 0 {
		e.Sequence = p.seq.Add(1)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	args := &backend.XAddArgs{
		Stream: p.Stream(),
		ID:     "*",
		Values: encode(e),
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		p.logger.Error("publish lifecycle event", "event", e.String(), "err", err)
	}
}

// Read returns up to count events from the start of the stream, oldest first.
// A count of zero or less reads the whole stream.
func (p *Publisher) Read(ctx context.Context, count int64) ([]domain.LifecycleEvent, error) {
	var (
		msgs []backend.XMessage
		err  error
	)
	if count > 0 {
		msgs, err = p.client.XRangeN(ctx, p.Stream(), "-", "+", count).Result()
	} else {
		msgs, err = p.client.XRange(ctx, p.Stream(), "-", "+").Result()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stream %s: %w", p.Stream(), err)
	}

	out := make([]domain.LifecycleEvent, 0, len(msgs))
	for _, m := range msgs {
		e, err := decode(m.Values)
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", m.ID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func encode(e domain.LifecycleEvent) map[string]any {
	return map[string]any{
		"seq":       strconv.FormatUint(e.Sequence, 10),
		"ts":        e.Timestamp.UTC().Format(time.RFC3339Nano),
		"navigator": e.Navigator,
		"type":      string(e.Type),
		"target":    e.Target,
		"context":   e.Context,
		"action":    e.Action,
		"animated":  strconv.FormatBool(e.Animated),
	}
}

func decode(values map[string]any) (domain.LifecycleEvent, error) {
	field := func(k string) string {
		s, _ := values[k].(string)
		return s
	}

	var e domain.LifecycleEvent
	t, err := domain.ParseEventType(field("type"))
	if err != nil {
		return e, err
	}
	e.Type = t

	if e.Sequence, err = strconv.ParseUint(field("seq"), 10, 64); err != nil {
		return e, fmt.Errorf("bad seq: %w", err)
	}
	if ts := field("ts"); ts != "" {
		if e.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return e, fmt.Errorf("bad ts: %w", err)
		}
	}
	e.Navigator = field("navigator")
	e.Target = field("target")
	e.Context = field("context")
	e.Action = field("action")
	e.Animated = field("animated") == "true"
	return e, nil
}

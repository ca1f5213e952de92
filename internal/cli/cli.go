package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/navfocus"
	"github.com/aretw0/navfocus/internal/logging"
	"github.com/aretw0/navfocus/internal/presentation/tui"
	redisAdapter "github.com/aretw0/navfocus/pkg/adapters/redis"
	"github.com/aretw0/navfocus/pkg/ports"
	"github.com/aretw0/navfocus/pkg/scenario"
	"golang.org/x/term"
)

// Output formats accepted by --format.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Options carries the persistent flags shared by every command.
type Options struct {
	Dir       string
	LogLevel  string
	RedisAddr string
}

// NewLogger builds the stderr logger for --log-level.
func NewLogger(level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// RedisObserver connects a stream publisher when addr is set. The returned
// close func is never nil.
func RedisObserver(ctx context.Context, addr string, logger *slog.Logger) (ports.Observer, func(), error) {
	if addr == "" {
		return nil, func() {}, nil
	}
	pub := redisAdapter.New(addr, "", 0, redisAdapter.WithLogger(logger))
	if err := pub.Ping(ctx); err != nil {
		_ = pub.Close()
		return nil, func() {}, err
	}
	logger.Info("publishing lifecycle events", "redis", addr, "stream", pub.Stream())
	return pub, func() { _ = pub.Close() }, nil
}

// OpenWorkspace opens the --dir workspace with the optional Redis publisher
// attached. Call the returned func when done.
func OpenWorkspace(ctx context.Context, opts Options, logger *slog.Logger) (*navfocus.Workspace, func(), error) {
	wsOpts := []navfocus.Option{navfocus.WithLogger(logger)}

	pub, closePub, err := RedisObserver(ctx, opts.RedisAddr, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("redis: %w", err)
	}
	if pub != nil {
		wsOpts = append(wsOpts, navfocus.WithObserver(pub))
	}

	ws, err := navfocus.Open(opts.Dir, wsOpts...)
	if err != nil {
		closePub()
		return nil, nil, fmt.Errorf("error opening workspace: %w", err)
	}
	return ws, closePub, nil
}

// ColorEnabled reports whether w is a terminal.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// PrintResult writes res to w in the requested format. Markdown is rendered
// through glamour when w is a terminal.
func PrintResult(w io.Writer, res *scenario.Result, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return tui.WriteText(w, res, ColorEnabled(w))
	case FormatMarkdown:
		md := tui.Markdown(res)
		if ColorEnabled(w) {
			render, err := tui.NewRenderer()
			if err != nil {
				return err
			}
			if md, err = render(md); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, md)
		return err
	case FormatJSON:
		return tui.WriteJSON(w, res)
	default:
		return fmt.Errorf("unknown format %q (want text, markdown or json)", format)
	}
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, msg string) {
	fmt.Fprintf(w, ">>> %s\n", msg)
}

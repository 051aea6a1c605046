// Package logging builds the slog logger used by the CLI and writes engine
// events to it.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	eventbus "github.com/hanpama/gqlcore/internal/eventbus"
	events "github.com/hanpama/gqlcore/internal/events"
	reqid "github.com/hanpama/gqlcore/internal/reqid"
)

// Format is the output format of a logger.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Config configures New.
type Config struct {
	// Level is one of "debug", "info", "warn" or "error". Empty means info.
	Level string
	// Format is "json" or "text". Empty means text.
	Format string
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// New creates a logger from cfg.
func New(cfg Config) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	switch Format(strings.ToLower(cfg.Format)) {
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case FormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %q", cfg.Format)
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// Attach logs validation and execution events from bus. Starts are logged
// at debug level; finishes at info, or warn when errors were reported.
func Attach(bus *eventbus.Bus, log *slog.Logger) (detach func()) {
	unsubs := []func(){
		eventbus.On(bus, func(ctx context.Context, e events.ValidationStart) {
			log.DebugContext(ctx, "validation started", requestAttr(ctx))
		}),
		eventbus.On(bus, func(ctx context.Context, e events.ValidationFinish) {
			log.Log(ctx, levelFor(e.Errors), "validation finished",
				requestAttr(ctx),
				slog.Int("errors", len(e.Errors)),
				slog.Duration("duration", e.Duration),
			)
		}),
		eventbus.On(bus, func(ctx context.Context, e events.ExecutionStart) {
			log.DebugContext(ctx, "execution started",
				requestAttr(ctx),
				slog.String("operation", e.OperationName),
				slog.String("type", e.OperationType),
			)
		}),
		eventbus.On(bus, func(ctx context.Context, e events.ExecutionFinish) {
			attrs := []any{
				requestAttr(ctx),
				slog.String("operation", e.OperationName),
				slog.String("type", e.OperationType),
				slog.Int("errors", len(e.Errors)),
				slog.Duration("duration", e.Duration),
			}
			if len(e.Errors) > 0 {
				attrs = append(attrs, slog.String("first_error", e.Errors[0].Error()))
			}
			log.Log(ctx, levelFor(e.Errors), "execution finished", attrs...)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func levelFor(errs []error) slog.Level {
	if len(errs) > 0 {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

func requestAttr(ctx context.Context) slog.Attr {
	id, _ := reqid.FromContext(ctx)
	return slog.String("request_id", id)
}

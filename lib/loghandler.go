package lib

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
)

func newLogHandler(p *Partitioner) slog.Handler {
	buf := &bytes.Buffer{}
	return &logHandler{
		partitioner: p,
		formatter:   slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		output:      buf,
		mu:          &sync.Mutex{},
	}
}

// logHandler lets library code log through slog while the application
// keeps a single zerolog logger and verbosity setting
type logHandler struct {
	partitioner *Partitioner
	formatter   slog.Handler
	output      *bytes.Buffer
	mu          *sync.Mutex
}

// Enabled always returns true and lets zerolog decide
func (h *logHandler) Enabled(_ context.Context, level slog.Level) bool {
	return true
}

func (h *logHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &logHandler{
		partitioner: h.partitioner,
		output:      h.output,
		mu:          h.mu,
		formatter:   h.formatter.WithAttrs(attrs),
	}
}

func (h *logHandler) WithGroup(name string) slog.Handler {
	return &logHandler{
		partitioner: h.partitioner,
		output:      h.output,
		mu:          h.mu,
		formatter:   h.formatter.WithGroup(name),
	}
}

// Handle renders the record with the text handler into the shared buffer
// and hands the line to zerolog at the matching level. Handlers derived
// through WithAttrs/WithGroup share the buffer, so the mutex covers them all.
func (h *logHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer h.output.Reset()

	if err := h.formatter.Handle(ctx, r); err != nil {
		return err
	}
	msg := strings.TrimSpace(h.output.String())
	if msg == "" {
		msg = "<<logHandler received empty message>>"
	}

	h.partitioner.logMu.Lock()
	defer h.partitioner.logMu.Unlock()
	logger := h.partitioner.logger
	switch {
	case r.Level < slog.LevelInfo:
		logger.Debug().Msg(msg)
	case r.Level < slog.LevelWarn:
		logger.Info().Msg(msg)
	case r.Level < slog.LevelError:
		logger.Warn().Msg(msg)
	default:
		logger.Error().Msg(msg)
	}
	return nil
}

package retry

import (
	"context"
	"log/slog"
)

// LevelTrace sits below slog.LevelDebug for per-attempt chatter.
const LevelTrace = slog.LevelDebug - 4

var discardLogger = slog.New(slog.DiscardHandler)

// log emits a diagnostic record. Panics from the handler are swallowed so a
// broken logger can never change the outcome of a call.
func (e *Executor) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	defer func() { _ = recover() }()
	e.logger.LogAttrs(ctx, level, msg, attrs...)
}

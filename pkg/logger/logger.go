// Package logger configures the process-wide zerolog logger and ties log
// lines to the active trace.
package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Setup initializes the global logger. Local development gets a colorized
// console writer at debug level; everywhere else emits JSON at info level
// with Unix timestamps.
func Setup(isLocalDev bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if isLocalDev {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// EnrichContextWithLogger attaches a logger carrying the current trace and
// span ids to the context, so every log line of a request or message can be
// correlated with its trace. Contexts without a recorded trace pass through
// unchanged.
func EnrichContextWithLogger(ctx context.Context) context.Context {
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.HasTraceID() {
		return ctx
	}

	traced := log.With().
		Str("trace_id", spanCtx.TraceID().String()).
		Str("span_id", spanCtx.SpanID().String()).
		Logger()
	return traced.WithContext(ctx)
}

// Package log carries the logr.Logger through the composition pipeline via
// context.Context.
package log

import (
	"context"

	"github.com/go-logr/logr"
)

// FromContext returns the logger stored in ctx, or a discarding logger when
// the caller supplied none. Composition never fails for lack of a logger.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

// WithLogger returns a context carrying logger for FromContext to find.
func WithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

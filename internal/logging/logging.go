// Package logging carries a structured go.uber.org/zap logger on a
// context.Context, so a call deep in the solving pipeline can log with
// whatever fields the caller attached up front.
package logging

import (
	"context"

	"go.uber.org/zap"
)

type contextKey struct{}

// ContextWithLogger returns a derived context that carries the provided logger.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a logger previously attached to the context,
// falling back to zap's no-op logger so callers never need a nil
// check.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return zap.NewNop()
	}
	logger, ok := ctx.Value(contextKey{}).(*zap.Logger)
	if !ok || logger == nil {
		return zap.NewNop()
	}
	return logger
}

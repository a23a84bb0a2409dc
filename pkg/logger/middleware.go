package logger

import (
	"context"
	"log/slog"
)

type (
	handleFunc func(context.Context, slog.Record) error
	middleware func(handleFunc) handleFunc
)

// middlewareHandler runs every record through middlewares before the wrapped handler.
type middlewareHandler struct {
	next        slog.Handler
	middlewares []middleware
	handle      handleFunc
}

func newMiddlewareHandler(next slog.Handler, middlewares ...middleware) *middlewareHandler {
	handle := next.Handle
	for i := len(middlewares) - 1; i >= 0; i-- {
		handle = middlewares[i](handle)
	}
	return &middlewareHandler{next: next, middlewares: middlewares, handle: handle}
}

func (m *middlewareHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return m.next.Enabled(ctx, level)
}

func (m *middlewareHandler) Handle(ctx context.Context, rec slog.Record) error {
	return m.handle(ctx, rec)
}

func (m *middlewareHandler) WithGroup(group string) slog.Handler {
	return newMiddlewareHandler(m.next.WithGroup(group), m.middlewares...)
}

func (m *middlewareHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newMiddlewareHandler(m.next.WithAttrs(attrs), m.middlewares...)
}

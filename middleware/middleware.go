package middleware

import (
	"context"

	"sigrpc/jsonrpc"
)

// HandlerFunc processes one inbound request envelope and produces its
// response envelope.
type HandlerFunc func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response

// Middleware wraps a handler with extra behavior.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes middlewares into one. Chain(A, B, C)(h) executes
// A.before → B.before → C.before → h → C.after → B.after → A.after.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

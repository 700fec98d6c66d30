package middleware

import (
	"context"
	"time"

	"sigrpc/jsonrpc"
)

// Timeout bounds handler execution. When the budget is exceeded the caller
// gets an error response immediately; the handler goroutine finishes in the
// background with its context already canceled.
func Timeout(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan *jsonrpc.Response, 1)
			go func() {
				done <- next(ctx, req)
			}()

			select {
			case resp := <-done:
				return resp
			case <-ctx.Done():
				return jsonrpc.NewErrorResponse(req.ID, &jsonrpc.Error{
					Code:    jsonrpc.CodeInternal,
					Message: "request timed out",
				})
			}
		}
	}
}

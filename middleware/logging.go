package middleware

import (
	"context"
	"log"
	"time"

	"sigrpc/jsonrpc"
)

// Logging logs every dispatched method with its duration, and the error when
// the call failed.
func Logging() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			start := time.Now()
			resp := next(ctx, req)
			log.Printf("method: %s, duration: %s", req.Method, time.Since(start))
			if resp != nil && resp.Error != nil {
				log.Printf("method: %s, error: %v", req.Method, resp.Error)
			}
			return resp
		}
	}
}

package middleware

import (
	"context"

	"golang.org/x/time/rate"

	"sigrpc/jsonrpc"
)

// RateLimit rejects requests beyond the token-bucket rate with a structured
// error response instead of processing them.
func RateLimit(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
			if !limiter.Allow() {
				return jsonrpc.NewErrorResponse(req.ID, &jsonrpc.Error{
					Code:    jsonrpc.CodeApplication,
					Message: "rate limit exceeded",
				})
			}
			return next(ctx, req)
		}
	}
}

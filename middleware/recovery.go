package middleware

import (
	"context"
	"fmt"
	"log"

	"sigrpc/jsonrpc"
)

// Recovery converts a panicking handler into an internal error response.
// A remote caller must always receive a deterministic error envelope, never
// a dropped connection.
func Recovery() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, req *jsonrpc.Request) (resp *jsonrpc.Response) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("panic in method %s: %v", req.Method, r)
					resp = jsonrpc.NewErrorResponse(req.ID, &jsonrpc.Error{
						Code:    jsonrpc.CodeInternal,
						Message: "internal error",
						Data:    fmt.Sprint(r),
					})
				}
			}()
			return next(ctx, req)
		}
	}
}

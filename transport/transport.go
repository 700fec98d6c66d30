// Package transport implements the outbound request capability: perform one
// remote call given a target address, a method name, and wire-ready
// parameters, and return the wire-ready result or fail.
//
// The core above this package never retries and never times out on its own;
// retry policy and deadlines live here, behind the RequestClient interface.
package transport

import (
	"context"
	"fmt"
)

// RequestClient performs a single remote call. Implementations must be safe
// for concurrent use: one client is typically shared by every method of a
// proxy.
type RequestClient interface {
	MakeRequest(ctx context.Context, addr, method string, params any) (any, error)
}

// Error reports a transport-level failure: the remote endpoint was
// unreachable, returned a non-success status, or the connection failed
// mid-flight. It is propagated to the caller unchanged; the core adds no
// retry or backoff on top of it.
type Error struct {
	Op      string // what was being attempted: "dial", "post", "write", "read", "balance"
	Addr    string
	Status  int  // HTTP status for non-success responses, 0 otherwise
	Timeout bool // the failure was a timeout or an expired deadline
	Err     error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("transport error: %s %s", e.Op, e.Addr)
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Timeout {
		msg += ": timeout"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

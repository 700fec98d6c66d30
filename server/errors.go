package server

import "fmt"

// DispatchError reports an inbound call referencing a method the routing
// table does not contain. It is surfaced to the remote caller as a
// method-not-found error response, never as a server-side fault.
type DispatchError struct {
	Method string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch error: unknown method: %s", e.Method)
}

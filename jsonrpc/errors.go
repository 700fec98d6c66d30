package jsonrpc

import "fmt"

// Error codes per the JSON-RPC 2.0 specification, plus the implementation
// range code used for application errors raised by service handlers.
const (
	CodeParse          = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603
	CodeApplication    = -32000
)

// Error is the structured error member of a response envelope. On the server
// it is what dispatch failures and application errors are converted into; on
// the client it is surfaced to the caller as-is.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("jsonrpc error %d: %s: %v", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// ProtocolError reports a response that cannot be interpreted as a valid
// result for the request that produced it: the connection succeeded but the
// payload is unusable (bad JSON, version or id mismatch, missing result).
// Distinct from a transport error, which means the exchange itself failed.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol error: %s: %v", e.Reason, e.Err)
	}
	return "protocol error: " + e.Reason
}

func (e *ProtocolError) Unwrap() error { return e.Err }

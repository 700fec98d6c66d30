// Package jsonrpc implements the JSON-RPC 2.0 envelope used on the wire.
//
// It plays the role a frame protocol plays on a raw TCP transport: the
// receiver first interprets the envelope (version, id, method) and only then
// touches the payload. Framing itself is left to the carrying transport
// (HTTP request/response bodies, websocket messages), so unlike a custom
// binary protocol there is no length header to manage.
package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Version is the protocol version every envelope must carry.
const Version = "2.0"

// Request is one remote invocation: method name plus wire-ready parameters.
type Request struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      uint64          `json:"id"`
}

// NewRequest builds a request envelope, marshaling params to their JSON form.
func NewRequest(method string, params any, id uint64) (*Request, error) {
	req := &Request{Version: Version, Method: method, ID: id}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("jsonrpc: marshal params: %w", err)
		}
		req.Params = raw
	}
	return req, nil
}

// DecodeRequest parses an inbound request envelope. A syntactically invalid
// body yields a *Error with CodeParse; a body that parses but is not a valid
// request (wrong version, empty method) yields CodeInvalidRequest.
func DecodeRequest(data []byte) (*Request, *Error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &Error{Code: CodeParse, Message: "parse error", Data: err.Error()}
	}
	if req.Version != Version {
		return nil, &Error{Code: CodeInvalidRequest, Message: "invalid request", Data: "unsupported jsonrpc version"}
	}
	if req.Method == "" {
		return nil, &Error{Code: CodeInvalidRequest, Message: "invalid request", Data: "missing method"}
	}
	return &req, nil
}

// Response is the reply to one request: the request's id echoed back plus
// exactly one of result or error.
type Response struct {
	Version string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      uint64          `json:"id"`
}

// NewResultResponse builds a success response carrying the serialized result.
func NewResultResponse(id uint64, result any) (*Response, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("jsonrpc: marshal result: %w", err)
	}
	return &Response{Version: Version, Result: raw, ID: id}, nil
}

// NewErrorResponse builds an error response.
func NewErrorResponse(id uint64, rpcErr *Error) *Response {
	return &Response{Version: Version, Error: rpcErr, ID: id}
}

// DecodeResponse parses a raw response body and validates it against the
// request that produced it. The connection already succeeded by the time it
// is called, so every failure here is a *ProtocolError: bad JSON, a version
// or id mismatch, or an envelope carrying neither result nor error. A
// well-formed error response is returned as a *Error so the caller receives
// the structured application failure.
func DecodeResponse(data []byte, wantID uint64) (any, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, &ProtocolError{Reason: "response is not valid JSON", Err: err}
	}
	if resp.Version != Version {
		return nil, &ProtocolError{Reason: fmt.Sprintf("unexpected jsonrpc version %q", resp.Version)}
	}
	if resp.ID != wantID {
		return nil, &ProtocolError{Reason: fmt.Sprintf("response id %d does not match request id %d", resp.ID, wantID)}
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Result == nil {
		return nil, &ProtocolError{Reason: "response carries neither result nor error"}
	}
	var result any
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, &ProtocolError{Reason: "result is not valid JSON", Err: err}
	}
	return result, nil
}

// Package server implements the inbound side: a Dispatcher routing wire
// calls to implementation handlers, and the HTTP/websocket transport
// adapters that feed it.
//
// Request processing pipeline:
//
//	transport adapter (framing, fan-out)
//	  → middleware chain → Dispatcher.Handle
//	    → decode params → route lookup → deserialize → bind → handler
//	    → serialize result → response envelope
package server

import (
	"context"
	"errors"
	"fmt"

	"sigrpc/binding"
	"sigrpc/codec"
	"sigrpc/jsonrpc"
	"sigrpc/service"
)

// Implementation supplies the concrete handler for each declared method,
// keyed by declared method name. It may be nil when the descriptor itself
// carries handlers.
type Implementation map[string]service.Handler

type route struct {
	method  *service.Method
	handler service.Handler
}

// Dispatcher routes inbound calls to implementation handlers through the
// shared binding logic and the serialization hook.
//
// The routing table is built once at construction and read-only afterwards:
// concurrent inbound calls consult it without synchronization.
type Dispatcher struct {
	desc       *service.Descriptor
	serializer codec.Serializer
	routes     map[string]*route // keyed by exposed method name
}

// NewDispatcher builds the routing table for a service. Every declared
// method must resolve to a handler — from impl by declared name, falling
// back to the handler attached at declaration time — or construction fails
// with a *service.DeclarationError.
func NewDispatcher(desc *service.Descriptor, serializer codec.Serializer, impl Implementation) (*Dispatcher, error) {
	d := &Dispatcher{
		desc:       desc,
		serializer: serializer,
		routes:     make(map[string]*route, len(desc.Methods())),
	}
	for _, m := range desc.Methods() {
		h := m.Handler()
		if override, ok := impl[m.Name()]; ok {
			h = override
		}
		if h == nil {
			return nil, &service.DeclarationError{
				Service: desc.Name(), Method: m.Name(),
				Reason: "no handler supplied for method",
			}
		}
		d.routes[m.ExposedName()] = &route{method: m, handler: h}
	}
	return d, nil
}

// Dispatch processes one inbound call: look up the method, deserialize the
// wire arguments, bind them against the declaration, invoke the handler,
// and serialize the result.
//
// An unknown method yields a *DispatchError; a binding failure yields a
// *binding.Error; anything a handler returns comes back unchanged for the
// adapter to report as an application error.
func (d *Dispatcher) Dispatch(ctx context.Context, method string, wireArgs []any, wireKwargs map[string]any) (any, error) {
	rt, ok := d.routes[method]
	if !ok {
		return nil, &DispatchError{Method: method}
	}

	args, err := d.deserializeArgs(method, wireArgs)
	if err != nil {
		return nil, err
	}
	kwargs, err := d.deserializeKwargs(method, wireKwargs)
	if err != nil {
		return nil, err
	}

	bound, err := binding.Bind(rt.method, args, kwargs)
	if err != nil {
		return nil, err
	}

	result, err := rt.handler(ctx, bound)
	if err != nil {
		return nil, err
	}

	wireResult, err := d.serializer.Serialize(method, result)
	if err != nil {
		return nil, fmt.Errorf("serialize result for %s: %w", method, err)
	}
	return wireResult, nil
}

func (d *Dispatcher) deserializeArgs(method string, wireArgs []any) ([]any, error) {
	if wireArgs == nil {
		return nil, nil
	}
	v, err := d.serializer.Deserialize(method, wireArgs)
	if err != nil {
		return nil, fmt.Errorf("deserialize args for %s: %w", method, err)
	}
	args, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("deserialize args for %s: hook returned %T, want []any", method, v)
	}
	return args, nil
}

func (d *Dispatcher) deserializeKwargs(method string, wireKwargs map[string]any) (map[string]any, error) {
	if wireKwargs == nil {
		return nil, nil
	}
	v, err := d.serializer.Deserialize(method, wireKwargs)
	if err != nil {
		return nil, fmt.Errorf("deserialize kwargs for %s: %w", method, err)
	}
	kwargs, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("deserialize kwargs for %s: hook returned %T, want map[string]any", method, v)
	}
	return kwargs, nil
}

// Handle is the envelope-level entry point the transport adapters (and the
// middleware chain) call. It never lets an implementation failure escape:
// every outcome is a response envelope.
func (d *Dispatcher) Handle(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	args, kwargs, perr := jsonrpc.DecodeParams(req.Params)
	if perr != nil {
		return jsonrpc.NewErrorResponse(req.ID, perr)
	}

	result, err := d.Dispatch(ctx, req.Method, args, kwargs)
	if err != nil {
		return jsonrpc.NewErrorResponse(req.ID, toRPCError(err))
	}

	resp, err := jsonrpc.NewResultResponse(req.ID, result)
	if err != nil {
		return jsonrpc.NewErrorResponse(req.ID, &jsonrpc.Error{
			Code:    jsonrpc.CodeInternal,
			Message: "internal error",
			Data:    err.Error(),
		})
	}
	return resp
}

// toRPCError maps dispatch outcomes onto the wire error taxonomy: unknown
// method → method not found, binding failure → invalid params, anything
// else → structured application error.
func toRPCError(err error) *jsonrpc.Error {
	var de *DispatchError
	if errors.As(err, &de) {
		return &jsonrpc.Error{Code: jsonrpc.CodeMethodNotFound, Message: "method not found", Data: de.Method}
	}
	var be *binding.Error
	if errors.As(err, &be) {
		return &jsonrpc.Error{Code: jsonrpc.CodeInvalidParams, Message: "invalid params", Data: be.Error()}
	}
	return &jsonrpc.Error{Code: jsonrpc.CodeApplication, Message: err.Error()}
}

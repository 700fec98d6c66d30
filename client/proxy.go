// Package client generates the client-side proxy: a concrete object exposing
// one bound invoker per declared method, where every call is bound, pushed
// through the serialization hook, and handed to the request client — so
// callers cannot tell a proxy apart from a local implementation.
package client

import (
	"context"
	"fmt"

	"sigrpc/binding"
	"sigrpc/codec"
	"sigrpc/service"
	"sigrpc/transport"
)

// Proxy satisfies a service declaration remotely. It is built once per
// (descriptor, serializer, client, address) combination and holds no
// per-call state: concurrent calls through one Proxy are safe.
type Proxy struct {
	desc       *service.Descriptor
	serializer codec.Serializer
	client     transport.RequestClient
	addr       string
	invokers   map[string]*Invoker // keyed by declared method name
}

// NewProxy builds a proxy for the declared service, with its method dispatch
// table constructed up front from the descriptor.
func NewProxy(desc *service.Descriptor, serializer codec.Serializer, rc transport.RequestClient, addr string) *Proxy {
	p := &Proxy{
		desc:       desc,
		serializer: serializer,
		client:     rc,
		addr:       addr,
		invokers:   make(map[string]*Invoker, len(desc.Methods())),
	}
	for _, m := range desc.Methods() {
		p.invokers[m.Name()] = &Invoker{proxy: p, method: m}
	}
	return p
}

// Invoker returns the prebound invoker for a declared method, for callers
// that resolve the method once and call it many times.
func (p *Proxy) Invoker(method string) (*Invoker, bool) {
	inv, ok := p.invokers[method]
	return inv, ok
}

// Call invokes a declared method with positional arguments only.
func (p *Proxy) Call(ctx context.Context, method string, args ...any) (any, error) {
	return p.CallNamed(ctx, method, args, nil)
}

// CallNamed invokes a declared method with positional and keyword arguments,
// exactly as a direct call to the original interface would accept them.
func (p *Proxy) CallNamed(ctx context.Context, method string, args []any, kwargs map[string]any) (any, error) {
	inv, ok := p.invokers[method]
	if !ok {
		return nil, fmt.Errorf("proxy: unknown method: %s.%s", p.desc.Name(), method)
	}
	return inv.CallNamed(ctx, args, kwargs)
}

// Invoker is one method of the proxy, bound at construction time.
type Invoker struct {
	proxy  *Proxy
	method *service.Method
}

// Call invokes the method with positional arguments only.
func (inv *Invoker) Call(ctx context.Context, args ...any) (any, error) {
	return inv.CallNamed(ctx, args, nil)
}

// CallNamed runs the full per-call pipeline:
//
//	bind → serialize → make request → deserialize
//
// A binding failure is returned unchanged before any network activity — it
// is a contract violation at the call site, not a network error. Transport
// and protocol errors from the request client propagate unchanged as well.
func (inv *Invoker) CallNamed(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	bound, err := binding.Bind(inv.method, args, kwargs)
	if err != nil {
		return nil, err
	}

	wireName := inv.method.ExposedName()
	wireParams, err := inv.proxy.serializer.Serialize(wireName, bound.Map())
	if err != nil {
		return nil, fmt.Errorf("serialize params for %s: %w", wireName, err)
	}

	rawResult, err := inv.proxy.client.MakeRequest(ctx, inv.proxy.addr, wireName, wireParams)
	if err != nil {
		return nil, err
	}

	result, err := inv.proxy.serializer.Deserialize(wireName, rawResult)
	if err != nil {
		return nil, fmt.Errorf("deserialize result for %s: %w", wireName, err)
	}
	return result, nil
}

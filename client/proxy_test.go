package client

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"sigrpc/binding"
	"sigrpc/codec"
	"sigrpc/service"
)

// fakeRequestClient records the single call made through it.
type fakeRequestClient struct {
	calls  int
	addr   string
	method string
	params any
	result any
	err    error
}

func (f *fakeRequestClient) MakeRequest(ctx context.Context, addr, method string, params any) (any, error) {
	f.calls++
	f.addr, f.method, f.params = addr, method, params
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// taggingSerializer marks data on each direction so tests can verify the
// hook ran exactly where the pipeline says it runs.
type taggingSerializer struct{}

func (taggingSerializer) Serialize(method string, data any) (any, error) {
	return map[string]any{"tagged": data, "method": method}, nil
}

func (taggingSerializer) Deserialize(method string, data any) (any, error) {
	return fmt.Sprintf("deserialized:%v", data), nil
}

func barDescriptor(t *testing.T) *service.Descriptor {
	t.Helper()
	desc, err := service.New("Foo",
		service.NewMethod("bar", nil, service.Param("x"), service.ParamDefault("y", 3)),
	)
	if err != nil {
		t.Fatal(err)
	}
	return desc
}

func TestProxyCallPipeline(t *testing.T) {
	fake := &fakeRequestClient{result: "raw"}
	p := NewProxy(barDescriptor(t), taggingSerializer{}, fake, "http://svc")

	result, err := p.Call(context.Background(), "bar", 1)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	if fake.addr != "http://svc" || fake.method != "bar" {
		t.Errorf("request: addr=%s method=%s", fake.addr, fake.method)
	}
	wantParams := map[string]any{"tagged": map[string]any{"x": 1, "y": 3}, "method": "bar"}
	if !reflect.DeepEqual(fake.params, wantParams) {
		t.Errorf("wire params: got %v, want %v", fake.params, wantParams)
	}
	if result != "deserialized:raw" {
		t.Errorf("result: got %v", result)
	}
}

func TestProxyAppliesDefaults(t *testing.T) {
	fake := &fakeRequestClient{result: "r"}
	p := NewProxy(barDescriptor(t), codec.Passthrough{}, fake, "addr")

	if _, err := p.Call(context.Background(), "bar", 1); err != nil {
		t.Fatal(err)
	}
	withDefault := fake.params

	if _, err := p.CallNamed(context.Background(), "bar", []any{1}, map[string]any{"y": 3}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(withDefault, fake.params) {
		t.Errorf("omitted default and explicit default sent different params: %v vs %v", withDefault, fake.params)
	}
}

func TestProxyBindingErrorBeforeNetwork(t *testing.T) {
	fake := &fakeRequestClient{}
	p := NewProxy(barDescriptor(t), codec.Passthrough{}, fake, "addr")

	_, err := p.Call(context.Background(), "bar")
	var be *binding.Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *binding.Error, got %T: %v", err, err)
	}
	if be.Reason != binding.ReasonMissingRequired || be.Param != "x" {
		t.Errorf("unexpected binding error: %+v", be)
	}
	if fake.calls != 0 {
		t.Error("binding failures must not reach the network")
	}

	_, err = p.Call(context.Background(), "bar", 1, 2, 3)
	if !errors.As(err, &be) || be.Reason != binding.ReasonTooManyPositional {
		t.Errorf("expected too-many-positional, got %v", err)
	}
	if fake.calls != 0 {
		t.Error("binding failures must not reach the network")
	}
}

func TestProxyTransportErrorUnchanged(t *testing.T) {
	wantErr := errors.New("transport down")
	fake := &fakeRequestClient{err: wantErr}
	p := NewProxy(barDescriptor(t), codec.Passthrough{}, fake, "addr")

	_, err := p.Call(context.Background(), "bar", 1)
	if !errors.Is(err, wantErr) {
		t.Errorf("transport error not propagated unchanged: %v", err)
	}
}

func TestProxyUnknownMethod(t *testing.T) {
	p := NewProxy(barDescriptor(t), codec.Passthrough{}, &fakeRequestClient{}, "addr")
	if _, err := p.Call(context.Background(), "nope"); err == nil {
		t.Error("expected an error for an undeclared method")
	}
	if _, ok := p.Invoker("nope"); ok {
		t.Error("Invoker must not resolve undeclared methods")
	}
}

func TestProxyUsesExposedName(t *testing.T) {
	desc, err := service.New("Foo",
		service.NewMethod("DoBar", nil, service.Param("x")).WithExposedName("bar"),
	)
	if err != nil {
		t.Fatal(err)
	}
	fake := &fakeRequestClient{result: "r"}
	p := NewProxy(desc, codec.Passthrough{}, fake, "addr")

	// Callers use the declared name; the wire carries the exposed name.
	if _, err := p.Call(context.Background(), "DoBar", 1); err != nil {
		t.Fatal(err)
	}
	if fake.method != "bar" {
		t.Errorf("wire method: got %s, want bar", fake.method)
	}
}

func TestInvokerReuse(t *testing.T) {
	fake := &fakeRequestClient{result: "r"}
	p := NewProxy(barDescriptor(t), codec.Passthrough{}, fake, "addr")

	inv, ok := p.Invoker("bar")
	if !ok {
		t.Fatal("expected invoker for bar")
	}
	for i := 0; i < 3; i++ {
		if _, err := inv.Call(context.Background(), i); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}
	if fake.calls != 3 {
		t.Errorf("calls: got %d, want 3", fake.calls)
	}
}

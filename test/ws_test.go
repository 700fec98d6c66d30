package test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"sigrpc/client"
	"sigrpc/codec"
	"sigrpc/middleware"
	"sigrpc/server"
	"sigrpc/transport"
)

func newWSProxy(t *testing.T) (*client.Proxy, func()) {
	t.Helper()
	d, err := server.NewDispatcher(newDescriptor(t), codec.Passthrough{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := server.NewServer(server.DefaultConfig())
	s.Use(middleware.Recovery())
	s.MountWS("/ws", d)

	srv := httptest.NewServer(s.Handler())
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	wc := transport.NewWSClient(4)
	p := client.NewProxy(newDescriptor(t), codec.Passthrough{}, wc, wsURL)
	return p, func() {
		wc.Close()
		srv.Close()
	}
}

func TestWebsocketRoundTrip(t *testing.T) {
	p, stop := newWSProxy(t)
	defer stop()
	ctx := context.Background()

	result, err := p.Call(ctx, "bar", 1)
	if err != nil {
		t.Fatalf("bar(1) failed: %v", err)
	}
	if result != float64(11) {
		t.Errorf("bar(1): got %v, want 11", result)
	}

	result, err = p.CallNamed(ctx, "bar", nil, map[string]any{"y": 10, "x": 2})
	if err != nil {
		t.Fatalf("bar(y=10, x=2) failed: %v", err)
	}
	if result != float64(34) {
		t.Errorf("bar(y=10, x=2): got %v, want 34", result)
	}
}

func TestWebsocketConcurrentCalls(t *testing.T) {
	p, stop := newWSProxy(t)
	defer stop()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := p.Call(context.Background(), "bar", i)
			if err != nil {
				errs <- err
				return
			}
			want := float64(i*2 + 3*3)
			if result != want {
				errs <- fmt.Errorf("bar(%d): got %v, want %v", i, result, want)
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

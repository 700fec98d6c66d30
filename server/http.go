package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	"sigrpc/jsonrpc"
	"sigrpc/middleware"
)

// Server is the transport adapter: it frames JSON-RPC envelopes over HTTP
// POST (and optionally websocket), fans inbound requests out, and feeds
// mounted dispatchers through the middleware chain.
type Server struct {
	cfg         Config
	middlewares []middleware.Middleware
	mounts      []mountPoint

	httpServer *http.Server
	shutdown   atomic.Bool

	wsMu    sync.Mutex
	wsConns map[*wsConn]struct{}
	wsWG    sync.WaitGroup // in-flight websocket requests, for graceful shutdown
}

type mountPoint struct {
	path       string
	dispatcher *Dispatcher
	websocket  bool
}

// NewServer creates a server with no mounted dispatchers.
func NewServer(cfg Config) *Server {
	return &Server{cfg: cfg, wsConns: make(map[*wsConn]struct{})}
}

// Use registers a middleware. Middlewares are applied in the order they are
// added, around every mounted dispatcher. Must be called before Handler or
// ListenAndServe.
func (s *Server) Use(mw middleware.Middleware) {
	s.middlewares = append(s.middlewares, mw)
}

// Mount exposes a dispatcher at the given path over HTTP POST.
func (s *Server) Mount(path string, d *Dispatcher) {
	s.mounts = append(s.mounts, mountPoint{path: path, dispatcher: d})
}

// MountWS exposes a dispatcher at the given path over websocket.
func (s *Server) MountWS(path string, d *Dispatcher) {
	s.mounts = append(s.mounts, mountPoint{path: path, dispatcher: d, websocket: true})
}

// Handler builds the http.Handler serving every mount. The middleware chain
// is composed once here, not per request.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, m := range s.mounts {
		h := middleware.Chain(s.middlewares...)(m.dispatcher.Handle)
		if m.websocket {
			mux.HandleFunc(m.path, s.websocketEndpoint(h))
		} else {
			mux.HandleFunc(m.path, s.httpEndpoint(h))
		}
	}
	return mux
}

// ListenAndServe serves until Shutdown is called or the listener fails.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) && s.shutdown.Load() {
		return nil
	}
	return err
}

// Shutdown performs graceful shutdown: stop accepting connections, wait for
// in-flight requests (bounded by the configured shutdown timeout), then
// close any remaining websocket connections.
func (s *Server) Shutdown() error {
	s.shutdown.Store(true)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	// Hijacked websocket connections are not covered by http.Server.Shutdown.
	done := make(chan struct{})
	go func() {
		s.wsWG.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		err = fmt.Errorf("timeout waiting for in-flight requests to finish")
	}

	s.wsMu.Lock()
	for c := range s.wsConns {
		c.conn.Close()
	}
	s.wsConns = make(map[*wsConn]struct{})
	s.wsMu.Unlock()

	return err
}

// httpEndpoint adapts one dispatcher chain to an HTTP POST endpoint.
// Envelope-level failures (unparseable body, invalid request) are returned
// as error responses with status 200, the transport's job being framing
// only; method-level transport misuse gets plain HTTP statuses.
func (s *Server) httpEndpoint(h middleware.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		body := r.Body
		if s.cfg.MaxBodySize > 0 {
			body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodySize)
		}
		data, err := io.ReadAll(body)
		if err != nil {
			writeResponse(w, jsonrpc.NewErrorResponse(0, &jsonrpc.Error{
				Code:    jsonrpc.CodeInvalidRequest,
				Message: "invalid request",
				Data:    err.Error(),
			}))
			return
		}

		req, rpcErr := jsonrpc.DecodeRequest(data)
		if rpcErr != nil {
			writeResponse(w, jsonrpc.NewErrorResponse(0, rpcErr))
			return
		}
		writeResponse(w, h(r.Context(), req))
	}
}

func writeResponse(w http.ResponseWriter, resp *jsonrpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

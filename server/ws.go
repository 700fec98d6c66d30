package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"sigrpc/jsonrpc"
	"sigrpc/middleware"
)

// wsConn is one upgraded connection. The read loop is a single goroutine
// (frame boundaries require sequential reads) while each request is handled
// on its own goroutine; the write mutex keeps concurrently produced
// responses from interleaving on the connection.
type wsConn struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// websocketEndpoint adapts one dispatcher chain to a websocket endpoint:
// each inbound text message is a request envelope, each outbound one a
// response envelope.
func (s *Server) websocketEndpoint(h middleware.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade failed: %v", err)
			return
		}
		c := &wsConn{conn: conn}

		s.wsMu.Lock()
		if s.shutdown.Load() {
			s.wsMu.Unlock()
			conn.Close()
			return
		}
		s.wsConns[c] = struct{}{}
		s.wsMu.Unlock()

		defer func() {
			s.wsMu.Lock()
			delete(s.wsConns, c)
			s.wsMu.Unlock()
			conn.Close()
		}()

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return // connection closed or broken
			}
			// One goroutine per request: a slow handler must not block
			// later requests arriving on the same connection.
			s.wsWG.Add(1)
			go s.handleWSRequest(r.Context(), c, h, data)
		}
	}
}

func (s *Server) handleWSRequest(ctx context.Context, c *wsConn, h middleware.HandlerFunc, data []byte) {
	defer s.wsWG.Done()

	var resp *jsonrpc.Response
	req, rpcErr := jsonrpc.DecodeRequest(data)
	if rpcErr != nil {
		resp = jsonrpc.NewErrorResponse(0, rpcErr)
	} else {
		resp = h(ctx, req)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		log.Printf("failed to encode response: %v", err)
		return
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, out); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

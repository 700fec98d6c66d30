package transport

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"sigrpc/jsonrpc"
)

// WSClient is a RequestClient over websocket connections.
//
// Each call checks a connection out of a per-address pool, performs one
// request/response exchange, and returns it. Connections are never shared by
// in-flight calls, so no response demultiplexing is needed; a broken
// connection is marked unusable and replaced on the next checkout.
type WSClient struct {
	mu       sync.Mutex
	pools    map[string]*connPool
	poolSize int
	dialer   *websocket.Dialer
	seq      atomic.Uint64
}

// NewWSClient creates a websocket request client keeping up to poolSize
// connections per address.
func NewWSClient(poolSize int) *WSClient {
	if poolSize <= 0 {
		poolSize = 1
	}
	return &WSClient{
		pools:    make(map[string]*connPool),
		poolSize: poolSize,
		dialer:   websocket.DefaultDialer,
	}
}

func (c *WSClient) pool(addr string) *connPool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pools[addr]
	if !ok {
		p = newConnPool(addr, c.poolSize, func() (*websocket.Conn, error) {
			conn, _, err := c.dialer.Dial(addr, nil)
			return conn, err
		})
		c.pools[addr] = p
	}
	return p
}

// MakeRequest performs one remote call over a pooled websocket connection.
func (c *WSClient) MakeRequest(ctx context.Context, addr, method string, params any) (any, error) {
	id := c.seq.Add(1)
	req, err := jsonrpc.NewRequest(method, params, id)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	pool := c.pool(addr)
	conn, err := pool.get()
	if err != nil {
		return nil, &Error{Op: "dial", Addr: addr, Err: err}
	}
	defer pool.put(conn)

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetWriteDeadline(deadline)
		conn.SetReadDeadline(deadline)
	} else {
		conn.SetWriteDeadline(time.Time{})
		conn.SetReadDeadline(time.Time{})
	}

	if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
		conn.unusable = true
		return nil, &Error{Op: "write", Addr: addr, Timeout: isTimeout(err), Err: err}
	}
	_, raw, err := conn.ReadMessage()
	if err != nil {
		conn.unusable = true
		return nil, &Error{Op: "read", Addr: addr, Timeout: isTimeout(err), Err: err}
	}
	return jsonrpc.DecodeResponse(raw, id)
}

// Close shuts down every pool and closes all idle connections.
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pools {
		p.close()
	}
	c.pools = make(map[string]*connPool)
}

package transport

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// connPool manages reusable websocket connections to a single address.
//
// Connections are used exclusively: a caller checks one out, performs a full
// request/response exchange, and returns it. A buffered channel serves as
// the pool — FIFO, goroutine-safe, with blocking on empty built in.
type connPool struct {
	mu       sync.Mutex
	conns    chan *poolConn
	addr     string
	maxConns int
	curConns int // connections created so far (may be < maxConns)
	factory  func() (*websocket.Conn, error)
}

// poolConn wraps a websocket connection with pool metadata.
type poolConn struct {
	*websocket.Conn
	unusable bool // marked when the connection encounters an error
}

// newConnPool creates a pool with the given max size. Connections are
// created lazily — the pool starts empty and grows on demand.
func newConnPool(addr string, maxConns int, factory func() (*websocket.Conn, error)) *connPool {
	return &connPool{
		conns:    make(chan *poolConn, maxConns),
		addr:     addr,
		maxConns: maxConns,
		factory:  factory,
	}
}

// get retrieves a connection:
//  1. an idle connection from the channel, if any
//  2. a freshly dialed one, while under the limit
//  3. otherwise block until a connection is returned
func (p *connPool) get() (*poolConn, error) {
	select {
	case conn := <-p.conns:
		if conn.unusable {
			return p.createNew()
		}
		return conn, nil
	default:
		p.mu.Lock()
		under := p.curConns < p.maxConns
		p.mu.Unlock()
		if under {
			return p.createNew()
		}
		conn := <-p.conns
		if conn.unusable {
			return p.createNew()
		}
		return conn, nil
	}
}

// put returns a connection to the pool. Unusable connections are closed and
// discarded so the next get dials a replacement.
func (p *connPool) put(conn *poolConn) {
	if conn.unusable {
		conn.Close()
		p.mu.Lock()
		p.curConns--
		p.mu.Unlock()
		return
	}
	p.conns <- conn
}

// close shuts down the pool and closes all idle connections.
func (p *connPool) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	close(p.conns)
	for conn := range p.conns {
		conn.Close()
		p.curConns--
	}
}

// createNew dials a new connection via the factory, guarded by the mutex so
// concurrent callers cannot exceed maxConns.
func (p *connPool) createNew() (*poolConn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.curConns >= p.maxConns {
		return nil, fmt.Errorf("connection pool for %s exhausted", p.addr)
	}

	conn, err := p.factory()
	if err != nil {
		return nil, err
	}
	p.curConns++
	return &poolConn{Conn: conn}, nil
}

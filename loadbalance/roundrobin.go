package loadbalance

import (
	"fmt"
	"sync/atomic"
)

// RoundRobin distributes calls evenly across all endpoints in order.
// Uses an atomic counter for lock-free, goroutine-safe operation.
type RoundRobin struct {
	counter atomic.Int64
}

// Pick selects the next endpoint in round-robin order.
func (b *RoundRobin) Pick(endpoints []Endpoint) (*Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}
	index := b.counter.Add(1) % int64(len(endpoints))
	return &endpoints[index], nil
}

func (b *RoundRobin) Name() string {
	return "RoundRobin"
}

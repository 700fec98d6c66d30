// Package loadbalance provides strategies for spreading calls across a
// static list of endpoints.
//
// Two strategies are implemented:
//   - RoundRobin:      equal-capacity endpoints
//   - WeightedRandom:  heterogeneous endpoints (different capacity)
//
// Endpoints are supplied explicitly at client construction; there is no
// discovery layer behind them.
package loadbalance

// Endpoint is one addressable server instance.
type Endpoint struct {
	Addr   string
	Weight int // relative capacity for weighted strategies
}

// Balancer selects an endpoint for one call. Pick is called on every call
// and must be goroutine-safe.
type Balancer interface {
	Pick(endpoints []Endpoint) (*Endpoint, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}

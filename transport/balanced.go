package transport

import (
	"context"

	"sigrpc/loadbalance"
)

// LoadBalanced spreads calls across a static endpoint list, picking one
// endpoint per call with the configured balancer and delegating to the
// wrapped client. The addr a caller passes is treated as a logical service
// address and replaced by the picked endpoint.
type LoadBalanced struct {
	inner     RequestClient
	balancer  loadbalance.Balancer
	endpoints []loadbalance.Endpoint
}

func NewLoadBalanced(inner RequestClient, bal loadbalance.Balancer, endpoints []loadbalance.Endpoint) *LoadBalanced {
	eps := make([]loadbalance.Endpoint, len(endpoints))
	copy(eps, endpoints)
	return &LoadBalanced{inner: inner, balancer: bal, endpoints: eps}
}

func (c *LoadBalanced) MakeRequest(ctx context.Context, addr, method string, params any) (any, error) {
	ep, err := c.balancer.Pick(c.endpoints)
	if err != nil {
		return nil, &Error{Op: "balance", Addr: addr, Err: err}
	}
	return c.inner.MakeRequest(ctx, ep.Addr, method, params)
}

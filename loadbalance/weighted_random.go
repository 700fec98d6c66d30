package loadbalance

import (
	"fmt"
	"math/rand"
)

// WeightedRandom picks endpoints randomly in proportion to their weight.
// Endpoints with non-positive weight count as weight 1 so a partially
// weighted list still includes every endpoint.
type WeightedRandom struct{}

func (b *WeightedRandom) Pick(endpoints []Endpoint) (*Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints available")
	}

	totalWeight := 0
	for _, ep := range endpoints {
		totalWeight += effectiveWeight(ep)
	}

	r := rand.Intn(totalWeight)
	for i := range endpoints {
		r -= effectiveWeight(endpoints[i])
		if r < 0 {
			return &endpoints[i], nil
		}
	}

	return nil, fmt.Errorf("unexpected error in weighted random selection")
}

func (b *WeightedRandom) Name() string {
	return "WeightedRandom"
}

func effectiveWeight(ep Endpoint) int {
	if ep.Weight <= 0 {
		return 1
	}
	return ep.Weight
}

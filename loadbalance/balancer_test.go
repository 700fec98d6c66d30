package loadbalance

import "testing"

func TestRoundRobin(t *testing.T) {
	endpoints := []Endpoint{
		{Addr: "a"}, {Addr: "b"}, {Addr: "c"},
	}
	b := &RoundRobin{}

	counts := make(map[string]int)
	for i := 0; i < 9; i++ {
		ep, err := b.Pick(endpoints)
		if err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		counts[ep.Addr]++
	}
	for _, ep := range endpoints {
		if counts[ep.Addr] != 3 {
			t.Errorf("endpoint %s picked %d times, want 3", ep.Addr, counts[ep.Addr])
		}
	}
}

func TestRoundRobinEmpty(t *testing.T) {
	b := &RoundRobin{}
	if _, err := b.Pick(nil); err == nil {
		t.Error("expected an error for an empty endpoint list")
	}
}

func TestWeightedRandom(t *testing.T) {
	endpoints := []Endpoint{
		{Addr: "heavy", Weight: 9},
		{Addr: "light", Weight: 1},
	}
	b := &WeightedRandom{}

	counts := make(map[string]int)
	for i := 0; i < 1000; i++ {
		ep, err := b.Pick(endpoints)
		if err != nil {
			t.Fatalf("Pick failed: %v", err)
		}
		counts[ep.Addr]++
	}
	if counts["heavy"] <= counts["light"] {
		t.Errorf("weight not respected: heavy=%d light=%d", counts["heavy"], counts["light"])
	}
	if counts["light"] == 0 {
		t.Error("light endpoint never picked")
	}
}

func TestWeightedRandomZeroWeights(t *testing.T) {
	endpoints := []Endpoint{{Addr: "a"}, {Addr: "b"}}
	b := &WeightedRandom{}
	for i := 0; i < 100; i++ {
		if _, err := b.Pick(endpoints); err != nil {
			t.Fatalf("Pick with zero weights failed: %v", err)
		}
	}
}

func TestBalancerNames(t *testing.T) {
	if (&RoundRobin{}).Name() != "RoundRobin" {
		t.Error("unexpected RoundRobin name")
	}
	if (&WeightedRandom{}).Name() != "WeightedRandom" {
		t.Error("unexpected WeightedRandom name")
	}
}

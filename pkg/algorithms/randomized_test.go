package algorithms_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"

	"github.com/k8s-heuristics/graspsched/pkg/algorithms"
	"github.com/k8s-heuristics/graspsched/pkg/framework"
	"github.com/k8s-heuristics/graspsched/pkg/generator"
)

// Three wide-open nodes with strictly increasing marginal costs.
func threeCostTiers() *framework.Instance {
	return &framework.Instance{
		Nodes: []framework.NodeInfo{
			{Idx: 0, Capacity: 100, OpeningCost: 0, AllocationCost: 1},
			{Idx: 1, Capacity: 100, OpeningCost: 0, AllocationCost: 5},
			{Idx: 2, Capacity: 100, OpeningCost: 0, AllocationCost: 9},
		},
		Pods: []framework.PodInfo{{Idx: 0, Demand: 1}},
	}
}

func TestRCLAlphaZeroPicksOnlyMinimum(t *testing.T) {
	inst := threeCostTiers()
	sol := framework.NewSolution(inst)

	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		algorithms.RandomizedGreedy(sol, 0, rng)
		if got := sol.NodeOf(0); got != 0 {
			t.Fatalf("seed %d: alpha=0 chose node %d, want the minimum-cost node 0", seed, got)
		}
	}
}

func TestRCLAlphaZeroKeepsCostTies(t *testing.T) {
	inst := &framework.Instance{
		Nodes: []framework.NodeInfo{
			{Idx: 0, Capacity: 100, OpeningCost: 0, AllocationCost: 1},
			{Idx: 1, Capacity: 100, OpeningCost: 0, AllocationCost: 1},
			{Idx: 2, Capacity: 100, OpeningCost: 0, AllocationCost: 9},
		},
		Pods: []framework.PodInfo{{Idx: 0, Demand: 1}},
	}
	sol := framework.NewSolution(inst)

	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		algorithms.RandomizedGreedy(sol, 0, rng)
		if got := sol.NodeOf(0); got == 2 {
			t.Fatalf("seed %d: alpha=0 chose node 2 outside the minimum-cost tie", seed)
		}
	}
}

func TestRCLAlphaOneCoversAllFeasibleNodes(t *testing.T) {
	inst := &framework.Instance{
		Nodes: []framework.NodeInfo{
			{Idx: 0, Capacity: 1, OpeningCost: 0, AllocationCost: 1}, // too small
			{Idx: 1, Capacity: 100, OpeningCost: 0, AllocationCost: 5},
			{Idx: 2, Capacity: 100, OpeningCost: 0, AllocationCost: 9},
		},
		Pods: []framework.PodInfo{{Idx: 0, Demand: 10}},
	}
	sol := framework.NewSolution(inst)

	chosen := make(map[int]int)
	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		algorithms.RandomizedGreedy(sol, 1, rng)
		chosen[sol.NodeOf(0)]++
	}

	if chosen[0] > 0 {
		t.Errorf("alpha=1 placed the pod on node 0, which cannot hold it")
	}
	// At alpha=1 the RCL is every feasible candidate, so the seed sweep must
	// draw both node 1 and the max-cost node 2 at least once.
	for _, n := range []int{1, 2} {
		if chosen[n] == 0 {
			t.Errorf("alpha=1 never chose feasible node %d across 50 seeds", n)
		}
	}
}

func TestRandomizedGreedyReproducible(t *testing.T) {
	inst := generator.GenerateDefault(100, 10, 11)

	first := framework.NewSolution(inst)
	algorithms.RandomizedGreedy(first, 0.3, rand.New(rand.NewSource(7)))
	second := framework.NewSolution(inst)
	algorithms.RandomizedGreedy(second, 0.3, rand.New(rand.NewSource(7)))

	if diff := cmp.Diff(first.Assignment(), second.Assignment()); diff != "" {
		t.Errorf("same seed produced different assignments (-first +second):\n%s", diff)
	}
}

func TestRandomizedGreedyFeasibility(t *testing.T) {
	inst := generator.GenerateDefault(500, 20, 3)
	sol := framework.NewSolution(inst)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 5; i++ {
		algorithms.RandomizedGreedy(sol, 0.5, rng)
		if err := sol.Validate(); err != nil {
			t.Fatalf("restart %d: %v", i, err)
		}
	}
}

func TestRandomizedGreedySkipsInfeasiblePod(t *testing.T) {
	inst := &framework.Instance{
		Nodes: []framework.NodeInfo{{Idx: 0, Capacity: 2, OpeningCost: 1, AllocationCost: 1}},
		Pods: []framework.PodInfo{
			{Idx: 0, Demand: 100},
			{Idx: 1, Demand: 1},
		},
	}
	sol := framework.NewSolution(inst)
	algorithms.RandomizedGreedy(sol, 0.5, rand.New(rand.NewSource(1)))

	if got := sol.NodeOf(0); got != framework.Unassigned {
		t.Errorf("oversized pod landed on node %d, want unassigned", got)
	}
	if got := sol.NodeOf(1); got != 0 {
		t.Errorf("pod 1 = node %d, want 0", got)
	}
}

package algorithms

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/k8s-heuristics/graspsched/pkg/framework"
)

// RandomizedGreedy runs the randomized constructive phase of GRASP on sol,
// overwriting any previous assignment.
//
// For each pod in index order it evaluates every feasible node with the same
// marginal cost as the deterministic heuristic, then restricts the candidates
// to those with cost <= minCost + alpha*(maxCost-minCost) and draws one of
// them uniformly from rng. alpha=0 keeps only the minimum-cost candidates
// (including ties), alpha=1 keeps every feasible node. Pods with no feasible
// node are skipped without consuming randomness.
//
// The generator is threaded explicitly so that reproducibility is a property
// of call order: callers sharing one rng across restarts get the exact draw
// sequence of a sequential run.
func RandomizedGreedy(sol *framework.Solution, alpha float64, rng *rand.Rand) {
	sol.Reset()
	inst := sol.Instance()

	var candidates []nodeCost
	for p := range inst.Pods {
		candidates = feasibleCandidates(sol, p, candidates)
		if len(candidates) == 0 {
			continue
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].cost < candidates[j].cost
		})

		minCost := candidates[0].cost
		maxCost := candidates[len(candidates)-1].cost
		threshold := minCost + alpha*(maxCost-minCost)

		// Candidates are sorted, so the RCL is the leading run under the
		// threshold. It always contains the minimum-cost candidates.
		rclSize := len(candidates)
		for i, c := range candidates {
			if c.cost > threshold {
				rclSize = i
				break
			}
		}

		chosen := candidates[rng.Intn(rclSize)].node
		sol.Assign(chosen, p)
	}
}

package algorithms

import (
	"github.com/k8s-heuristics/graspsched/pkg/framework"
)

// nodeCost pairs a candidate node with the marginal cost of placing the
// current pod there.
type nodeCost struct {
	node int
	cost float64
}

// marginalCost returns the cost of placing one more pod on node: the opening
// cost if the node is not yet opened, plus the per-pod allocation cost.
func marginalCost(sol *framework.Solution, node int) float64 {
	info := sol.Instance().Nodes[node]
	cost := info.AllocationCost
	if !sol.Opened(node) {
		cost += info.OpeningCost
	}
	return cost
}

// feasibleCandidates collects every node with enough remaining capacity for
// pod, in node index order, together with its marginal cost. The caller's
// buffer is reused across pods to avoid per-pod allocations.
func feasibleCandidates(sol *framework.Solution, pod int, buf []nodeCost) []nodeCost {
	buf = buf[:0]
	for n := range sol.Instance().Nodes {
		if sol.CanAccommodate(n, pod) {
			buf = append(buf, nodeCost{node: n, cost: marginalCost(sol, n)})
		}
	}
	return buf
}

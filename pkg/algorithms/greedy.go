package algorithms

import (
	"github.com/k8s-heuristics/graspsched/pkg/framework"

	"k8s.io/klog/v2"
)

// Greedy runs the deterministic constructive heuristic on sol, overwriting
// any previous assignment. Pods are processed in index order; each is placed
// on the feasible node with the lowest marginal cost (opening cost if the
// node is still closed, plus allocation cost), the first such node in index
// order winning ties. Pods that fit nowhere stay unassigned.
//
// The result depends only on the instance: two runs produce identical
// assignments and costs.
func Greedy(sol *framework.Solution) {
	sol.Reset()
	inst := sol.Instance()

	for p := range inst.Pods {
		best := -1
		bestCost := 0.0
		for n := range inst.Nodes {
			if !sol.CanAccommodate(n, p) {
				continue
			}
			cost := marginalCost(sol, n)
			if best == -1 || cost < bestCost {
				best = n
				bestCost = cost
			}
		}
		if best == -1 {
			klog.V(5).InfoS("No feasible node for pod", "pod", p, "demand", inst.Pods[p].Demand)
			continue
		}
		sol.Assign(best, p)
	}
}

package algorithms

import (
	"github.com/k8s-heuristics/graspsched/pkg/framework"
)

// FirstFit overwrites sol with the naive baseline assignment: each pod in
// index order goes to the first node in index order with enough remaining
// capacity, ignoring costs entirely. It mimics a default scheduler placement
// and serves as the comparison floor in benchmarks.
func FirstFit(sol *framework.Solution) {
	sol.Reset()
	inst := sol.Instance()

	for p := range inst.Pods {
		for n := range inst.Nodes {
			if sol.CanAccommodate(n, p) {
				sol.Assign(n, p)
				break
			}
		}
	}
}

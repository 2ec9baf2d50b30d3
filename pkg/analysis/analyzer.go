// Package analysis summarizes produced assignments for reporting. It only
// consumes the engine's output contract (assignment, opened nodes, cost) and
// never mutates solution state.
package analysis

import (
	"fmt"
	"io"
	"math"

	"github.com/k8s-heuristics/graspsched/pkg/framework"
)

// NodeUtilization describes how loaded one opened node is.
type NodeUtilization struct {
	Node        int
	Pods        int
	Used        int
	Capacity    int
	Utilization float64 // percent
}

// Breakdown decomposes a solution's cost and load distribution.
type Breakdown struct {
	TotalCost      float64
	OpeningCost    float64
	AllocationCost float64
	OpenedNodes    int
	AssignedPods   int
	Unassigned     []int
	Utilization    []NodeUtilization // opened nodes only, in index order
	MeanUtil       float64
	StdDevUtil     float64
}

// Analyze computes the breakdown for the solution's current assignment.
func Analyze(sol *framework.Solution) Breakdown {
	inst := sol.Instance()
	b := Breakdown{Unassigned: sol.UnassignedPods()}

	for n := range inst.Nodes {
		if !sol.Opened(n) {
			continue
		}
		b.OpenedNodes++
		b.OpeningCost += inst.Nodes[n].OpeningCost
		b.AllocationCost += float64(sol.PodCount(n)) * inst.Nodes[n].AllocationCost
		b.AssignedPods += sol.PodCount(n)

		util := 0.0
		if inst.Nodes[n].Capacity > 0 {
			util = float64(sol.Usage(n)) / float64(inst.Nodes[n].Capacity) * 100
		}
		b.Utilization = append(b.Utilization, NodeUtilization{
			Node:        n,
			Pods:        sol.PodCount(n),
			Used:        sol.Usage(n),
			Capacity:    inst.Nodes[n].Capacity,
			Utilization: util,
		})
	}
	b.TotalCost = b.OpeningCost + b.AllocationCost

	if len(b.Utilization) > 0 {
		for _, u := range b.Utilization {
			b.MeanUtil += u.Utilization
		}
		b.MeanUtil /= float64(len(b.Utilization))

		variance := 0.0
		for _, u := range b.Utilization {
			variance += (u.Utilization - b.MeanUtil) * (u.Utilization - b.MeanUtil)
		}
		variance /= float64(len(b.Utilization))
		b.StdDevUtil = math.Sqrt(variance)
	}
	return b
}

// Print writes a human-readable report to w.
func (b Breakdown) Print(w io.Writer) {
	fmt.Fprintf(w, "Total cost: %.2f (opening %.2f + allocation %.2f)\n",
		b.TotalCost, b.OpeningCost, b.AllocationCost)
	fmt.Fprintf(w, "Opened nodes: %d\n", b.OpenedNodes)
	fmt.Fprintf(w, "Assigned pods: %d (%d unassigned)\n", b.AssignedPods, len(b.Unassigned))
	if len(b.Unassigned) > 0 {
		fmt.Fprintf(w, "Unassigned pods: %v\n", b.Unassigned)
	}
	for _, u := range b.Utilization {
		fmt.Fprintf(w, "  node %d: %d pods, %d/%d used (%.1f%%)\n",
			u.Node, u.Pods, u.Used, u.Capacity, u.Utilization)
	}
	if len(b.Utilization) > 0 {
		fmt.Fprintf(w, "Utilization: mean %.1f%%, stddev %.1f\n", b.MeanUtil, b.StdDevUtil)
	}
}

package framework

import (
	"fmt"

	"k8s.io/klog/v2"
)

// Unassigned marks a pod without a node in the assignment table.
const Unassigned = -1

// Solution is a mutable partial assignment of pods to nodes. The assignment
// table (pod index -> node index) is the single source of truth; each node
// additionally tracks its usage and the ids of its assigned pods so that
// feasibility checks and cost deltas are O(1).
//
// All mutation goes through CanAccommodate/Assign/Unassign/Reset. The capacity
// invariant (usage <= capacity for every node) holds whenever a caller can
// observe the state.
type Solution struct {
	inst      *Instance
	podToNode []int
	usage     []int
	nodePods  [][]int
}

// NewSolution creates an empty assignment for the given instance.
func NewSolution(inst *Instance) *Solution {
	s := &Solution{
		inst:      inst,
		podToNode: make([]int, inst.NumPods()),
		usage:     make([]int, inst.NumNodes()),
		nodePods:  make([][]int, inst.NumNodes()),
	}
	for i := range s.podToNode {
		s.podToNode[i] = Unassigned
	}
	return s
}

// Instance returns the problem instance this solution belongs to.
func (s *Solution) Instance() *Instance { return s.inst }

// CanAccommodate reports whether node has enough remaining capacity for pod.
func (s *Solution) CanAccommodate(node, pod int) bool {
	return s.usage[node]+s.inst.Pods[pod].Demand <= s.inst.Nodes[node].Capacity
}

// Assign places pod on node. The caller must have verified feasibility with
// CanAccommodate; a capacity violation here means move validation is broken
// and is treated as a hard failure rather than a recoverable error.
func (s *Solution) Assign(node, pod int) {
	if s.podToNode[pod] != Unassigned {
		klog.Fatalf("pod %d already assigned to node %d", pod, s.podToNode[pod])
	}
	if !s.CanAccommodate(node, pod) {
		klog.Fatalf("capacity invariant violated: node %d usage %d + pod %d demand %d > capacity %d",
			node, s.usage[node], pod, s.inst.Pods[pod].Demand, s.inst.Nodes[node].Capacity)
	}
	s.podToNode[pod] = node
	s.usage[node] += s.inst.Pods[pod].Demand
	s.nodePods[node] = append(s.nodePods[node], pod)
}

// Unassign removes pod from node, reversing a previous Assign.
func (s *Solution) Unassign(node, pod int) {
	if s.podToNode[pod] != node {
		klog.Fatalf("pod %d is not assigned to node %d (assigned to %d)", pod, node, s.podToNode[pod])
	}
	s.podToNode[pod] = Unassigned
	s.usage[node] -= s.inst.Pods[pod].Demand
	pods := s.nodePods[node]
	for i, p := range pods {
		if p == pod {
			s.nodePods[node] = append(pods[:i], pods[i+1:]...)
			break
		}
	}
}

// Reset clears every assignment, returning the solution to the empty state.
func (s *Solution) Reset() {
	for i := range s.podToNode {
		s.podToNode[i] = Unassigned
	}
	for n := range s.usage {
		s.usage[n] = 0
		s.nodePods[n] = s.nodePods[n][:0]
	}
}

// NodeOf returns the node holding pod, or Unassigned.
func (s *Solution) NodeOf(pod int) int { return s.podToNode[pod] }

// Usage returns the sum of demands of the pods assigned to node.
func (s *Solution) Usage(node int) int { return s.usage[node] }

// PodCount returns the number of pods assigned to node.
func (s *Solution) PodCount(node int) int { return len(s.nodePods[node]) }

// Opened reports whether node holds at least one pod.
func (s *Solution) Opened(node int) bool { return len(s.nodePods[node]) > 0 }

// OpenedCount returns the number of opened nodes.
func (s *Solution) OpenedCount() int {
	count := 0
	for n := range s.nodePods {
		if len(s.nodePods[n]) > 0 {
			count++
		}
	}
	return count
}

// OpenMask returns a boolean mask over nodes, true for opened ones.
func (s *Solution) OpenMask() []bool {
	mask := make([]bool, s.inst.NumNodes())
	for n := range s.nodePods {
		mask[n] = len(s.nodePods[n]) > 0
	}
	return mask
}

// UnassignedPods returns the indices of pods without a node, in index order.
func (s *Solution) UnassignedPods() []int {
	var pods []int
	for p, n := range s.podToNode {
		if n == Unassigned {
			pods = append(pods, p)
		}
	}
	return pods
}

// Assignment returns a copy of the assignment table.
func (s *Solution) Assignment() []int {
	out := make([]int, len(s.podToNode))
	copy(out, s.podToNode)
	return out
}

// CopyFrom overwrites s with the assignment held by other. Both solutions
// must belong to the same instance.
func (s *Solution) CopyFrom(other *Solution) {
	s.Reset()
	for p, n := range other.podToNode {
		if n != Unassigned {
			s.Assign(n, p)
		}
	}
}

// Clone returns an independent copy of the solution. Concurrent restarts must
// each work on their own clone; sharing one Solution across goroutines is a
// data race.
func (s *Solution) Clone() *Solution {
	c := NewSolution(s.inst)
	c.CopyFrom(s)
	return c
}

// TotalCost returns the cost of the current assignment: the opening cost of
// every opened node plus one allocation cost per assigned pod. Unassigned
// pods contribute nothing.
func (s *Solution) TotalCost() float64 {
	total := 0.0
	for n := range s.nodePods {
		if len(s.nodePods[n]) > 0 {
			total += s.inst.Nodes[n].OpeningCost
			total += float64(len(s.nodePods[n])) * s.inst.Nodes[n].AllocationCost
		}
	}
	return total
}

// TotalCost computes the cost of an arbitrary assignment table against inst
// without touching any solution state. External baselines (e.g. an exact
// solver) use this to cross-check reported numbers.
func TotalCost(inst *Instance, assignment []int) float64 {
	opened := make([]bool, inst.NumNodes())
	total := 0.0
	for _, n := range assignment {
		if n == Unassigned {
			continue
		}
		if !opened[n] {
			opened[n] = true
			total += inst.Nodes[n].OpeningCost
		}
		total += inst.Nodes[n].AllocationCost
	}
	return total
}

// Validate checks the capacity invariant and the usage counters as a pure
// function over the assignment table. It returns nil on a consistent state.
func (s *Solution) Validate() error {
	usage := make([]int, s.inst.NumNodes())
	for p, n := range s.podToNode {
		if n == Unassigned {
			continue
		}
		if n < 0 || n >= s.inst.NumNodes() {
			return fmt.Errorf("pod %d assigned to invalid node %d", p, n)
		}
		usage[n] += s.inst.Pods[p].Demand
	}
	for n := range usage {
		if usage[n] != s.usage[n] {
			return fmt.Errorf("node %d usage counter %d does not match assignment table sum %d",
				n, s.usage[n], usage[n])
		}
		if usage[n] > s.inst.Nodes[n].Capacity {
			return fmt.Errorf("node %d usage %d exceeds capacity %d", n, usage[n], s.inst.Nodes[n].Capacity)
		}
	}
	return nil
}

// RebuildFromOpenMask resets the solution and reassigns every pod among the
// nodes marked open in mask, picking for each pod the feasible open node with
// the lowest allocation cost (first in index order on ties). Pods that fit on
// no open node stay unassigned.
//
// This is the space-saving reconstruction used when an orchestrator retains
// only the open-node mask of its best solution; the rebuilt assignment ignores
// the move history that produced the mask, so its cost can differ from the
// cost tracked alongside the mask.
func (s *Solution) RebuildFromOpenMask(mask []bool) {
	s.Reset()
	for p := range s.inst.Pods {
		best := -1
		for n := range s.inst.Nodes {
			if !mask[n] || !s.CanAccommodate(n, p) {
				continue
			}
			if best == -1 || s.inst.Nodes[n].AllocationCost < s.inst.Nodes[best].AllocationCost {
				best = n
			}
		}
		if best != -1 {
			s.Assign(best, p)
		}
	}
}

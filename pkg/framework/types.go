package framework

// PodInfo contains pod information for the allocation problem.
// Pods are immutable once the instance is built.
type PodInfo struct {
	Idx    int
	Demand int
}

// NodeInfo contains node information for the allocation problem.
// OpeningCost is charged once if the node receives at least one pod;
// AllocationCost is charged per assigned pod, independent of its demand.
type NodeInfo struct {
	Idx            int
	Capacity       int
	OpeningCost    float64
	AllocationCost float64
}

// Instance is a problem instance: an ordered node list and an ordered
// pod list. Slice position equals the Idx field for both.
type Instance struct {
	Nodes []NodeInfo
	Pods  []PodInfo
}

// NumNodes returns the number of nodes in the instance.
func (inst *Instance) NumNodes() int { return len(inst.Nodes) }

// NumPods returns the number of pods in the instance.
func (inst *Instance) NumPods() int { return len(inst.Pods) }

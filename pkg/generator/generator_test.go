package generator_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/k8s-heuristics/graspsched/pkg/generator"
)

func TestValidateSizeRejectsNonPositiveCounts(t *testing.T) {
	testCases := []struct {
		name     string
		numPods  int
		numNodes int
		wantErr  bool
	}{
		{name: "Valid", numPods: 10, numNodes: 5},
		{name: "ZeroPods", numPods: 0, numNodes: 5, wantErr: true},
		{name: "NegativePods", numPods: -5, numNodes: 5, wantErr: true},
		{name: "ZeroNodes", numPods: 10, numNodes: 0, wantErr: true},
		{name: "NegativeNodes", numPods: 10, numNodes: -1, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := generator.ValidateSize(tc.numPods, tc.numNodes)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateSize(%d, %d) = %v, wantErr %v", tc.numPods, tc.numNodes, err, tc.wantErr)
			}
		})
	}
}

func TestGenerateDefaultReproducible(t *testing.T) {
	first := generator.GenerateDefault(100, 10, 100)
	second := generator.GenerateDefault(100, 10, 100)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("same seed produced different instances (-first +second):\n%s", diff)
	}

	other := generator.GenerateDefault(100, 10, 101)
	if cmp.Equal(first, other) {
		t.Error("different seeds produced identical instances")
	}
}

func TestGenerateRespectsRanges(t *testing.T) {
	const numPods, numNodes = 200, 20
	r := generator.DefaultRanges(numPods, numNodes)
	inst := generator.GenerateDefault(numPods, numNodes, 7)

	if len(inst.Nodes) != numNodes || len(inst.Pods) != numPods {
		t.Fatalf("instance size %dx%d, want %dx%d", len(inst.Pods), len(inst.Nodes), numPods, numNodes)
	}

	for i, node := range inst.Nodes {
		if node.Idx != i {
			t.Errorf("node %d has Idx %d", i, node.Idx)
		}
		if node.Capacity < r.CapacityMin || node.Capacity > r.CapacityMax {
			t.Errorf("node %d capacity %d outside [%d,%d]", i, node.Capacity, r.CapacityMin, r.CapacityMax)
		}
		if node.OpeningCost < float64(r.OpeningMin) || node.OpeningCost > float64(r.OpeningMax) {
			t.Errorf("node %d opening cost %v outside [%d,%d]", i, node.OpeningCost, r.OpeningMin, r.OpeningMax)
		}
		if node.AllocationCost < float64(r.AllocMin) || node.AllocationCost > float64(r.AllocMax) {
			t.Errorf("node %d allocation cost %v outside [%d,%d]", i, node.AllocationCost, r.AllocMin, r.AllocMax)
		}
	}
	for j, pod := range inst.Pods {
		if pod.Idx != j {
			t.Errorf("pod %d has Idx %d", j, pod.Idx)
		}
		if pod.Demand < r.DemandMin || pod.Demand > r.DemandMax {
			t.Errorf("pod %d demand %d outside [%d,%d]", j, pod.Demand, r.DemandMin, r.DemandMax)
		}
	}
}

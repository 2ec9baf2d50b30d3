package analysis_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/k8s-heuristics/graspsched/pkg/analysis"
	"github.com/k8s-heuristics/graspsched/pkg/framework"
)

func TestAnalyzeBreakdown(t *testing.T) {
	inst := &framework.Instance{
		Nodes: []framework.NodeInfo{
			{Idx: 0, Capacity: 5, OpeningCost: 2, AllocationCost: 1},
			{Idx: 1, Capacity: 5, OpeningCost: 3, AllocationCost: 1},
		},
		Pods: []framework.PodInfo{
			{Idx: 0, Demand: 3},
			{Idx: 1, Demand: 3},
			{Idx: 2, Demand: 3},
		},
	}
	sol := framework.NewSolution(inst)
	sol.Assign(0, 0)
	sol.Assign(1, 1)

	b := analysis.Analyze(sol)

	if b.TotalCost != 7 || b.OpeningCost != 5 || b.AllocationCost != 2 {
		t.Errorf("cost breakdown = total %v / opening %v / allocation %v, want 7/5/2",
			b.TotalCost, b.OpeningCost, b.AllocationCost)
	}
	if b.OpenedNodes != 2 || b.AssignedPods != 2 {
		t.Errorf("opened %d, assigned %d, want 2 and 2", b.OpenedNodes, b.AssignedPods)
	}
	if diff := cmp.Diff([]int{2}, b.Unassigned); diff != "" {
		t.Errorf("unassigned (-want +got):\n%s", diff)
	}

	wantUtil := []analysis.NodeUtilization{
		{Node: 0, Pods: 1, Used: 3, Capacity: 5, Utilization: 60},
		{Node: 1, Pods: 1, Used: 3, Capacity: 5, Utilization: 60},
	}
	if diff := cmp.Diff(wantUtil, b.Utilization); diff != "" {
		t.Errorf("utilization (-want +got):\n%s", diff)
	}
	if b.MeanUtil != 60 || b.StdDevUtil != 0 {
		t.Errorf("mean %v stddev %v, want 60 and 0", b.MeanUtil, b.StdDevUtil)
	}
}

func TestAnalyzeEmptySolution(t *testing.T) {
	inst := &framework.Instance{
		Nodes: []framework.NodeInfo{{Idx: 0, Capacity: 5, OpeningCost: 1, AllocationCost: 1}},
	}
	b := analysis.Analyze(framework.NewSolution(inst))

	if b.TotalCost != 0 || b.OpenedNodes != 0 || b.AssignedPods != 0 {
		t.Errorf("empty solution breakdown = %+v, want zeros", b)
	}
}

func TestPrintMentionsUnassigned(t *testing.T) {
	inst := &framework.Instance{
		Nodes: []framework.NodeInfo{{Idx: 0, Capacity: 2, OpeningCost: 1, AllocationCost: 1}},
		Pods:  []framework.PodInfo{{Idx: 0, Demand: 10}},
	}
	b := analysis.Analyze(framework.NewSolution(inst))

	var sb strings.Builder
	b.Print(&sb)
	if !strings.Contains(sb.String(), "1 unassigned") {
		t.Errorf("report does not mention the unassigned pod:\n%s", sb.String())
	}
}

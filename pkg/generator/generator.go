// Package generator builds synthetic problem instances for experiments.
// The draw ranges follow the computational study this engine was built for:
// pod demands are small relative to node capacity, and opening/allocation
// costs grow with the node count so that node selection stays non-trivial
// at every instance size.
package generator

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/k8s-heuristics/graspsched/pkg/framework"
)

// ValidateSize rejects non-positive instance sizes. DefaultRanges divides by
// the node count and Generate allocates slices of both lengths, so callers
// taking sizes from external input validate here first.
func ValidateSize(numPods, numNodes int) error {
	if numPods <= 0 {
		return fmt.Errorf("number of pods must be positive, got %d", numPods)
	}
	if numNodes <= 0 {
		return fmt.Errorf("number of nodes must be positive, got %d", numNodes)
	}
	return nil
}

// Ranges describes the integer draw intervals for one instance.
type Ranges struct {
	CapacityMin, CapacityMax int
	DemandMin, DemandMax     int
	OpeningMin, OpeningMax   int
	AllocMin, AllocMax       int
}

// DefaultRanges returns the study's ranges for the given instance size:
// capacity in [pods/nodes+1, 2*pods], demand in [1,10], opening and
// allocation costs in [1, 4*nodes]. Both counts must be positive, see
// ValidateSize.
func DefaultRanges(numPods, numNodes int) Ranges {
	return Ranges{
		CapacityMin: numPods/numNodes + 1,
		CapacityMax: 2 * numPods,
		DemandMin:   1,
		DemandMax:   10,
		OpeningMin:  1,
		OpeningMax:  4 * numNodes,
		AllocMin:    1,
		AllocMax:    4 * numNodes,
	}
}

// Generate draws an instance from rng: first every node (capacity, opening
// cost, allocation cost, in that order), then every pod demand. Callers that
// need reproducible instances seed the generator themselves.
func Generate(numPods, numNodes int, r Ranges, rng *rand.Rand) *framework.Instance {
	inst := &framework.Instance{
		Nodes: make([]framework.NodeInfo, numNodes),
		Pods:  make([]framework.PodInfo, numPods),
	}
	for i := 0; i < numNodes; i++ {
		inst.Nodes[i] = framework.NodeInfo{
			Idx:            i,
			Capacity:       drawInt(rng, r.CapacityMin, r.CapacityMax),
			OpeningCost:    float64(drawInt(rng, r.OpeningMin, r.OpeningMax)),
			AllocationCost: float64(drawInt(rng, r.AllocMin, r.AllocMax)),
		}
	}
	for j := 0; j < numPods; j++ {
		inst.Pods[j] = framework.PodInfo{
			Idx:    j,
			Demand: drawInt(rng, r.DemandMin, r.DemandMax),
		}
	}
	return inst
}

// GenerateDefault draws an instance with DefaultRanges from a fresh
// generator seeded with seed.
func GenerateDefault(numPods, numNodes int, seed int64) *framework.Instance {
	rng := rand.New(rand.NewSource(uint64(seed)))
	return Generate(numPods, numNodes, DefaultRanges(numPods, numNodes), rng)
}

func drawInt(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

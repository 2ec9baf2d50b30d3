package algorithms

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/k8s-heuristics/graspsched/pkg/framework"
)

// Config holds the GRASP parameters.
type Config struct {
	// Alpha controls RCL size in the construction phase, in [0,1].
	// 0 is purely greedy, 1 is purely random over feasible nodes.
	Alpha float64

	// MaxIterations is the number of restarts. Must be positive.
	MaxIterations int

	// Seed drives the pseudorandom stream deterministically.
	Seed int64

	// MaskOnly retains only the open-node mask of the best restart instead
	// of its full assignment. The returned assignment is then rebuilt from
	// the mask by cheapest allocation cost, and its cost can differ from
	// the tracked best cost; Result reports both.
	MaskOnly bool

	// Parallel runs restarts on a worker pool. Each restart derives its own
	// generator from Seed^iteration instead of drawing from one shared
	// stream, which trades the exact sequential draw sequence for
	// throughput. The outcome is still deterministic for a fixed Seed:
	// restarts are independent and cost ties keep the lowest iteration.
	Parallel bool

	// Workers is the pool size when Parallel is set. Defaults to NumCPU.
	Workers int
}

// Validate rejects parameter values whose effects would otherwise be
// silently wrong rather than crashing.
func (c Config) Validate() error {
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be between 0 and 1, got %v", c.Alpha)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("maxIterations must be positive, got %d", c.MaxIterations)
	}
	return nil
}

// Result is the outcome of a GRASP run.
type Result struct {
	// BestCost is the lowest local-optimum cost observed across restarts.
	BestCost float64

	// BestIteration is the restart that produced BestCost (0-based).
	BestIteration int

	// OpenMask marks the nodes opened in the best solution.
	OpenMask []bool

	// Assignment maps pod index to node index (framework.Unassigned for
	// pods that fit nowhere). With MaskOnly it is the mask reconstruction,
	// otherwise the exact best assignment.
	Assignment []int

	// ReconstructedCost is the cost of Assignment. Equal to BestCost unless
	// MaskOnly reconstruction rebuilt a different assignment.
	ReconstructedCost float64

	// Unassigned lists pods without a node in Assignment, in index order.
	Unassigned []int

	// MovesApplied counts local-search relocations across all restarts.
	MovesApplied int

	// Elapsed is the wall-clock duration of Run.
	Elapsed time.Duration
}

// GRASP is the multi-restart orchestrator: randomized greedy construction
// followed by best-improvement local search, keeping the best local optimum.
type GRASP struct {
	cfg  Config
	inst *framework.Instance
}

// New validates cfg and creates a GRASP runner for the instance.
func New(cfg Config, inst *framework.Instance) (*GRASP, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return &GRASP{cfg: cfg, inst: inst}, nil
}

// Run executes the configured number of restarts and returns the best
// solution found. Identical (instance, Alpha, Seed, MaxIterations) in
// sequential mode reproduces the result bit for bit.
func (g *GRASP) Run() *Result {
	start := time.Now()
	klog.V(4).InfoS("Starting GRASP",
		"alpha", g.cfg.Alpha, "iterations", g.cfg.MaxIterations, "seed", g.cfg.Seed,
		"parallel", g.cfg.Parallel, "maskOnly", g.cfg.MaskOnly)

	var res *Result
	if g.cfg.Parallel {
		res = g.runParallel()
	} else {
		res = g.runSequential()
	}

	g.materialize(res)
	res.Elapsed = time.Since(start)
	klog.V(4).InfoS("GRASP finished",
		"bestCost", res.BestCost, "bestIteration", res.BestIteration,
		"movesApplied", res.MovesApplied, "elapsed", res.Elapsed)
	return res
}

// best tracks the lowest-cost restart seen so far. assignment stays nil in
// mask-only mode.
type best struct {
	cost       float64
	iteration  int
	mask       []bool
	assignment []int
	found      bool
}

// record replaces the tracked best when cost strictly improves it, so the
// recorded value is non-increasing across restarts. In parallel mode equal
// costs keep the lowest iteration to make the outcome scheduling-independent.
func (b *best) record(sol *framework.Solution, cost float64, iter int, maskOnly bool) bool {
	if b.found && cost > b.cost {
		return false
	}
	if b.found && cost == b.cost && iter >= b.iteration {
		return false
	}
	b.cost = cost
	b.iteration = iter
	b.mask = sol.OpenMask()
	if !maskOnly {
		b.assignment = sol.Assignment()
	}
	b.found = true
	return true
}

func (g *GRASP) runSequential() *Result {
	rng := rand.New(rand.NewSource(uint64(g.cfg.Seed)))
	sol := framework.NewSolution(g.inst)

	var b best
	moves := 0
	for iter := 0; iter < g.cfg.MaxIterations; iter++ {
		RandomizedGreedy(sol, g.cfg.Alpha, rng)
		moves += LocalSearch(sol)
		cost := sol.TotalCost()
		if b.record(sol, cost, iter, g.cfg.MaskOnly) {
			klog.V(5).InfoS("New best solution", "iteration", iter, "cost", cost)
		}
	}

	return &Result{
		BestCost:      b.cost,
		BestIteration: b.iteration,
		OpenMask:      b.mask,
		Assignment:    b.assignment,
		MovesApplied:  moves,
	}
}

func (g *GRASP) runParallel() *Result {
	var (
		mu    sync.Mutex
		b     best
		moves int
	)

	iters := make(chan int, g.cfg.MaxIterations)
	var wg sync.WaitGroup
	for w := 0; w < g.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Per-worker solution state; restarts never share mutable
			// node/pod bookkeeping across goroutines.
			sol := framework.NewSolution(g.inst)
			for iter := range iters {
				rng := rand.New(rand.NewSource(uint64(g.cfg.Seed) ^ uint64(iter)))
				RandomizedGreedy(sol, g.cfg.Alpha, rng)
				applied := LocalSearch(sol)
				cost := sol.TotalCost()

				mu.Lock()
				moves += applied
				if b.record(sol, cost, iter, g.cfg.MaskOnly) {
					klog.V(5).InfoS("New best solution", "iteration", iter, "cost", cost)
				}
				mu.Unlock()
			}
		}()
	}
	for iter := 0; iter < g.cfg.MaxIterations; iter++ {
		iters <- iter
	}
	close(iters)
	wg.Wait()

	return &Result{
		BestCost:      b.cost,
		BestIteration: b.iteration,
		OpenMask:      b.mask,
		Assignment:    b.assignment,
		MovesApplied:  moves,
	}
}

// materialize fills the assignment-dependent fields of res. With MaskOnly the
// best assignment was not retained, so a concrete one is rebuilt from the
// open-node mask; the reconstructed cost is reported next to the tracked one
// instead of silently replacing it.
func (g *GRASP) materialize(res *Result) {
	if res.Assignment == nil {
		sol := framework.NewSolution(g.inst)
		sol.RebuildFromOpenMask(res.OpenMask)
		res.Assignment = sol.Assignment()
		res.ReconstructedCost = sol.TotalCost()
		if res.ReconstructedCost != res.BestCost {
			klog.V(4).InfoS("Mask reconstruction diverged from tracked best",
				"trackedCost", res.BestCost, "reconstructedCost", res.ReconstructedCost)
		}
	} else {
		res.ReconstructedCost = res.BestCost
	}
	for p, n := range res.Assignment {
		if n == framework.Unassigned {
			res.Unassigned = append(res.Unassigned, p)
		}
	}
}

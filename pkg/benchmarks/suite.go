// Package benchmarks runs the computational-experiment grid: every algorithm
// over every instance size, with repeated executions for timing, CSV output
// per algorithm, and an optional comparison chart.
package benchmarks

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"k8s.io/klog/v2"

	"github.com/k8s-heuristics/graspsched/pkg/algorithms"
	"github.com/k8s-heuristics/graspsched/pkg/framework"
	"github.com/k8s-heuristics/graspsched/pkg/generator"
	"github.com/k8s-heuristics/graspsched/pkg/metrics"
	"github.com/k8s-heuristics/graspsched/pkg/util"
)

// Config drives one suite run.
type Config struct {
	PodCounts     []int
	NodeCounts    []int
	Executions    int
	Alpha         float64
	MaxIterations int
	Seed          int64
	OutputDir     string
	Plot          bool
}

// DefaultConfig returns the study's grid: the 5-node column is only valid
// with 10 pods and is filtered during the run.
func DefaultConfig() Config {
	return Config{
		PodCounts:     []int{10, 50, 100, 200, 500, 1000, 5000, 10000},
		NodeCounts:    []int{5, 10, 20, 50, 100, 200},
		Executions:    10,
		Alpha:         0.3,
		MaxIterations: 10,
		Seed:          100,
		OutputDir:     "results",
	}
}

// Suite executes the experiment grid.
type Suite struct {
	cfg Config
}

// NewSuite validates cfg and creates a suite.
func NewSuite(cfg Config) (*Suite, error) {
	if len(cfg.PodCounts) == 0 || len(cfg.NodeCounts) == 0 {
		return nil, fmt.Errorf("pod and node count lists must not be empty")
	}
	for _, numPods := range cfg.PodCounts {
		if numPods <= 0 {
			return nil, fmt.Errorf("pod counts must be positive, got %d", numPods)
		}
	}
	for _, numNodes := range cfg.NodeCounts {
		if numNodes <= 0 {
			return nil, fmt.Errorf("node counts must be positive, got %d", numNodes)
		}
	}
	if cfg.Executions <= 0 {
		return nil, fmt.Errorf("executions must be positive, got %d", cfg.Executions)
	}
	graspCfg := algorithms.Config{Alpha: cfg.Alpha, MaxIterations: cfg.MaxIterations, Seed: cfg.Seed}
	if err := graspCfg.Validate(); err != nil {
		return nil, err
	}
	return &Suite{cfg: cfg}, nil
}

// runner is one algorithm under test: it overwrites sol with its result and
// returns the number of local-search moves it applied, if any.
type runner struct {
	name string
	run  func(sol *framework.Solution) (moves int, err error)
}

func (s *Suite) runners() []runner {
	return []runner{
		{name: "firstfit", run: func(sol *framework.Solution) (int, error) {
			algorithms.FirstFit(sol)
			return 0, nil
		}},
		{name: "greedy", run: func(sol *framework.Solution) (int, error) {
			algorithms.Greedy(sol)
			return 0, nil
		}},
		{name: "grasp", run: func(sol *framework.Solution) (int, error) {
			g, err := algorithms.New(algorithms.Config{
				Alpha:         s.cfg.Alpha,
				MaxIterations: s.cfg.MaxIterations,
				Seed:          s.cfg.Seed,
			}, sol.Instance())
			if err != nil {
				return 0, err
			}
			res := g.Run()
			sol.Reset()
			for p, n := range res.Assignment {
				if n != framework.Unassigned {
					sol.Assign(n, p)
				}
			}
			return res.MovesApplied, nil
		}},
	}
}

// Run executes the grid and writes one CSV per algorithm plus the optional
// comparison chart into OutputDir.
func (s *Suite) Run() error {
	if err := os.MkdirAll(s.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	runners := s.runners()
	writers := make(map[string]*csv.Writer, len(runners))
	for _, r := range runners {
		f, err := os.Create(filepath.Join(s.cfg.OutputDir, r.name+".csv"))
		if err != nil {
			return err
		}
		defer f.Close()
		w := csv.NewWriter(f)
		w.Comma = ';'
		if err := w.Write([]string{"number of pods", "number of nodes", "solution cost", "time (ms)"}); err != nil {
			return err
		}
		writers[r.name] = w
	}

	var labels []string
	costs := make(map[string][]float64, len(runners))

	for _, numPods := range s.cfg.PodCounts {
		for _, numNodes := range s.cfg.NodeCounts {
			// 5-node instances only hold 10 pods under the default capacity ranges.
			if numNodes == 5 && numPods != 10 {
				continue
			}
			klog.V(2).InfoS("Running instance", "pods", numPods, "nodes", numNodes)
			inst := generator.GenerateDefault(numPods, numNodes, s.cfg.Seed)
			sol := framework.NewSolution(inst)
			labels = append(labels, fmt.Sprintf("%dx%d", numPods, numNodes))

			for _, r := range runners {
				start := time.Now()
				moves := 0
				for i := 0; i < s.cfg.Executions; i++ {
					m, err := r.run(sol)
					if err != nil {
						return fmt.Errorf("%s on %dx%d: %w", r.name, numPods, numNodes, err)
					}
					moves += m
				}
				elapsed := time.Since(start) / time.Duration(s.cfg.Executions)

				if err := sol.Validate(); err != nil {
					return fmt.Errorf("%s produced an infeasible solution on %dx%d: %w", r.name, numPods, numNodes, err)
				}
				cost := sol.TotalCost()
				costs[r.name] = append(costs[r.name], cost)
				metrics.ObserveRun(r.name, cost, moves, elapsed)
				klog.V(2).InfoS("Instance result",
					"algorithm", r.name, "cost", cost,
					"openedNodes", sol.OpenedCount(), "unassigned", len(sol.UnassignedPods()),
					"avgTime", elapsed)

				row := []string{
					strconv.Itoa(numPods),
					strconv.Itoa(numNodes),
					strconv.FormatFloat(cost, 'f', -1, 64),
					strconv.FormatInt(elapsed.Milliseconds(), 10),
				}
				if err := writers[r.name].Write(row); err != nil {
					return err
				}
				writers[r.name].Flush()
			}
		}
	}

	for name, w := range writers {
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("writing %s.csv: %w", name, err)
		}
	}

	if s.cfg.Plot {
		series := make([]util.CostSeries, 0, len(runners))
		for _, r := range runners {
			series = append(series, util.CostSeries{Algorithm: r.name, Costs: costs[r.name]})
		}
		plotPath := filepath.Join(s.cfg.OutputDir, "costs.html")
		if err := util.PlotCosts(labels, series, "Solution cost by instance size", plotPath); err != nil {
			return fmt.Errorf("plotting results: %w", err)
		}
		klog.V(2).InfoS("Wrote comparison chart", "path", plotPath)
	}
	return nil
}

package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/k8s-heuristics/graspsched/pkg/algorithms"
	"github.com/k8s-heuristics/graspsched/pkg/analysis"
	"github.com/k8s-heuristics/graspsched/pkg/benchmarks"
	"github.com/k8s-heuristics/graspsched/pkg/framework"
	"github.com/k8s-heuristics/graspsched/pkg/generator"
	"github.com/k8s-heuristics/graspsched/pkg/metrics"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graspsched",
		Short: "GRASP-based allocation engine for capacitated pod placement",
		Long: `graspsched assigns pods with scalar resource demand to capacity-bounded
nodes carrying opening and per-assignment allocation costs, minimizing total
cost with a GRASP metaheuristic (randomized greedy construction plus
best-improvement local search across restarts).`,
		SilenceUsage: true,
	}

	addKlogFlags(cmd.PersistentFlags())

	cmd.AddCommand(newSolveCommand())
	cmd.AddCommand(newBenchCommand())
	return cmd
}

func addKlogFlags(fs *pflag.FlagSet) {
	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	fs.AddGoFlagSet(klogFlags)
}

func newSolveCommand() *cobra.Command {
	var (
		numPods    int
		numNodes   int
		seed       int64
		algorithm  string
		alpha      float64
		iterations int
		maskOnly   bool
		parallel   bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one generated instance and print the solution breakdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := generator.ValidateSize(numPods, numNodes); err != nil {
				return err
			}
			inst := generator.GenerateDefault(numPods, numNodes, seed)
			sol := framework.NewSolution(inst)

			switch algorithm {
			case "firstfit":
				algorithms.FirstFit(sol)
			case "greedy":
				algorithms.Greedy(sol)
			case "grasp":
				g, err := algorithms.New(algorithms.Config{
					Alpha:         alpha,
					MaxIterations: iterations,
					Seed:          seed,
					MaskOnly:      maskOnly,
					Parallel:      parallel,
				}, inst)
				if err != nil {
					return err
				}
				res := g.Run()
				for p, n := range res.Assignment {
					if n != framework.Unassigned {
						sol.Assign(n, p)
					}
				}
				if maskOnly && res.ReconstructedCost != res.BestCost {
					fmt.Fprintf(cmd.OutOrStdout(),
						"Tracked best cost %.2f, reconstructed cost %.2f\n",
						res.BestCost, res.ReconstructedCost)
				}
			default:
				return fmt.Errorf("unknown algorithm %q (want firstfit, greedy or grasp)", algorithm)
			}

			if err := sol.Validate(); err != nil {
				return err
			}
			analysis.Analyze(sol).Print(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVar(&numPods, "pods", 100, "number of pods in the generated instance")
	cmd.Flags().IntVar(&numNodes, "nodes", 10, "number of nodes in the generated instance")
	cmd.Flags().Int64Var(&seed, "seed", 100, "seed for instance generation and GRASP")
	cmd.Flags().StringVar(&algorithm, "algorithm", "grasp", "algorithm to run: firstfit, greedy or grasp")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.3, "GRASP randomness factor in [0,1]")
	cmd.Flags().IntVar(&iterations, "iterations", 10, "GRASP restarts")
	cmd.Flags().BoolVar(&maskOnly, "mask-only", false, "retain only the open-node mask of the best restart")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "run restarts on a worker pool")
	return cmd
}

func newBenchCommand() *cobra.Command {
	cfg := benchmarks.DefaultConfig()
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the experiment grid and emit per-algorithm CSV results",
		RunE: func(cmd *cobra.Command, args []string) error {
			if metricsAddr != "" {
				go func() {
					mux := http.NewServeMux()
					mux.Handle("/metrics", metrics.Handler())
					if err := http.ListenAndServe(metricsAddr, mux); err != nil {
						klog.ErrorS(err, "Metrics listener failed", "addr", metricsAddr)
					}
				}()
			}

			suite, err := benchmarks.NewSuite(cfg)
			if err != nil {
				return err
			}
			return suite.Run()
		},
	}

	cmd.Flags().IntSliceVar(&cfg.PodCounts, "pods", cfg.PodCounts, "pod counts of the instance grid")
	cmd.Flags().IntSliceVar(&cfg.NodeCounts, "nodes", cfg.NodeCounts, "node counts of the instance grid")
	cmd.Flags().IntVar(&cfg.Executions, "executions", cfg.Executions, "repeated executions per instance for timing")
	cmd.Flags().Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "GRASP randomness factor in [0,1]")
	cmd.Flags().IntVar(&cfg.MaxIterations, "iterations", cfg.MaxIterations, "GRASP restarts")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed for instance generation and GRASP")
	cmd.Flags().StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "directory for CSV and chart output")
	cmd.Flags().BoolVar(&cfg.Plot, "plot", false, "write an HTML cost comparison chart")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	return cmd
}

package main

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/core"
	"github.com/sbl8/wick/engine"
)

func newPerfCmd() *cobra.Command {
	var (
		size    int
		iter    int
		mode    string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "perf",
		Short: "Time full contraction and general expansion on a(p1)..a(pN) a+(q1)..a+(qN)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if size < 1 || iter < 1 {
				return fmt.Errorf("--size and --iter must be positive")
			}
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Wick Performance Analysis\n")
			fmt.Fprintf(out, "=========================\n")
			fmt.Fprintf(out, "Go Version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(out, "Operators: %d\n", 2*size)
			fmt.Fprintf(out, "Iterations: %d\n\n", iter)

			term := blockTerm(size)
			switch mode {
			case "all":
				for _, m := range []contract.Mode{contract.ModeFull, contract.ModeGeneral} {
					if err := timeMode(cmd, out, term, m, iter, verbose); err != nil {
						return err
					}
				}
				return nil
			default:
				m, err := contract.ParseMode(mode)
				if err != nil {
					return err
				}
				return timeMode(cmd, out, term, m, iter, verbose)
			}
		},
	}

	cmd.Flags().IntVar(&size, "size", 3, "number of annihilators (and creators) in the test string")
	cmd.Flags().IntVar(&iter, "iter", 100, "number of iterations per mode")
	cmd.Flags().StringVar(&mode, "mode", "all", "mode to time: all, full or general")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "print the contractor statistics")
	return cmd
}

// blockTerm builds a(p1)..a(pN) a+(q1)..a+(qN), where every annihilator can
// contract with every creator.
func blockTerm(n int) core.Term {
	ops := make([]core.Operator, 0, 2*n)
	for i := 1; i <= n; i++ {
		ops = append(ops, core.Ann(core.GeneralIndex(fmt.Sprintf("p%d", i))))
	}
	for i := 1; i <= n; i++ {
		ops = append(ops, core.Cre(core.GeneralIndex(fmt.Sprintf("q%d", i))))
	}
	return core.NewTerm(1, ops...)
}

func timeMode(cmd *cobra.Command, out io.Writer, term core.Term, mode contract.Mode, iter int, verbose bool) error {
	c := engine.New(term, &engine.Options{Mode: mode, EnableStats: true})

	start := time.Now()
	for i := 0; i < iter; i++ {
		if err := c.Compute(cmd.Context()); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	perOp := elapsed / time.Duration(iter)
	fmt.Fprintf(out, "%-8s %6d terms  %v total  %v/op  (%.2f ops/s)\n",
		mode, c.Result().Len(), elapsed, perOp, float64(iter)/elapsed.Seconds())

	if verbose {
		stats := c.Stats()
		fmt.Fprintf(out, "  computations: %d, average latency: %v\n",
			stats.TotalComputations, stats.AverageLatency)
	}
	return nil
}

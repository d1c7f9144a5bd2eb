package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbl8/wick/compiler"
	"github.com/sbl8/wick/contract"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		full         bool
		ignoreUnused bool
		strict       bool
	)
	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Compile a program and report suspicious terms without contracting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			prog, err := compiler.LoadFile(args[0])
			if err != nil {
				return fmt.Errorf("compile %s: %w", args[0], err)
			}

			opts := compiler.CheckOptions{IgnoreUnused: ignoreUnused}
			if full || a.cfg.Mode == contract.ModeFull.String() {
				m := contract.ModeFull
				opts.Mode = &m
			}

			diags := compiler.Check(prog, opts)
			out := cmd.OutOrStdout()
			warnings := 0
			for _, d := range diags {
				if d.Severity == compiler.Warning {
					warnings++
				}
				fmt.Fprintf(out, "%s: %s\n", args[0], d)
			}
			fmt.Fprintf(out, "%s: %d indices, %d terms, %d warnings\n",
				args[0], len(prog.Order), len(prog.Entries), warnings)

			if strict && warnings > 0 {
				return fmt.Errorf("%d warnings", warnings)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "check as if every term used full contraction")
	cmd.Flags().BoolVar(&ignoreUnused, "ignore-unused", false, "do not warn about unused indices")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when there are warnings")
	return cmd
}

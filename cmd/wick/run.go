package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sbl8/wick/compiler"
	"github.com/sbl8/wick/contract"
	"github.com/sbl8/wick/engine"
	"github.com/sbl8/wick/model"
	"github.com/sbl8/wick/render"
)

type runOptions struct {
	full    bool
	format  string
	out     string
	workers int
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Compile a program and contract every term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(cmd, root, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.full, "full", false, "compute only fully contracted terms for every entry")
	flags.StringVar(&opts.format, "format", "", "output format: latex, tensor or json (default from config)")
	flags.StringVarP(&opts.out, "out", "o", "", "write results to this .wres file")
	flags.IntVar(&opts.workers, "workers", 0, "terms computed concurrently (default from config, 0 = one per CPU)")
	return cmd
}

func runProgram(cmd *cobra.Command, root *rootOptions, opts *runOptions, path string) error {
	a, err := root.setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	defer a.close(ctx)

	formatName := a.cfg.Format
	if opts.format != "" {
		formatName = opts.format
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}
	workers := a.cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = opts.workers
	}

	prog, err := compiler.LoadFile(path)
	if err != nil {
		return fmt.Errorf("compile %s: %w", path, err)
	}

	var override *contract.Mode
	if opts.full || a.cfg.Mode == contract.ModeFull.String() {
		full := contract.ModeFull
		override = &full
	}

	start := time.Now()
	results, err := engine.RunBatch(ctx, prog.Jobs(override), &engine.BatchOptions{
		Workers: workers,
		Logger:  a.log,
	})
	if err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}

	docs := make([]*model.Result, 0, len(results))
	failed := 0
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Name, r.Err)
			continue
		}
		doc := model.FromSum(r.Name, r.Mode, r.Sum)
		docs = append(docs, doc)
		if format != render.FormatJSON {
			fmt.Fprintf(out, "%s = %s\n", r.Name, render.Sum(r.Sum, format))
		}
	}

	if format == render.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(docs); err != nil {
			return err
		}
	}

	if opts.out != "" {
		for _, doc := range docs {
			p := outputPath(opts.out, doc.Name, len(results))
			if err := model.WriteFile(p, doc); err != nil {
				return fmt.Errorf("write %s: %w", p, err)
			}
		}
	}

	a.log.Info("run finished",
		zap.String("file", path),
		zap.Int("terms", len(results)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d terms failed", failed, len(results))
	}
	return nil
}

// outputPath returns base for a single term and base-NAME.ext otherwise.
// n counts every term of the program, failed ones included.
func outputPath(base, name string, n int) string {
	if n <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	return strings.TrimSuffix(base, ext) + "-" + fileName(name) + ext
}

// fileName replaces path separators and other unsafe runes in a term name.
func fileName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sbl8/wick/model"
	"github.com/sbl8/wick/render"
)

func newShowCmd(root *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show RESULT.wres",
		Short: "Print a saved result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := root.setup(cmd)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			if format == "" {
				format = a.cfg.Format
			}
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			doc, err := model.ReadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if f == render.FormatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}

			sum, err := doc.ToSum()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(out, "# %s (%s, %s) id=%s\n", doc.Name, doc.Mode, doc.Statistics, doc.ID)
			fmt.Fprintf(out, "%s = %s\n", doc.Name, render.Sum(sum, f))
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "output format: latex, tensor or json (default from config)")
	return cmd
}

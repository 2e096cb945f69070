package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"courseplan/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Verify inputs, encodings and output locations before a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			files, err := resolveInputs(cfg, args)
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg, files)
			failed := preflight.Failed(results)

			if jsonOut {
				if results == nil {
					results = []preflight.Result{}
				}
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintln(out, strings.Join(renderSectionHeader("Preflight", colorize), "\n"))
				for _, line := range preflightLines(results, colorize) {
					fmt.Fprintln(out, line)
				}
			}

			if len(failed) > 0 {
				return fmt.Errorf("preflight: %d check(s) failed", len(failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	return cmd
}

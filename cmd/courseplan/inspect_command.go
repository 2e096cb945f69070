package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"courseplan/internal/columns"
	"courseplan/internal/extract"
)

type inspectEntry struct {
	extract.Result
	Error string `json:"error,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "inspect [files...]",
		Short: "Show encoding detection and column mapping without writing output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			files, err := resolveInputs(cfg, args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no input files: pass them as arguments or set inputs.files")
			}
			logger, err := ctx.logger(cfg, "")
			if err != nil {
				return err
			}

			extractor := extract.New(extractOptions(cfg), logger)
			entries := make([]inspectEntry, 0, len(files))
			for _, path := range files {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				result, err := extractor.Inspect(path)
				entry := inspectEntry{Result: result}
				if err != nil {
					entry.Error = err.Error()
				}
				entries = append(entries, entry)
			}

			if jsonOut {
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			for i, entry := range entries {
				if i > 0 {
					fmt.Fprintln(out)
				}
				renderInspectEntry(out, entry)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	return cmd
}

func renderInspectEntry(out io.Writer, entry inspectEntry) {
	fmt.Fprintf(out, "File: %s\n", entry.Path)
	if entry.Error != "" {
		fmt.Fprintf(out, "  Error: %s\n", entry.Error)
		return
	}

	guess := entry.Guess
	if guess.Detected {
		fmt.Fprintf(out, "  Detected: %s (confidence %d)\n", guess.Label, guess.Confidence)
	} else {
		fmt.Fprintf(out, "  Detected: none (default %s)\n", guess.Label)
	}
	if entry.OK() {
		fmt.Fprintf(out, "  Encoding: %s\n", entry.Encoding)
		fmt.Fprintf(out, "  Columns:  %s\n", formatIndices(entry.Columns))
	} else {
		fmt.Fprintln(out, "  Encoding: no candidate succeeded")
	}

	rows := make([][]string, 0, len(entry.Attempts))
	for _, a := range entry.Attempts {
		detail := a.Detail
		if a.Tag == extract.Success {
			detail = formatIndices(a.Columns)
		}
		rows = append(rows, []string{a.Encoding, a.Tag.String(), detail})
	}
	fmt.Fprint(out, renderTable([]string{"Candidate", "Result", "Detail"}, rows, nil))
}

func formatIndices(ix columns.Indices) string {
	parts := []string{
		"code=" + formatIndex(ix.Code),
		"name=" + formatIndex(ix.Name),
		"major=" + formatIndex(ix.Major),
	}
	return strings.Join(parts, " ")
}

func formatIndex(idx int) string {
	if idx == columns.NotFound {
		return "-"
	}
	return strconv.Itoa(idx)
}

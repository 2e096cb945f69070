package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"courseplan/internal/catalogdb"
	"courseplan/internal/diag"
	"courseplan/internal/extract"
	"courseplan/internal/logging"
	"courseplan/internal/output"
	"courseplan/internal/reconcile"
	"courseplan/internal/sqlgen"
	"courseplan/internal/summary"
)

const maxListedWarnings = 20

type convertReport struct {
	Summary   summary.Summary        `json:"summary"`
	Files     []reconcile.FileReport `json:"files"`
	OutputDir string                 `json:"output_dir"`
	Written   []string               `json:"written"`
	Warnings  []diag.Warning         `json:"warnings"`
	Database  *databaseReport        `json:"database,omitempty"`
}

type databaseReport struct {
	Path    string           `json:"path"`
	Applied catalogdb.Counts `json:"applied"`
	Skipped int              `json:"skipped_associations"`
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var seedPath string
	var outDir string
	var dbPath string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Reconcile schedule exports and write SQL insert files",
		Long: `Reconcile one or more schedule exports into a course catalog and write
majors, courses and major-course insert statements plus lookup files.

Files given as arguments replace inputs.files from the configuration. Files
are processed in order; when two files name the same course code differently,
the first name wins and a conflict warning is recorded.`,
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
			seed, err := resolvePathFlag("seed", seedPath, cfg.Inputs.SeedMajors)
			if err != nil {
				return err
			}
			dir, err := resolvePathFlag("out", outDir, cfg.Output.Dir)
			if err != nil {
				return err
			}
			database, err := resolvePathFlag("apply-db", dbPath, "")
			if err != nil {
				return err
			}

			started := time.Now()
			runID := uuid.NewString()
			logger, err := ctx.logger(cfg, runID)
			if err != nil {
				return err
			}
			logger.Info("conversion started",
				logging.String(logging.FieldEventType, "run_start"),
				logging.Int("files", len(files)),
				logging.String("output_dir", dir),
			)

			log := diag.NewLog(logger)
			extractor := extract.New(extractOptions(cfg), logger)
			catalog, reports, err := reconcile.New(extractor, log, logger).Run(cmd.Context(), files, seed)
			if err != nil {
				return err
			}

			generated := sqlgen.Generate(catalog, log)
			written, err := output.NewWriter(dir, logger).Write(output.Bundle{
				RunID:       runID,
				GeneratedAt: started,
				Catalog:     catalog,
				Output:      generated,
			})
			if err != nil {
				logging.ErrorWithContext(logger, "output write failed", "output_write", logging.Error(err))
				return err
			}

			var applied *databaseReport
			if database != "" {
				applied, err = applyCatalog(cmd.Context(), database, generated.Statements, log)
				if err != nil {
					logging.ErrorWithContext(logger, "catalog apply failed", "catalog_apply",
						logging.String("database", database),
						logging.Error(err),
					)
					return err
				}
			}

			report := convertReport{
				Summary:   summary.Build(catalog, generated, log, len(files), summary.DefaultSampleSize),
				Files:     reports,
				OutputDir: dir,
				Written:   written,
				Warnings:  log.Warnings(),
				Database:  applied,
			}
			report.Summary.RunID = runID
			if report.Warnings == nil {
				report.Warnings = []diag.Warning{}
			}

			logger.Info("conversion finished",
				logging.String(logging.FieldEventType, "run_complete"),
				logging.Int("courses", report.Summary.Courses),
				logging.Int("majors", report.Summary.Majors),
				logging.Int("associations", report.Summary.Associations),
				logging.Int("warnings", report.Summary.TotalWarnings()),
				logging.Duration("elapsed", time.Since(started)),
			)

			if jsonOut {
				return writeJSON(cmd, report)
			}
			renderConvertReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&seedPath, "seed", "", "Seed majors file (overrides inputs.seed_majors)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (overrides output.dir)")
	cmd.Flags().StringVar(&dbPath, "apply-db", "", "Also load the statements into this SQLite database")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run report as JSON")
	return cmd
}

// applyCatalog loads statements into the database at path. Associations
// skipped for lack of a course row are counted from the warnings they add
// to log.
func applyCatalog(ctx context.Context, path string, statements sqlgen.Statements, log *diag.Log) (*databaseReport, error) {
	store, err := catalogdb.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	before := log.Count(diag.KindUnmappedAssociation)
	applied, err := store.Apply(ctx, statements, log)
	if err != nil {
		return nil, err
	}
	return &databaseReport{
		Path:    store.Path(),
		Applied: applied,
		Skipped: log.Count(diag.KindUnmappedAssociation) - before,
	}, nil
}

func renderConvertReport(out io.Writer, report convertReport) {
	s := report.Summary
	fmt.Fprintf(out, "Run: %s\n\n", s.RunID)

	rows := make([][]string, 0, len(report.Files))
	for _, f := range report.Files {
		rows = append(rows, []string{
			filepath.Base(f.Path),
			fileEncoding(f),
			strconv.Itoa(f.Rows),
			strconv.Itoa(f.Skipped),
			strconv.Itoa(f.Courses),
			strconv.Itoa(f.Pairs),
		})
	}
	fmt.Fprint(out, renderTable(
		[]string{"File", "Encoding", "Rows", "Skipped", "Courses", "Pairs"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	fmt.Fprintln(out)

	fmt.Fprint(out, renderCounts("Totals",
		[]string{"Courses", "Majors", "Seeded majors", "Raw pairs", "Unique pairs", "Associations"},
		[]int{s.Courses, s.Majors, s.SeededMajors, s.RawPairs, s.UniquePairs, s.Associations},
	))

	if total := s.TotalWarnings(); total > 0 {
		fmt.Fprintln(out)
		kinds := diag.Kinds()
		labels := make([]string, 0, len(kinds))
		counts := make([]int, 0, len(kinds))
		for _, kind := range kinds {
			if n := s.Warnings[kind]; n > 0 {
				labels = append(labels, string(kind))
				counts = append(counts, n)
			}
		}
		fmt.Fprint(out, renderCounts("Warnings", labels, counts))
		for i, w := range report.Warnings {
			if i == maxListedWarnings {
				fmt.Fprintf(out, "  ... and %d more\n", len(report.Warnings)-maxListedWarnings)
				break
			}
			fmt.Fprintf(out, "  - %s\n", w)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Courses without majors: %d\n", len(s.Orphans))
	fmt.Fprintf(out, "Majors without courses: %d\n", len(s.IdleMajors))
	if report.Database != nil {
		a := report.Database.Applied
		fmt.Fprintf(out, "Database: %s (majors=%d courses=%d associations=%d skipped=%d)\n",
			report.Database.Path, a.Majors, a.Courses, a.Associations, report.Database.Skipped)
	}
	fmt.Fprintf(out, "Wrote %d files to %s\n", len(report.Written), report.OutputDir)
}

func fileEncoding(f reconcile.FileReport) string {
	switch {
	case f.Missing:
		return "missing"
	case f.Encoding == "":
		return "failed"
	default:
		return f.Encoding
	}
}

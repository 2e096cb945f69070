package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"courseplan/internal/catalogdb"
	"courseplan/internal/diag"
	"courseplan/internal/logging"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var dbPath string
	var dir string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Load generated SQL files into a SQLite catalog database",
		Long: `Load majors_insert.sql, courses_insert.sql and major_course_insert.sql
from an output directory into a SQLite database.

The catalog tables are replaced in a single transaction, so applying the same
directory twice leaves the database unchanged. Associations whose course code
has no course row are skipped and listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			database, err := resolvePathFlag("db", dbPath, cfg.Database.Path)
			if err != nil {
				return err
			}
			if database == "" {
				return errors.New("no database: pass --db or set database.path")
			}
			source, err := resolvePathFlag("dir", dir, cfg.Output.Dir)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cfg, "")
			if err != nil {
				return err
			}

			statements, err := catalogdb.LoadDir(source)
			if err != nil {
				return err
			}
			store, err := catalogdb.Open(cmd.Context(), database)
			if err != nil {
				return err
			}
			defer store.Close()

			log := diag.NewLog(logger)
			applied, err := store.Apply(cmd.Context(), statements, log)
			if err != nil {
				return err
			}
			skipped := log.ByKind(diag.KindUnmappedAssociation)
			logger.Info("catalog applied",
				logging.String("database", store.Path()),
				logging.String("source", source),
				logging.Int("majors", applied.Majors),
				logging.Int("courses", applied.Courses),
				logging.Int("associations", applied.Associations),
				logging.Int("skipped", len(skipped)),
			)

			if jsonOut {
				return writeJSON(cmd, databaseReport{Path: store.Path(), Applied: applied, Skipped: len(skipped)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Applied %s to %s\n", source, store.Path())
			fmt.Fprint(out, renderCounts("Table",
				[]string{"major", "course", "major_course"},
				[]int{applied.Majors, applied.Courses, applied.Associations},
			))
			if len(skipped) > 0 {
				fmt.Fprintf(out, "Skipped %d association(s) without a course row:\n", len(skipped))
				for _, w := range skipped {
					fmt.Fprintf(out, "  - %s\n", w)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides database.path)")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory holding the generated SQL files (defaults to output.dir)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print applied row counts as JSON")
	return cmd
}

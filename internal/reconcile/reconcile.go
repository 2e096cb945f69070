package reconcile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"courseplan/internal/charset"
	"courseplan/internal/diag"
	"courseplan/internal/extract"
	"courseplan/internal/logging"
	"courseplan/internal/textutil"
)

// FileReport summarizes what one input contributed.
type FileReport struct {
	Path     string            `json:"path"`
	Missing  bool              `json:"missing,omitempty"`
	Guess    charset.Guess     `json:"guess"`
	Encoding string            `json:"encoding,omitempty"`
	Attempts []extract.Attempt `json:"attempts,omitempty"`
	Courses  int               `json:"courses"`
	Pairs    int               `json:"pairs"`
	Rows     int               `json:"rows"`
	Skipped  int               `json:"skipped"`
}

// Reconciler drives extraction over an ordered file list.
type Reconciler struct {
	extractor *extract.Extractor
	log       *diag.Log
	logger    *slog.Logger
}

// New returns a Reconciler recording warnings in log.
func New(extractor *extract.Extractor, log *diag.Log, logger *slog.Logger) *Reconciler {
	if extractor == nil {
		extractor = extract.New(extract.DefaultOptions(), logger)
	}
	if log == nil {
		log = &diag.Log{}
	}
	return &Reconciler{
		extractor: extractor,
		log:       log,
		logger:    logging.NewComponentLogger(logger, "reconcile"),
	}
}

// Run seeds the catalog from seedPath (if set) and merges files in order. The
// only error it returns is ctx's; per-file problems are warnings.
func (r *Reconciler) Run(ctx context.Context, files []string, seedPath string) (*Catalog, []FileReport, error) {
	catalog := NewCatalog()
	if strings.TrimSpace(seedPath) != "" {
		r.seed(catalog, seedPath)
	}

	reports := make([]FileReport, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return catalog, reports, err
		}
		reports = append(reports, r.mergeFile(catalog, path))
	}

	r.logger.Info("reconciliation complete",
		logging.Int("files", len(files)),
		logging.Int("courses", catalog.Courses.Len()),
		logging.Int("pairs", len(catalog.Pairs)),
		logging.Int("majors", catalog.Majors.Len()),
		logging.Int("warnings", r.log.Len()),
	)
	return catalog, reports, nil
}

func (r *Reconciler) seed(catalog *Catalog, path string) {
	majors, err := ReadSeed(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		r.log.MissingFile(path)
		return
	case err != nil:
		r.log.DecodeFailure(path, charset.DefaultLabel, err.Error())
		return
	}
	for _, major := range majors {
		if catalog.Majors.Add(major) {
			catalog.Seeded++
		}
	}
	r.logger.Info("seed majors loaded",
		logging.String(logging.FieldFile, path),
		logging.Int("majors", catalog.Seeded),
	)
}

func (r *Reconciler) mergeFile(catalog *Catalog, path string) FileReport {
	report := FileReport{Path: path}

	result, err := r.extractor.ExtractFile(path, r.log)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			report.Missing = true
			r.log.MissingFile(path)
		} else {
			r.log.DecodeFailure(path, "", err.Error())
		}
		return report
	}

	for _, course := range result.Courses {
		if stored, conflict := catalog.Courses.Add(course.Code, course.Name); conflict {
			r.log.Conflict(path, course.Code, stored, course.Name)
		}
	}
	catalog.Pairs = append(catalog.Pairs, result.Pairs...)
	for _, major := range result.Majors {
		catalog.Majors.Add(major)
	}

	report.Guess = result.Guess
	report.Encoding = result.Encoding
	report.Attempts = result.Attempts
	report.Courses = len(result.Courses)
	report.Pairs = len(result.Pairs)
	report.Rows = result.Rows
	report.Skipped = result.Skipped
	return report
}

// ReadSeed reads a UTF-8 seed list: one major per line, blank lines and lines
// starting with # or -- ignored.
func ReadSeed(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed majors: %w", err)
	}
	defer file.Close()

	var majors []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := textutil.TrimCell(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "--") {
			continue
		}
		majors = append(majors, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read seed majors: %w", err)
	}
	return majors, nil
}

package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"

	"courseplan/internal/fileutil"
	"courseplan/internal/logging"
	"courseplan/internal/reconcile"
	"courseplan/internal/sqlgen"
)

// File names written into the output directory.
const (
	MajorsSQL       = "majors_insert.sql"
	CoursesSQL      = "courses_insert.sql"
	AssociationsSQL = "major_course_insert.sql"
	MajorIDMapping  = "major_id_mapping.csv"
	RawPairs        = "major_course_raw_pairs.csv"
	AllCourses      = "all_courses.csv"
	AllMajors       = "all_majors.txt"

	LockName = ".courseplan.lock"
)

const timestampLayout = "2006-01-02 15:04:05"

// ErrLocked means another run holds the output directory.
var ErrLocked = errors.New("output directory is locked by another run")

// Bundle is everything a run hands to the writer.
type Bundle struct {
	RunID       string
	GeneratedAt time.Time
	Catalog     *reconcile.Catalog
	Output      sqlgen.Output
}

// Writer writes bundles into one directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter returns a Writer for dir. The directory is created on Write.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logging.NewComponentLogger(logger, "output")}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Write produces every output file and returns their paths in write order.
func (w *Writer) Write(b Bundle) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	lock := flock.New(filepath.Join(w.dir, LockName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", w.dir, ErrLocked)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			w.logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	if b.GeneratedAt.IsZero() {
		b.GeneratedAt = time.Now()
	}

	steps := []struct {
		name string
		fill func(io.Writer) error
	}{
		{MajorsSQL, sqlFile(b, "Major insert statements",
			"major_no values are assigned explicitly so associations can reference them", b.Output.Statements.Majors)},
		{CoursesSQL, sqlFile(b, "Course insert statements",
			"course_no must not already exist in the course table", b.Output.Statements.Courses)},
		{AssociationsSQL, sqlFile(b, "Major-course insert statements",
			"format: (major_no, course_no)", b.Output.Statements.Associations)},
		{MajorIDMapping, func(out io.Writer) error { return writeMapping(out, b.Output.IDs) }},
		{RawPairs, func(out io.Writer) error { return writeRawPairs(out, b.Catalog) }},
		{AllCourses, func(out io.Writer) error { return writeCourses(out, b.Catalog) }},
		{AllMajors, func(out io.Writer) error { return writeMajors(out, b) }},
	}

	written := make([]string, 0, len(steps))
	for _, step := range steps {
		path := filepath.Join(w.dir, step.name)
		if err := fileutil.WriteAtomicFunc(path, 0o644, step.fill); err != nil {
			return written, fmt.Errorf("write %s: %w", step.name, err)
		}
		written = append(written, path)
	}

	w.logger.Info("output written",
		logging.String("dir", w.dir),
		logging.Int("files", len(written)),
		logging.Int("majors", len(b.Output.Statements.Majors)),
		logging.Int("courses", len(b.Output.Statements.Courses)),
		logging.Int("associations", len(b.Output.Statements.Associations)),
	)
	return written, nil
}

func writeHeader(out io.Writer, b Bundle, title, note string) error {
	_, err := fmt.Fprintf(out, "-- %s\n-- %s\n-- Generated: %s\n-- Run: %s\n\n",
		title, note, b.GeneratedAt.Format(timestampLayout), b.RunID)
	return err
}

func sqlFile(b Bundle, title, note string, statements []string) func(io.Writer) error {
	return func(out io.Writer) error {
		if err := writeHeader(out, b, title, note); err != nil {
			return err
		}
		for _, stmt := range statements {
			if _, err := io.WriteString(out, stmt+"\n"); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeMapping(out io.Writer, ids []sqlgen.MajorID) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"major_id", "major_name"}); err != nil {
		return err
	}
	for _, id := range ids {
		if err := cw.Write([]string{strconv.Itoa(id.ID), id.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeRawPairs(out io.Writer, catalog *reconcile.Catalog) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"major_name", "course_no"}); err != nil {
		return err
	}
	for _, pair := range catalog.Pairs {
		if err := cw.Write([]string{pair.Major, pair.Code}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeCourses(out io.Writer, catalog *reconcile.Catalog) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"course_no", "course_name"}); err != nil {
		return err
	}
	for _, course := range catalog.Courses.SortedCourses() {
		if err := cw.Write([]string{course.Code, course.Name}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeMajors(out io.Writer, b Bundle) error {
	if err := writeHeader(out, b, "All major names", "check these majors against the major table before applying"); err != nil {
		return err
	}
	for _, major := range b.Catalog.Majors.Sorted() {
		if _, err := io.WriteString(out, major+"\n"); err != nil {
			return err
		}
	}
	return nil
}

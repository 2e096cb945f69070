package catalogdb

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"courseplan/internal/diag"
	"courseplan/internal/output"
	"courseplan/internal/sqlgen"
)

// Store is an open catalog database.
type Store struct {
	db   *sql.DB
	path string
}

// Counts holds table row counts.
type Counts struct {
	Majors       int `json:"majors"`
	Courses      int `json:"courses"`
	Associations int `json:"associations"`
}

// Open creates or opens the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps the foreign_keys pragma in force for every statement.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Apply replaces the catalog tables with statements, in the order majors,
// courses, associations, inside one transaction. It returns the rows
// inserted per table. Associations naming a course code with no course
// statement in the batch are skipped and recorded in log.
func (s *Store) Apply(ctx context.Context, statements sqlgen.Statements, log *diag.Log) (Counts, error) {
	if log == nil {
		log = &diag.Log{}
	}
	associations := linkedAssociations(statements, log)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Counts{}, fmt.Errorf("begin apply tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"major_course", "course", "major"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return Counts{}, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	var counts Counts
	batches := []struct {
		name  string
		stmts []string
		count *int
	}{
		{"major", statements.Majors, &counts.Majors},
		{"course", statements.Courses, &counts.Courses},
		{"major_course", associations, &counts.Associations},
	}
	for _, batch := range batches {
		for _, stmt := range batch.stmts {
			res, err := tx.ExecContext(ctx, stmt)
			if err != nil {
				return Counts{}, fmt.Errorf("apply %s statement %q: %w", batch.name, stmt, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return Counts{}, fmt.Errorf("rows affected by %s statement %q: %w", batch.name, stmt, err)
			}
			*batch.count += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return Counts{}, fmt.Errorf("commit apply: %w", err)
	}
	return counts, nil
}

// linkedAssociations drops association statements whose course code has no
// course statement. A course statement that cannot be read back disables
// the filter, since its code is unknown.
func linkedAssociations(statements sqlgen.Statements, log *diag.Log) []string {
	courses := make(map[string]struct{}, len(statements.Courses))
	for _, stmt := range statements.Courses {
		course, ok := sqlgen.ParseCourseInsert(stmt)
		if !ok {
			return statements.Associations
		}
		courses[course.Code] = struct{}{}
	}
	majors := make(map[int]string, len(statements.Majors))
	for _, stmt := range statements.Majors {
		if major, ok := sqlgen.ParseMajorInsert(stmt); ok {
			majors[major.ID] = major.Name
		}
	}

	kept := make([]string, 0, len(statements.Associations))
	for _, stmt := range statements.Associations {
		id, code, ok := sqlgen.ParseAssociationInsert(stmt)
		if ok {
			if _, found := courses[code]; !found {
				major, named := majors[id]
				if !named {
					major = strconv.Itoa(id)
				}
				log.MissingCourse(major, code)
				continue
			}
		}
		kept = append(kept, stmt)
	}
	return kept
}

// Counts returns the current row count of each catalog table.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var counts Counts
	for _, q := range []struct {
		table string
		dst   *int
	}{
		{"major", &counts.Majors},
		{"course", &counts.Courses},
		{"major_course", &counts.Associations},
	} {
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+q.table).Scan(q.dst); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", q.table, err)
		}
	}
	return counts, nil
}

// ReadStatements parses a generated .sql file: one statement per line,
// blank lines and -- comments skipped.
func ReadStatements(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statements: %w", err)
	}
	defer file.Close()

	var statements []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		statements = append(statements, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read statements %s: %w", path, err)
	}
	return statements, nil
}

// LoadDir reads the three statement files from an output directory.
func LoadDir(dir string) (sqlgen.Statements, error) {
	var st sqlgen.Statements
	var err error
	if st.Majors, err = ReadStatements(filepath.Join(dir, output.MajorsSQL)); err != nil {
		return sqlgen.Statements{}, err
	}
	if st.Courses, err = ReadStatements(filepath.Join(dir, output.CoursesSQL)); err != nil {
		return sqlgen.Statements{}, err
	}
	if st.Associations, err = ReadStatements(filepath.Join(dir, output.AssociationsSQL)); err != nil {
		return sqlgen.Statements{}, err
	}
	return st, nil
}

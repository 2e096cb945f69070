package output_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"courseplan/internal/diag"
	"courseplan/internal/extract"
	"courseplan/internal/output"
	"courseplan/internal/reconcile"
	"courseplan/internal/sqlgen"
	"courseplan/internal/testsupport"
)

func sampleBundle() output.Bundle {
	catalog := reconcile.NewCatalog()
	catalog.Courses.Add("CS101", "Intro to CS")
	catalog.Courses.Add("AR100", "O'Keeffe, Georgia")
	catalog.Majors.Add("Computer Science")
	catalog.Majors.Add("Art")
	catalog.Majors.Add("软件工程")
	catalog.Pairs = []extract.Association{
		{Major: "Computer Science", Code: "CS101"},
		{Major: "Art", Code: "AR100"},
		{Major: "Computer Science", Code: "CS101"},
	}
	var log diag.Log
	return output.Bundle{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC),
		Catalog:     catalog,
		Output:      sqlgen.Generate(catalog, &log),
	}
}

func TestWriteProducesAllFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	paths, err := output.NewWriter(dir, nil).Write(sampleBundle())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(paths) != 7 {
		t.Fatalf("expected 7 files, got %v", paths)
	}

	majors := testsupport.ReadFile(t, filepath.Join(dir, output.MajorsSQL))
	for _, want := range []string{
		"-- Major insert statements\n",
		"-- Generated: 2024-09-01 08:30:00\n",
		"-- Run: run-1\n\n",
		"INSERT INTO major(major_no, major_name) VALUES (1, 'Art');\n",
		"INSERT INTO major(major_no, major_name) VALUES (3, '软件工程');\n",
	} {
		if !strings.Contains(majors, want) {
			t.Errorf("%s missing %q:\n%s", output.MajorsSQL, want, majors)
		}
	}

	courses := testsupport.ReadFile(t, filepath.Join(dir, output.CoursesSQL))
	if !strings.Contains(courses, "VALUES ('AR100', 'O''Keeffe, Georgia');\n") {
		t.Errorf("course file missing escaped insert:\n%s", courses)
	}

	pairs := testsupport.ReadFile(t, filepath.Join(dir, output.AssociationsSQL))
	if strings.Count(pairs, "INSERT INTO major_course") != 2 {
		t.Errorf("expected 2 deduplicated associations:\n%s", pairs)
	}

	mapping := testsupport.ReadFile(t, filepath.Join(dir, output.MajorIDMapping))
	if want := "major_id,major_name\n1,Art\n2,Computer Science\n3,软件工程\n"; mapping != want {
		t.Errorf("mapping = %q, want %q", mapping, want)
	}

	raw := testsupport.ReadFile(t, filepath.Join(dir, output.RawPairs))
	if want := "major_name,course_no\nComputer Science,CS101\nArt,AR100\nComputer Science,CS101\n"; raw != want {
		t.Errorf("raw pairs = %q, want %q", raw, want)
	}

	all := testsupport.ReadFile(t, filepath.Join(dir, output.AllCourses))
	if want := "course_no,course_name\nAR100,\"O'Keeffe, Georgia\"\nCS101,Intro to CS\n"; all != want {
		t.Errorf("all courses = %q, want %q", all, want)
	}
}

func TestAllMajorsReloadsAsSeed(t *testing.T) {
	dir := t.TempDir()
	bundle := sampleBundle()
	if _, err := output.NewWriter(dir, nil).Write(bundle); err != nil {
		t.Fatalf("Write: %v", err)
	}

	seed, err := reconcile.ReadSeed(filepath.Join(dir, output.AllMajors))
	if err != nil {
		t.Fatalf("ReadSeed: %v", err)
	}
	if want := bundle.Catalog.Majors.Sorted(); !reflect.DeepEqual(seed, want) {
		t.Fatalf("seed = %v, want %v", seed, want)
	}
}

func TestWriteFailsWhenLocked(t *testing.T) {
	dir := t.TempDir()
	held := flock.New(filepath.Join(dir, output.LockName))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("could not take lock: %v", err)
	}
	t.Cleanup(func() { _ = held.Unlock() })

	_, err = output.NewWriter(dir, nil).Write(sampleBundle())
	if !errors.Is(err, output.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestWriteReleasesLock(t *testing.T) {
	dir := t.TempDir()
	w := output.NewWriter(dir, nil)
	if _, err := w.Write(sampleBundle()); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if _, err := w.Write(sampleBundle()); err != nil {
		t.Fatalf("second Write should reacquire the lock: %v", err)
	}
}

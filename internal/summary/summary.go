// Package summary computes the closing statistics of a conversion run.
package summary

import (
	"slices"

	"courseplan/internal/diag"
	"courseplan/internal/extract"
	"courseplan/internal/reconcile"
	"courseplan/internal/sqlgen"
)

// DefaultSampleSize bounds each sample list.
const DefaultSampleSize = 10

// Summary is serializable run statistics.
type Summary struct {
	RunID         string                `json:"run_id,omitempty"`
	Files         int                   `json:"files"`
	Courses       int                   `json:"courses"`
	RawPairs      int                   `json:"raw_pairs"`
	UniquePairs   int                   `json:"unique_pairs"`
	Associations  int                   `json:"associations"`
	Majors        int                   `json:"majors"`
	SeededMajors  int                   `json:"seeded_majors"`
	Orphans       []string              `json:"courses_without_majors"`
	IdleMajors    []string              `json:"majors_without_courses"`
	Warnings      map[diag.Kind]int     `json:"warnings"`
	SampleMajors  []sqlgen.MajorID      `json:"sample_majors"`
	SampleCourses []extract.Course      `json:"sample_courses"`
	SamplePairs   []extract.Association `json:"sample_pairs"`
}

// Build derives a Summary. Orphan and idle lists are sorted and complete;
// samples hold at most sampleSize entries (DefaultSampleSize when <= 0).
func Build(catalog *reconcile.Catalog, out sqlgen.Output, log *diag.Log, files, sampleSize int) Summary {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}

	linkedCourses := make(map[string]struct{}, len(out.Unique))
	linkedMajors := make(map[string]struct{}, len(out.Unique))
	for _, pair := range out.Unique {
		linkedCourses[pair.Code] = struct{}{}
		linkedMajors[pair.Major] = struct{}{}
	}

	orphans := []string{}
	for _, course := range catalog.Courses.Courses() {
		if _, ok := linkedCourses[course.Code]; !ok {
			orphans = append(orphans, course.Code)
		}
	}
	slices.Sort(orphans)

	idle := []string{}
	for _, major := range out.IDs {
		if _, ok := linkedMajors[major.Name]; !ok {
			idle = append(idle, major.Name)
		}
	}

	return Summary{
		Files:         files,
		Courses:       catalog.Courses.Len(),
		RawPairs:      len(catalog.Pairs),
		UniquePairs:   len(out.Unique),
		Associations:  len(out.Statements.Associations),
		Majors:        len(out.IDs),
		SeededMajors:  catalog.Seeded,
		Orphans:       orphans,
		IdleMajors:    idle,
		Warnings:      log.Counts(),
		SampleMajors:  head(out.IDs, sampleSize),
		SampleCourses: head(catalog.Courses.Courses(), sampleSize),
		SamplePairs:   head(catalog.Pairs, sampleSize),
	}
}

// TotalWarnings sums the per-kind counts.
func (s Summary) TotalWarnings() int {
	total := 0
	for _, n := range s.Warnings {
		total += n
	}
	return total
}

func head[T any](values []T, n int) []T {
	if len(values) > n {
		values = values[:n]
	}
	return append([]T{}, values...)
}

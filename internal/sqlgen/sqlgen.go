package sqlgen

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"courseplan/internal/diag"
	"courseplan/internal/extract"
	"courseplan/internal/reconcile"
)

// MajorID pairs a major with its assigned identifier.
type MajorID struct {
	ID   int    `json:"major_id"`
	Name string `json:"major_name"`
}

// AssignIDs sorts the distinct names in majors and numbers them from 1.
func AssignIDs(majors []string) []MajorID {
	names := slices.Clone(majors)
	slices.Sort(names)
	names = slices.Compact(names)

	out := make([]MajorID, len(names))
	for i, name := range names {
		out[i] = MajorID{ID: i + 1, Name: name}
	}
	return out
}

// IDMap indexes ids by major name.
func IDMap(ids []MajorID) map[string]int {
	out := make(map[string]int, len(ids))
	for _, id := range ids {
		out[id.Name] = id.ID
	}
	return out
}

// Dedup drops repeated (major, course) pairs, keeping first occurrences in
// their original order.
func Dedup(pairs []extract.Association) []extract.Association {
	seen := make(map[extract.Association]struct{}, len(pairs))
	out := make([]extract.Association, 0, len(pairs))
	for _, pair := range pairs {
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out
}

// Escape doubles single quotes for use inside a SQL string literal.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return strings.ReplaceAll(s, "''", "'")
}

const (
	majorPrefix       = "INSERT INTO major(major_no, major_name) VALUES ("
	coursePrefix      = "INSERT INTO course(course_no, course_name) VALUES ("
	associationPrefix = "INSERT INTO major_course(major_no, course_no) VALUES ("
	statementEnd      = ");"
)

func MajorInsert(id int, name string) string {
	return fmt.Sprintf(majorPrefix+"%d, '%s'"+statementEnd, id, Escape(name))
}

func CourseInsert(code, name string) string {
	return fmt.Sprintf(coursePrefix+"'%s', '%s'"+statementEnd, Escape(code), Escape(name))
}

func AssociationInsert(majorID int, code string) string {
	return fmt.Sprintf(associationPrefix+"%d, '%s'"+statementEnd, majorID, Escape(code))
}

// Statements holds the three insert batches in apply order.
type Statements struct {
	Majors       []string
	Courses      []string
	Associations []string
}

// Output is everything generated from one catalog.
type Output struct {
	IDs []MajorID
	// Unique is the deduplicated association set in first-occurrence order.
	Unique     []extract.Association
	Statements Statements
	// Dropped counts unique associations whose major had no ID.
	Dropped int
}

// Generate numbers the catalog's majors and renders every statement.
// Association inserts are ordered by (major ID, course code).
func Generate(catalog *reconcile.Catalog, log *diag.Log) Output {
	out := Output{
		IDs:    AssignIDs(catalog.Majors.Sorted()),
		Unique: Dedup(catalog.Pairs),
	}
	ids := IDMap(out.IDs)

	for _, major := range out.IDs {
		out.Statements.Majors = append(out.Statements.Majors, MajorInsert(major.ID, major.Name))
	}
	for _, course := range catalog.Courses.Courses() {
		out.Statements.Courses = append(out.Statements.Courses, CourseInsert(course.Code, course.Name))
	}

	type keyed struct {
		id   int
		code string
	}
	rows := make([]keyed, 0, len(out.Unique))
	for _, pair := range out.Unique {
		id, ok := ids[pair.Major]
		if !ok {
			out.Dropped++
			log.UnmappedAssociation(pair.Major, pair.Code)
			continue
		}
		rows = append(rows, keyed{id: id, code: pair.Code})
	}
	slices.SortFunc(rows, func(a, b keyed) int {
		if c := cmp.Compare(a.id, b.id); c != 0 {
			return c
		}
		return cmp.Compare(a.code, b.code)
	})
	for _, row := range rows {
		out.Statements.Associations = append(out.Statements.Associations, AssociationInsert(row.id, row.code))
	}
	return out
}

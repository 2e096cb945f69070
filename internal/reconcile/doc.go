// Package reconcile merges per-file extraction results into one catalog.
//
// Courses merge first-seen-wins across files, associations accumulate with
// duplicates intact and majors form a set seeded from an optional list. The
// Catalog is owned by the caller and threaded through the run explicitly.
package reconcile

// Package columns locates the course code, course name and major columns in
// a schedule header row.
//
// Exports from different terms and departments reorder, rename and
// translate their headers, so positions are never assumed. Instead each
// header cell is matched against per-category keyword lists by
// case-insensitive substring containment. The scan runs once in header order
// and the first header claiming a category keeps it.
package columns

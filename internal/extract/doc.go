// Package extract turns one schedule export into courses and major-course
// associations.
//
// ExtractFile reads a file whole, asks the charset detector for a guess and
// then walks the candidate encodings in order. Every candidate produces an
// Attempt tagged DecodeFailure, ColumnsNotFound or Success; the first Success
// wins and nothing decoded under a rejected candidate survives. Row-level
// problems (short rows, conflicting course names) are recorded in the
// caller's diag.Log and never stop the file.
package extract

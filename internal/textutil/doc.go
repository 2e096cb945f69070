// Package textutil provides small text helpers shared by the header mapper,
// the extractor and the CLI renderers.
//
// The primary use cases are:
//   - Unicode case folding for keyword matching that works for both Latin
//     and CJK headers
//   - Trimming the byte order mark and full-width spaces that spreadsheet
//     exports leave around cell values
package textutil

// Package preflight provides readiness checks for the files and directories
// a conversion run touches.
//
// The CLI "courseplan check" command runs RunAll and renders each Result.
// Checks never modify the filesystem; a missing output directory passes when
// its nearest existing parent is writable, since the writer creates it.
package preflight

// Package output writes the generated SQL and lookup files for one run.
//
// All seven files go into a single directory guarded by an exclusive flock
// on .courseplan.lock; a second concurrent run fails fast with ErrLocked
// instead of interleaving files. Each file is replaced atomically.
package output

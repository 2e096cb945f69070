// Package sqlgen assigns major identifiers and renders insert statements.
//
// Major IDs are 1-based positions in the byte-wise sorted major set. They are
// redetermined on every run: adding or removing one major shifts the IDs of
// every major sorted after it.
package sqlgen

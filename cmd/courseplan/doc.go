// Package main hosts the courseplan CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// a run-scoped logger, and hands the work to the internal packages: extract
// and reconcile read the schedule exports, sqlgen renders statements, output
// writes the files, and catalogdb optionally loads them into SQLite.
//
// Keep this package thin. New behavior belongs in an internal package first
// and is surfaced here as a command or flag.
package main

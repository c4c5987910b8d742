// Package main hosts the idverify CLI entrypoint and command graph.
//
// The Cobra-based command tree reads identity documents, extracts their
// fields, cross-checks them for consistency and records each check in the
// local history database. It centralizes configuration resolution, logger
// setup and output formatting so subcommands only describe what to run.
//
// Add new behaviour to the internal packages first and surface it here
// through dedicated commands or flags.
package main

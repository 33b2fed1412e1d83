// Package main hosts the shoebox CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces the ingestion pipeline
// (scan-directory), the catalog audit (verify), and read-only views of the
// device registry and catalog entries. It centralizes configuration
// resolution, catalog opening, and structured logging setup so subcommands
// can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main

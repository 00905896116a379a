// Package main hosts the addizionali CLI entrypoint and command graph.
//
// The root command converts the MEF municipal surtax table into JSON or a
// TypeScript module, optionally overlaying a previously published file.
// Subcommands inspect sources and outputs, run preflight checks, and scaffold
// configuration. Conversion logic lives in internal/convert; this package
// only resolves configuration, sets up logging, and renders summaries.
package main

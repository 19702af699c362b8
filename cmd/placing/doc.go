// Package main hosts the placing CLI entrypoint and command graph.
//
// Every command takes positional arguments only. Data goes to stdout or to
// files derived from the input paths; diagnostics and progress go to stderr.
// Configuration is resolved once per invocation and shared by subcommands.
package main

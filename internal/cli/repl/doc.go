// Package repl provides the interactive mode for reefdb-cli.
//
// The loop reads lines, keeps persistent history under ~/.reefdb/history,
// and hands each command line to an injected executor so the command layer
// stays in charge of dispatch.
package repl

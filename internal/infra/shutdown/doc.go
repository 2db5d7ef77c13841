// Package shutdown provides graceful shutdown handling: a signal-driven
// handler that runs registered hooks in reverse order, bounded by a
// timeout. The CLI uses it to stop open connections on SIGINT/SIGTERM.
package shutdown

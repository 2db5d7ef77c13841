// Package connection tracks the CLI's open connections. The manager holds
// named driver handles and the currently selected one, so interactive
// sessions can hop between servers without redialing.
package connection

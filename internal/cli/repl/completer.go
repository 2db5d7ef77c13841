package repl

import "strings"

// Completer suggests commands for a typed prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a completer over the interactive command set.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"connect", "disconnect",
			"use",
			"query",
			"status",
			"config", "config show", "config path", "config set",
			"help", "exit", "quit",
		},
	}
}

// Complete returns the commands matching prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}

package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Executor runs one command line entered at the prompt.
type Executor func(line string) error

// REPL is the read-eval-print loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	exec      Executor
	prompt    func() string
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithInput sets the input reader, stdin by default.
func WithInput(r io.Reader) Option {
	return func(rp *REPL) { rp.input = r }
}

// WithOutput sets the output writer, stdout by default.
func WithOutput(w io.Writer) Option {
	return func(rp *REPL) { rp.output = w }
}

// WithPrompt sets a dynamic prompt, letting the caller reflect the
// current connection and database.
func WithPrompt(prompt func() string) Option {
	return func(rp *REPL) { rp.prompt = prompt }
}

// WithHistory replaces the default history store.
func WithHistory(h *History) Option {
	return func(rp *REPL) { rp.history = h }
}

// New creates a REPL that dispatches lines through exec.
func New(exec Executor, opts ...Option) *REPL {
	r := &REPL{
		input:     os.Stdin,
		output:    os.Stdout,
		exec:      exec,
		prompt:    func() string { return "reefdb> " },
		completer: NewCompleter(),
		history:   NewHistory(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Completer returns the REPL's completer.
func (r *REPL) Completer() *Completer {
	return r.completer
}

// Run reads and executes lines until EOF or an exit command. History is
// loaded on entry and saved on the way out; history I/O failures do not
// abort the session.
func (r *REPL) Run() error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "Warning: could not load history: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.output, "Warning: could not save history: %v\n", err)
		}
	}()

	reader := bufio.NewReader(r.input)

	for {
		fmt.Fprint(r.output, r.prompt())

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.history.Add(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		if err := r.exec(line); err != nil {
			fmt.Fprintf(r.output, "Error: %v\n", err)
		}
	}
}

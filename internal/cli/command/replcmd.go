package command

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/reefdb-go/internal/cli/config"
	"github.com/yndnr/reefdb-go/internal/cli/repl"
	"github.com/yndnr/reefdb-go/internal/infra/confloader"
	"github.com/yndnr/reefdb-go/internal/infra/shutdown"
)

// ReplCommand returns the interactive mode command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"shell"},
		Usage:   "Start an interactive session",
		Action:  replAction,
	}
}

func replAction(c *cli.Context) error {
	s, err := currentSession(c)
	if err != nil {
		return err
	}

	if s.cfgPath != "" {
		if stop, err := watchConfig(s); err == nil {
			defer stop()
		} else {
			s.log.Debug("config watch unavailable", "error", err)
		}
	}

	h := shutdown.NewHandler(5 * time.Second)
	h.OnShutdown(func(ctx context.Context) error {
		return s.mgr.StopAll(ctx)
	})

	r := repl.New(
		func(line string) error { return dispatch(c.Context, s, line) },
		repl.WithOutput(s.out),
		repl.WithPrompt(func() string {
			if name := s.mgr.CurrentName(); name != "" {
				return "reefdb(" + name + ")> "
			}
			return "reefdb> "
		}),
	)

	runErr := make(chan error, 1)
	go func() {
		runErr <- r.Run()
		h.Trigger()
	}()

	if err := h.Wait(); err != nil {
		s.log.Warn("shutdown hook failed", "error", err)
	}

	select {
	case err := <-runErr:
		return err
	default:
		// Signal-initiated exit while the loop still blocks on input.
		return nil
	}
}

// watchConfig reloads the session config when its file changes on disk,
// so edits to saved connections apply without leaving the session.
func watchConfig(s *session) (func(), error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(s.log))
	if err != nil {
		return nil, err
	}

	w.OnChange(func(path string) {
		if filepath.Base(path) != filepath.Base(s.cfgPath) {
			return
		}
		cfg, err := config.Load(s.cfgPath)
		if err != nil {
			s.log.Warn("config reload failed", "path", s.cfgPath, "error", err)
			return
		}
		s.replaceConfig(cfg)
		s.log.Info("config reloaded", "path", s.cfgPath)
	})

	if err := w.Watch(s.cfgPath); err != nil {
		w.Stop()
		return nil, err
	}
	w.StartAsync()
	return func() { w.Stop() }, nil
}

// dispatch executes one interactive command line. It reuses the same
// session logic as the one-shot commands.
func dispatch(ctx context.Context, s *session, line string) error {
	fields := strings.Fields(line)
	verb, args := fields[0], fields[1:]

	switch verb {
	case "connect":
		target := ""
		if len(args) > 0 {
			target = args[0]
		}
		return s.connect(ctx, target, "", false)

	case "disconnect":
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return s.disconnect(ctx, name)

	case "use":
		if len(args) != 1 {
			return fmt.Errorf("usage: use DATABASE")
		}
		return s.use(ctx, args[0])

	case "query", "q":
		raw := strings.TrimSpace(strings.TrimPrefix(line, verb))
		if raw == "" {
			return fmt.Errorf("usage: query QUERY")
		}
		return s.query(ctx, raw, false)

	case "status":
		return s.status()

	case "config":
		if len(args) > 0 && args[0] == "show" {
			return s.configShow()
		}
		if len(args) > 0 && args[0] == "path" {
			fmt.Fprintln(s.out, s.cfgPath)
			return nil
		}
		if len(args) == 3 && args[0] == "set" {
			return s.configSet(args[1], args[2])
		}
		return fmt.Errorf("usage: config show | config path | config set KEY VALUE")

	case "help":
		printHelp(s)
		return nil

	default:
		return fmt.Errorf("unknown command %q (try help)", verb)
	}
}

func printHelp(s *session) {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, "  connect [ADDRESS | NAME]   open or switch to a connection")
	fmt.Fprintln(s.out, "  disconnect [NAME]          close the current or named connection")
	fmt.Fprintln(s.out, "  use DATABASE               select the database for queries")
	fmt.Fprintln(s.out, "  query QUERY                run a query (JSON or plain string)")
	fmt.Fprintln(s.out, "  status                     list open connections")
	fmt.Fprintln(s.out, "  config show|path|set       inspect or edit the config file")
	fmt.Fprintln(s.out, "  exit                       leave the session")
	if saved := s.savedNames(); len(saved) > 0 {
		fmt.Fprintf(s.out, "Saved connections: %s\n", strings.Join(saved, ", "))
	}
}

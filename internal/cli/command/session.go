package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sort"
	"strconv"
	"sync"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/reefdb-go/internal/cli/config"
	"github.com/yndnr/reefdb-go/internal/cli/connection"
	"github.com/yndnr/reefdb-go/internal/cli/output"
	"github.com/yndnr/reefdb-go/internal/telemetry/logger"
	"github.com/yndnr/reefdb-go/internal/telemetry/metric"
	"github.com/yndnr/reefdb-go/pkg/driver"
)

// session bundles the state one invocation works against. One-shot
// commands and the interactive loop both dispatch through it, so command
// behavior is identical in either mode.
type session struct {
	// mu guards cfg; interactive mode swaps it when the config file
	// changes on disk.
	mu      sync.RWMutex
	cfg     *config.CLIConfig
	cfgPath string
	mgr     *connection.Manager
	log     *slog.Logger
	metrics *metric.Metrics
	flags   *GlobalFlags
	out     io.Writer
	errOut  io.Writer
}

// currentSession builds the session from the CLI context.
func currentSession(c *cli.Context) (*session, error) {
	mgr := GetConnectionManager(c)
	cfg := GetConfig(c)
	if mgr == nil || cfg == nil {
		return nil, fmt.Errorf("command environment not initialized")
	}

	cfgPath, _ := c.App.Metadata["cliConfigPath"].(string)
	return &session{
		cfg:     cfg,
		cfgPath: cfgPath,
		mgr:     mgr,
		log:     GetLogger(c),
		metrics: GetMetrics(c),
		flags:   ParseGlobalFlags(c),
		out:     writerOf(c),
		errOut:  errWriterOf(c),
	}, nil
}

// currentConfig returns the live config snapshot.
func (s *session) currentConfig() *config.CLIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// replaceConfig swaps in a freshly loaded config.
func (s *session) replaceConfig(cfg *config.CLIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// formatter resolves the output format from the flag, falling back to the
// configured default.
func (s *session) formatter() (output.Formatter, error) {
	name := s.flags.Output
	if name == "" {
		name = s.currentConfig().Default.Output
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return output.NewFormatter(format), nil
}

// connect opens a connection to target and makes it current. target is an
// address, a saved connection name, or empty for the configured default.
// When a connection with the resolved name is already open, connect
// switches to it instead of redialing.
func (s *session) connect(ctx context.Context, target, nameFlag string, save bool) error {
	cfg := s.currentConfig()
	addr := target
	db := s.flags.Database
	key := s.flags.AuthKey
	name := nameFlag

	if saved, ok := cfg.Connections[target]; ok {
		addr = saved.Address
		if db == "" {
			db = saved.Database
		}
		if key == "" {
			key = saved.AuthKey
		}
		if name == "" {
			name = target
		}
	}
	if addr == "" {
		addr = s.flags.Address
	}
	if addr == "" {
		addr = cfg.Default.Address
	}
	if db == "" {
		db = cfg.Default.Database
	}

	host, port, err := splitAddress(addr)
	if err != nil {
		return err
	}
	if name == "" {
		name = host
	}

	if _, ok := s.mgr.Get(name); ok {
		if err := s.mgr.Switch(name); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Switched to %s\n", name)
		return nil
	}

	conn, err := driver.Connect(driver.Options{
		Host:     host,
		Port:     port,
		Database: db,
		AuthKey:  key,
		Timeout:  s.flags.Timeout,
		Logger:   s.log,
		Observer: s.observer(),
	})
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}

	if err := s.mgr.Add(ctx, name, conn); err != nil {
		return err
	}

	if save {
		if cfg.Connections == nil {
			cfg.Connections = make(map[string]config.ConnectionConfig)
		}
		cfg.Connections[name] = config.ConnectionConfig{
			Address:  addr,
			Database: db,
			AuthKey:  key,
		}
		if err := s.saveConfig(); err != nil {
			return err
		}
	}

	fmt.Fprintf(s.out, "Connected to %s (%s)\n", addr, name)
	return nil
}

// disconnect closes the named connection, or the current one when name is
// empty.
func (s *session) disconnect(ctx context.Context, name string) error {
	if name == "" {
		name = s.mgr.CurrentName()
	}
	if name == "" {
		fmt.Fprintln(s.out, "Not connected")
		return nil
	}

	if err := s.mgr.Remove(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Disconnected from %s\n", name)
	return nil
}

// use selects the database for subsequent queries on the current
// connection.
func (s *session) use(ctx context.Context, db string) error {
	conn, err := s.mgr.Current()
	if err != nil {
		return err
	}
	if err := conn.Use(ctx, db); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Using database %s\n", db)
	return nil
}

// query runs one query on the current connection and renders the decoded
// result. raw is parsed as JSON; anything that does not parse is sent as
// a plain string query.
func (s *session) query(ctx context.Context, raw string, spin bool) error {
	conn, err := s.mgr.Current()
	if err != nil {
		return err
	}

	var q any
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		q = raw
	}

	var spinner *output.Spinner
	if spin {
		spinner = output.NewSpinner(s.errOut, "running query")
		spinner.Start()
	}

	result, err := conn.Run(ctx, q)

	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	f, err := s.formatter()
	if err != nil {
		return err
	}
	return f.Format(s.out, result)
}

// status renders the open connections.
func (s *session) status() error {
	names := s.mgr.Names()
	if len(names) == 0 {
		fmt.Fprintln(s.out, "No open connections")
		return nil
	}

	current := s.mgr.CurrentName()
	rows := make([]any, 0, len(names))
	for _, name := range names {
		conn, ok := s.mgr.Get(name)
		if !ok {
			continue
		}
		rows = append(rows, map[string]any{
			"name":    name,
			"id":      conn.ID(),
			"address": conn.Addr(),
			"open":    conn.IsOpen(),
			"current": name == current,
		})
	}

	f, err := s.formatter()
	if err != nil {
		return err
	}
	return f.Format(s.out, rows)
}

// configShow renders the loaded config with auth keys masked.
func (s *session) configShow() error {
	cfg := s.currentConfig()
	conns := make(map[string]any, len(cfg.Connections))
	for name, cc := range cfg.Connections {
		entry := map[string]any{"address": cc.Address}
		if cc.Database != "" {
			entry["database"] = cc.Database
		}
		if cc.AuthKey != "" {
			entry["auth_key"] = logger.MaskAuthKey(cc.AuthKey)
		} else if cc.AuthKeySealed != "" {
			entry["auth_key"] = "(sealed)"
		}
		conns[name] = entry
	}

	doc := map[string]any{
		"default": map[string]any{
			"address":  cfg.Default.Address,
			"database": cfg.Default.Database,
			"output":   cfg.Default.Output,
		},
		"connections": conns,
	}

	if cfg.HasPlaintextKeys() {
		fmt.Fprintf(s.errOut, "Warning: auth keys stored in the clear; set %s to seal them\n", config.ConfigKeyEnv)
	}

	f, err := s.formatter()
	if err != nil {
		return err
	}
	return f.Format(s.out, doc)
}

// configSet updates one default setting and persists the file.
func (s *session) configSet(key, value string) error {
	cfg := s.currentConfig()
	switch key {
	case "default.address":
		cfg.Default.Address = value
	case "default.database":
		cfg.Default.Database = value
	case "default.output":
		if _, err := output.ParseFormat(value); err != nil {
			return err
		}
		cfg.Default.Output = value
	default:
		return fmt.Errorf("unknown config key %q", key)
	}

	if err := s.saveConfig(); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Set %s = %s\n", key, value)
	return nil
}

// saveConfig persists the config to its backing file.
func (s *session) saveConfig() error {
	if s.cfgPath == "" {
		return fmt.Errorf("no config path available")
	}
	if err := config.Save(s.currentConfig(), s.cfgPath); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// observer returns the metrics sink, or nil to let the driver default.
func (s *session) observer() driver.Observer {
	if s.metrics == nil {
		return nil
	}
	return s.metrics
}

// savedNames returns the saved connection names, sorted.
func (s *session) savedNames() []string {
	cfg := s.currentConfig()
	names := make([]string, 0, len(cfg.Connections))
	for name := range cfg.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// splitAddress splits host:port, defaulting the port when absent.
func splitAddress(addr string) (string, int, error) {
	if addr == "" {
		return "", 0, fmt.Errorf("no server address")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		// No port in the address; use the default.
		return addr, driver.DefaultPort, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	return host, port, nil
}

package command

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/reefdb-go/internal/cli/config"
	"github.com/yndnr/reefdb-go/internal/cli/connection"
	"github.com/yndnr/reefdb-go/internal/infra/buildinfo"
	"github.com/yndnr/reefdb-go/internal/telemetry/logger"
	"github.com/yndnr/reefdb-go/internal/telemetry/metric"
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "reefdb-cli",
		Usage:   "ReefDB command-line client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			ConnectCommand(),
			DisconnectCommand(),
			UseCommand(),
			QueryCommand(),
			StatusCommand(),
			ConfigCommand(),
			ReplCommand(),
		},
		Before: setup,
		After: func(c *cli.Context) error {
			if mgr := GetConnectionManager(c); mgr != nil {
				return mgr.StopAll(c.Context)
			}
			return nil
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "address",
			Aliases: []string{"a"},
			Usage:   "ReefDB server address (e.g., localhost:28015)",
			EnvVars: []string{"REEFDB_ADDRESS"},
		},
		&cli.StringFlag{
			Name:    "database",
			Aliases: []string{"d"},
			Usage:   "Database to select at connect time",
			EnvVars: []string{"REEFDB_DATABASE"},
		},
		&cli.StringFlag{
			Name:    "auth-key",
			Aliases: []string{"k"},
			Usage:   "Auth key for the handshake",
			EnvVars: []string{"REEFDB_AUTH_KEY"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Usage:   "Dial timeout (0 blocks indefinitely)",
			Value:   5 * time.Second,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level: debug, info, warn, error",
			EnvVars: []string{"REEFDB_LOG_LEVEL"},
			Value:   "warn",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Shorthand for --log-level debug",
		},
		&cli.StringFlag{
			Name:    "metrics-addr",
			Usage:   "Serve Prometheus metrics on this address (e.g., :9105)",
			EnvVars: []string{"REEFDB_METRICS_ADDR"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path (default ~/.reefdb/cli.yaml)",
			EnvVars: []string{"REEFDB_CONFIG"},
		},
	}
}

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	Address  string
	Database string
	AuthKey  string
	Timeout  time.Duration

	Output string // table, json, yaml

	LogLevel    string
	Verbose     bool
	MetricsAddr string
	ConfigPath  string
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	f := &GlobalFlags{
		Address:     c.String("address"),
		Database:    c.String("database"),
		AuthKey:     c.String("auth-key"),
		Timeout:     c.Duration("timeout"),
		Output:      c.String("output"),
		LogLevel:    c.String("log-level"),
		Verbose:     c.Bool("verbose"),
		MetricsAddr: c.String("metrics-addr"),
		ConfigPath:  c.String("config"),
	}
	if f.Verbose {
		f.LogLevel = "debug"
	}
	return f
}

// setup initializes the logger, config, metrics, and connection manager
// shared by all commands.
func setup(c *cli.Context) error {
	flags := ParseGlobalFlags(c)

	errOut := c.App.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}
	log := logger.New(logger.Config{
		Level:  flags.LogLevel,
		Format: "text",
		Output: errOut,
	})

	cfgPath := flags.ConfigPath
	if cfgPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			log.Warn("cannot resolve default config path", "error", err)
		} else {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reg := prometheus.NewRegistry()
	metrics := metric.New(reg)
	if flags.MetricsAddr != "" {
		serveMetrics(log, flags.MetricsAddr, reg)
	}

	c.App.Metadata["logger"] = log
	c.App.Metadata["cliConfig"] = cfg
	c.App.Metadata["cliConfigPath"] = cfgPath
	c.App.Metadata["metrics"] = metrics
	c.App.Metadata["connMgr"] = connection.NewManager()
	return nil
}

// serveMetrics exposes the registry on addr for the lifetime of the
// process. Interactive sessions are the intended consumer; one-shot
// commands exit before a scrape is likely.
func serveMetrics(log *slog.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("metrics server stopped", "addr", addr, "error", err)
		}
	}()
	log.Info("serving metrics", "addr", addr)
}

// GetConnectionManager retrieves the connection manager from context.
func GetConnectionManager(c *cli.Context) *connection.Manager {
	if mgr, ok := c.App.Metadata["connMgr"].(*connection.Manager); ok {
		return mgr
	}
	return nil
}

// GetConfig retrieves the loaded CLI config from context.
func GetConfig(c *cli.Context) *config.CLIConfig {
	if cfg, ok := c.App.Metadata["cliConfig"].(*config.CLIConfig); ok {
		return cfg
	}
	return nil
}

// GetLogger retrieves the logger from context.
func GetLogger(c *cli.Context) *slog.Logger {
	if log, ok := c.App.Metadata["logger"].(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

// GetMetrics retrieves the driver metrics from context.
func GetMetrics(c *cli.Context) *metric.Metrics {
	if m, ok := c.App.Metadata["metrics"].(*metric.Metrics); ok {
		return m
	}
	return nil
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// writerOf returns the app's stdout writer.
func writerOf(c *cli.Context) io.Writer {
	if c.App.Writer != nil {
		return c.App.Writer
	}
	return os.Stdout
}

// errWriterOf returns the app's stderr writer.
func errWriterOf(c *cli.Context) io.Writer {
	if c.App.ErrWriter != nil {
		return c.App.ErrWriter
	}
	return os.Stderr
}

package driver

import (
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/yndnr/reefdb-go/pkg/query"
)

// Default connection settings.
const (
	DefaultHost = "localhost"
	DefaultPort = 28015
)

// Options configures a connection.
type Options struct {
	// Host is the server hostname (default "localhost").
	Host string

	// Port is the server TCP port (default 28015).
	Port int

	// Database is the database selected at connect time, empty for none.
	// Use switches it later.
	Database string

	// AuthKey authenticates the handshake. Empty means no authentication.
	AuthKey string

	// Timeout bounds the dial. Zero blocks indefinitely. The handshake
	// reply read and query exchanges are not bounded by it.
	Timeout time.Duration

	// Logger receives connection lifecycle and per-query log records.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// Codec encodes queries and decodes responses. Defaults to
	// query.JSONCodec.
	Codec query.Codec

	// Observer receives connection and query telemetry. Optional.
	Observer Observer

	// Dialer opens the underlying transport. Defaults to DialTCP.
	Dialer Dialer
}

// withDefaults fills unset fields with their defaults.
func (o Options) withDefaults() Options {
	if o.Host == "" {
		o.Host = DefaultHost
	}
	if o.Port == 0 {
		o.Port = DefaultPort
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Codec == nil {
		o.Codec = query.JSONCodec{}
	}
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	if o.Dialer == nil {
		o.Dialer = DialTCP
	}
	return o
}

// addr returns the host:port dial address.
func (o Options) addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

// Observer receives telemetry from a connection. Implementations must be
// safe for use from the connection worker goroutine.
type Observer interface {
	// ConnectionOpened is called after a successful handshake.
	ConnectionOpened()

	// ConnectionClosed is called when the connection stops.
	ConnectionClosed()

	// QueryDone is called after each query exchange with its duration
	// and outcome.
	QueryDone(d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ConnectionOpened()              {}
func (nopObserver) ConnectionClosed()              {}
func (nopObserver) QueryDone(time.Duration, error) {}

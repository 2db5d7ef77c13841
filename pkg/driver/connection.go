package driver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/reefdb-go/pkg/query"
)

// Connection is a handle to one authenticated ReefDB session. All methods
// are safe for concurrent use; operations are serialized in arrival order
// by a single worker goroutine that exclusively owns the socket, the
// selected database, and the token counter.
type Connection struct {
	id    string
	addr  string
	log   *slog.Logger
	obs   Observer
	codec query.Codec

	reqs chan request
	done chan struct{}
}

type opKind int

const (
	opRun opKind = iota
	opUse
	opIsOpen
	opStop
)

type request struct {
	kind  opKind
	query any
	db    string
	// reply is buffered so an abandoned caller never blocks the worker.
	reply chan response
}

type response struct {
	value any
	err   error
}

// Connect dials the server, performs the handshake, and returns a live
// connection handle. On handshake rejection the socket is closed and no
// handle is returned; the failure is terminal for this call.
func Connect(opts Options) (*Connection, error) {
	opts = opts.withDefaults()
	addr := opts.addr()

	t, err := opts.Dialer(addr, opts.Timeout)
	if err != nil {
		return nil, ErrTransport.WithDetails("dial " + addr).Wrap(err)
	}

	if err := shakeHands(t, opts.AuthKey); err != nil {
		t.Close()
		return nil, err
	}

	id := ulid.Make().String()
	c := &Connection{
		id:    id,
		addr:  addr,
		log:   opts.Logger.With("conn_id", id, "addr", addr),
		obs:   opts.Observer,
		codec: opts.Codec,
		reqs:  make(chan request),
		done:  make(chan struct{}),
	}

	go c.loop(t, opts.Database)

	c.obs.ConnectionOpened()
	c.log.Info("connected", "database", opts.Database)
	return c, nil
}

// ID returns the handle's unique identifier, used in log records.
func (c *Connection) ID() string {
	return c.id
}

// Addr returns the host:port the connection was dialed to.
func (c *Connection) Addr() string {
	return c.addr
}

// Run serializes the query, sends it tagged with the next token, blocks for
// the framed response, and returns the decoded result.
//
// The context is honored while waiting for the worker and for the reply.
// Once the exchange has started it cannot be interrupted; cancellation
// abandons the wait, not the operation.
func (c *Connection) Run(ctx context.Context, q any) (any, error) {
	resp, err := c.do(ctx, request{kind: opRun, query: q})
	if err != nil {
		return nil, err
	}
	return resp.value, resp.err
}

// Use switches the database injected into subsequent queries. It never
// touches the socket and takes effect on the next Run.
func (c *Connection) Use(ctx context.Context, db string) error {
	resp, err := c.do(ctx, request{kind: opUse, db: db})
	if err != nil {
		return err
	}
	return resp.err
}

// IsOpen reports whether the connection has not been stopped. It does not
// probe the socket: a peer that vanished without a FIN still reports open
// until an exchange fails.
func (c *Connection) IsOpen() bool {
	resp, err := c.do(context.Background(), request{kind: opIsOpen})
	if err != nil {
		return false
	}
	return resp.value.(bool)
}

// Stop terminates the connection, closing the socket. Operations after
// Stop fail with ErrTerminated. Stop itself is idempotent.
func (c *Connection) Stop(ctx context.Context) error {
	resp, err := c.do(ctx, request{kind: opStop})
	if err != nil {
		if errors.Is(err, ErrTerminated) {
			return nil
		}
		return err
	}
	return resp.err
}

// do submits one operation to the worker and waits for its reply.
func (c *Connection) do(ctx context.Context, req request) (response, error) {
	req.reply = make(chan response, 1)

	select {
	case c.reqs <- req:
	case <-c.done:
		return response{}, ErrTerminated
	case <-ctx.Done():
		return response{}, ctx.Err()
	}

	select {
	case resp := <-req.reply:
		return resp, nil
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

// loop is the worker. It is the only goroutine that ever touches the
// transport, the selected database, or the token counter.
func (c *Connection) loop(t Transport, db string) {
	defer close(c.done)

	// Tokens start at 1 and advance by one per completed exchange, so
	// every query carries a token strictly greater than all before it.
	token := uint64(1)

	for {
		req := <-c.reqs
		switch req.kind {
		case opRun:
			value, advance, err := c.exchange(t, token, req.query, db)
			if advance {
				token++
			}
			req.reply <- response{value: value, err: err}

		case opUse:
			db = req.db
			c.log.Debug("database switched", "database", db)
			req.reply <- response{}

		case opIsOpen:
			req.reply <- response{value: true}

		case opStop:
			err := t.Close()
			if err != nil {
				err = ErrTransport.WithDetails("close").Wrap(err)
			}
			c.obs.ConnectionClosed()
			c.log.Info("stopped")
			req.reply <- response{err: err}
			return
		}
	}
}

// exchange performs one query round trip. advance reports whether the
// exchange completed at the transport level, which is when the token
// counter must move: a decode failure still advances it, a transport
// failure does not.
func (c *Connection) exchange(t Transport, token uint64, q any, db string) (value any, advance bool, err error) {
	start := time.Now()
	defer func() {
		c.obs.QueryDone(time.Since(start), err)
	}()

	payload, err := c.codec.Encode(q, query.Options{DB: db})
	if err != nil {
		return nil, false, ErrEncode.Wrap(err)
	}

	if err := writeQueryFrame(t, token, payload); err != nil {
		return nil, false, err
	}

	respToken, body, err := readResponseFrame(t)
	if err != nil {
		return nil, false, err
	}
	if respToken != token {
		// Only one query is ever in flight, so ordering already
		// correlates request and response; the tag is informational.
		c.log.Debug("response token mismatch", "sent", token, "received", respToken)
	}

	value, err = c.codec.Decode(body)
	if err != nil {
		return nil, true, ErrDecode.Wrap(err)
	}

	c.log.Debug("query done", "token", token, "duration", time.Since(start))
	return value, true, nil
}

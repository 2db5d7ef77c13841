package driver

import (
	"bufio"
	"io"
	"net"
	"time"
)

// Transport is the blocking byte stream under a connection. Implementations
// are not required to be safe for concurrent use; the connection worker is
// the only caller.
type Transport interface {
	// Send writes p in full.
	Send(p []byte) error

	// Recv blocks until exactly n bytes are available and returns them.
	Recv(n int) ([]byte, error)

	// RecvDelim blocks until delim is read and returns everything up to
	// and including it.
	RecvDelim(delim byte) ([]byte, error)

	// Close releases the underlying socket.
	Close() error
}

// Dialer opens a Transport to the given address. A zero timeout blocks
// indefinitely.
type Dialer func(addr string, timeout time.Duration) (Transport, error)

// DialTCP is the default Dialer.
func DialTCP(addr string, timeout time.Duration) (Transport, error) {
	var (
		conn net.Conn
		err  error
	)
	if timeout > 0 {
		conn, err = net.DialTimeout("tcp", addr, timeout)
	} else {
		conn, err = net.Dial("tcp", addr)
	}
	if err != nil {
		return nil, err
	}
	return newTCPTransport(conn), nil
}

// tcpTransport adapts a net.Conn to the Transport interface. Reads go
// through a bufio.Reader so delimiter scans do not over-read past their
// frame for the next caller.
type tcpTransport struct {
	conn net.Conn
	r    *bufio.Reader
}

func newTCPTransport(conn net.Conn) *tcpTransport {
	return &tcpTransport{
		conn: conn,
		r:    bufio.NewReader(conn),
	}
}

func (t *tcpTransport) Send(p []byte) error {
	// net.Conn.Write returns an error unless all bytes were written.
	_, err := t.conn.Write(p)
	return err
}

func (t *tcpTransport) Recv(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(t.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (t *tcpTransport) RecvDelim(delim byte) ([]byte, error) {
	return t.r.ReadBytes(delim)
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}

package command

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/reefdb-go/internal/cli/config"
	"github.com/yndnr/reefdb-go/internal/cli/connection"
)

// fakeServer speaks the ReefDB wire protocol: handshake, then one framed
// response per framed query. Query payloads are recorded for inspection.
type fakeServer struct {
	addr    string
	respond func(payload []byte) []byte

	mu       sync.Mutex
	payloads [][]byte
}

// newFakeServer starts a server answering every query with body.
func newFakeServer(t *testing.T, body string) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	f := &fakeServer{
		addr:    ln.Addr().String(),
		respond: func([]byte) []byte { return []byte(body) },
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go f.serve(conn)
		}
	}()

	return f
}

func (f *fakeServer) serve(conn net.Conn) {
	defer conn.Close()

	var head [8]byte
	if _, err := io.ReadFull(conn, head[:]); err != nil {
		return
	}
	keyLen := binary.LittleEndian.Uint32(head[4:])
	rest := make([]byte, int(keyLen)+4)
	if _, err := io.ReadFull(conn, rest); err != nil {
		return
	}
	if _, err := conn.Write([]byte("SUCCESS\x00")); err != nil {
		return
	}

	for {
		var frame [12]byte
		if _, err := io.ReadFull(conn, frame[:]); err != nil {
			return
		}
		payload := make([]byte, binary.LittleEndian.Uint32(frame[8:]))
		if _, err := io.ReadFull(conn, payload); err != nil {
			return
		}

		f.mu.Lock()
		f.payloads = append(f.payloads, payload)
		f.mu.Unlock()

		body := f.respond(payload)
		out := make([]byte, 0, 12+len(body))
		out = append(out, frame[:8]...)
		out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
		out = append(out, body...)
		if _, err := conn.Write(out); err != nil {
			return
		}
	}
}

// lastPayload returns the most recent query payload.
func (f *fakeServer) lastPayload(t *testing.T) []byte {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.payloads) == 0 {
		t.Fatal("no query payloads recorded")
	}
	return f.payloads[len(f.payloads)-1]
}

// envelope decodes a recorded query payload into its query and directives.
func envelope(t *testing.T, payload []byte) (any, map[string]any) {
	t.Helper()

	var env []any
	if err := json.Unmarshal(payload, &env); err != nil {
		t.Fatalf("payload is not a JSON envelope: %v", err)
	}
	if len(env) != 2 {
		t.Fatalf("envelope has %d elements, want 2", len(env))
	}
	directives, ok := env[1].(map[string]any)
	if !ok {
		t.Fatalf("directives are %T, want object", env[1])
	}
	return env[0], directives
}

// newTestSession builds a session against a temp config file, with output
// captured in buffers.
func newTestSession(t *testing.T) (*session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	s := &session{
		cfg:     config.Default(),
		cfgPath: filepath.Join(t.TempDir(), "cli.yaml"),
		mgr:     connection.NewManager(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		flags:   &GlobalFlags{Timeout: time.Second},
		out:     out,
		errOut:  errOut,
	}
	t.Cleanup(func() { s.mgr.StopAll(t.Context()) })
	return s, out, errOut
}

// runCLI runs the full app with the given arguments, capturing output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	app := App()
	var out, errOut bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &errOut

	err := app.Run(append([]string{"reefdb-cli"}, args...))
	return out.String(), errOut.String(), err
}

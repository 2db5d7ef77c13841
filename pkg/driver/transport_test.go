package driver

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestDialTCP_RoundTrip(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, 5)
		conn.Read(buf)
		conn.Write([]byte("world\x00extra"))
	}()

	tr, err := DialTCP(listener.Addr().String(), time.Second)
	if err != nil {
		t.Fatalf("DialTCP failed: %v", err)
	}
	defer tr.Close()

	if err := tr.Send([]byte("hello")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	reply, err := tr.RecvDelim(0x00)
	if err != nil {
		t.Fatalf("RecvDelim failed: %v", err)
	}
	if !bytes.Equal(reply, []byte("world\x00")) {
		t.Errorf("RecvDelim = %q, want %q", reply, "world\x00")
	}

	// Bytes after the delimiter stay buffered for the next read.
	rest, err := tr.Recv(5)
	if err != nil {
		t.Fatalf("Recv failed: %v", err)
	}
	if !bytes.Equal(rest, []byte("extra")) {
		t.Errorf("Recv = %q, want %q", rest, "extra")
	}
}

func TestDialTCP_ConnectFailure(t *testing.T) {
	// A listener that is closed immediately leaves a port nothing is
	// accepting on.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	if _, err := DialTCP(addr, time.Second); err == nil {
		t.Error("DialTCP to a closed port should fail")
	}
}

func TestTCPTransport_RecvExact(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		// Two writes; Recv must still block for the full count.
		conn.Write([]byte("abc"))
		time.Sleep(10 * time.Millisecond)
		conn.Write([]byte("defgh"))
	}()

	tr, err := DialTCP(listener.Addr().String(), time.Second)
	if err != nil {
		t.Fatalf("DialTCP failed: %v", err)
	}
	defer tr.Close()

	got, err := tr.Recv(8)
	if err != nil {
		t.Fatalf("Recv failed: %v", err)
	}
	if !bytes.Equal(got, []byte("abcdefgh")) {
		t.Errorf("Recv = %q, want %q", got, "abcdefgh")
	}
}

func TestTCPTransport_RecvPeerClose(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer listener.Close()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		conn.Write([]byte("ab"))
		conn.Close()
	}()

	tr, err := DialTCP(listener.Addr().String(), time.Second)
	if err != nil {
		t.Fatalf("DialTCP failed: %v", err)
	}
	defer tr.Close()

	if _, err := tr.Recv(8); err == nil {
		t.Error("Recv should fail when the peer closes mid-read")
	}
}

package driver

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Handshake magic numbers, sent little-endian.
const (
	magicVersion  uint32 = 0x5F75E83E
	magicProtocol uint32 = 0x7E6970C7
)

// handshakeSuccess is the only reply that completes a handshake.
var handshakeSuccess = []byte("SUCCESS\x00")

// handshakeFrame builds the client half of the handshake:
// version magic, auth key length, auth key bytes (only when non-empty),
// protocol magic. All integers little-endian.
func handshakeFrame(authKey string) []byte {
	buf := make([]byte, 0, 12+len(authKey))
	buf = binary.LittleEndian.AppendUint32(buf, magicVersion)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(authKey)))
	buf = append(buf, authKey...)
	buf = binary.LittleEndian.AppendUint32(buf, magicProtocol)
	return buf
}

// shakeHands authenticates and version-negotiates a freshly connected
// transport. It blocks until the server's NUL-terminated reply arrives.
// Any reply other than "SUCCESS\x00" is a terminal handshake failure;
// no retry is performed.
func shakeHands(t Transport, authKey string) error {
	if err := t.Send(handshakeFrame(authKey)); err != nil {
		return ErrTransport.WithDetails("handshake send").Wrap(err)
	}

	reply, err := t.RecvDelim(0x00)
	if err != nil {
		return ErrTransport.WithDetails("handshake reply").Wrap(err)
	}
	if !bytes.Equal(reply, handshakeSuccess) {
		return ErrHandshake.WithDetails(fmt.Sprintf("server replied %q", bytes.TrimSuffix(reply, []byte{0x00})))
	}
	return nil
}

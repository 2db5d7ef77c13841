package driver

import (
	"encoding/binary"
	"fmt"
)

// MaxResponseLen caps a single response payload (64 MiB). A length above it
// means the stream is corrupt or hostile; failing beats allocating.
const MaxResponseLen = 64 << 20

// writeQueryFrame sends one framed query: the 8-byte little-endian token
// that correlates the exchange, the 4-byte little-endian payload length,
// then the payload itself.
func writeQueryFrame(t Transport, token uint64, payload []byte) error {
	frame := make([]byte, 0, 12+len(payload))
	frame = binary.LittleEndian.AppendUint64(frame, token)
	frame = binary.LittleEndian.AppendUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)

	if err := t.Send(frame); err != nil {
		return ErrTransport.WithDetails("query send").Wrap(err)
	}
	return nil
}

// readResponseFrame blocks for one framed response and returns its token
// and payload.
func readResponseFrame(t Transport) (uint64, []byte, error) {
	hdr, err := t.Recv(8)
	if err != nil {
		return 0, nil, ErrTransport.WithDetails("response token").Wrap(err)
	}
	token := binary.LittleEndian.Uint64(hdr)

	lenb, err := t.Recv(4)
	if err != nil {
		return 0, nil, ErrTransport.WithDetails("response length").Wrap(err)
	}
	n := binary.LittleEndian.Uint32(lenb)
	if n > MaxResponseLen {
		return 0, nil, ErrTransport.WithDetails(fmt.Sprintf("response length %d exceeds limit %d", n, MaxResponseLen))
	}

	payload, err := t.Recv(int(n))
	if err != nil {
		return 0, nil, ErrTransport.WithDetails("response payload").Wrap(err)
	}
	return token, payload, nil
}

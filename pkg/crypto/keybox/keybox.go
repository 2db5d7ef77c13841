package keybox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the required key length in bytes.
const KeySize = 32

// Kind identifies the sealing algorithm.
type Kind string

const (
	KindAESGCM   Kind = "aes-gcm"
	KindChaCha20 Kind = "chacha20-poly1305"
)

var (
	// ErrKeySize indicates the key is not KeySize bytes.
	ErrKeySize = errors.New("keybox: key must be 32 bytes")

	// ErrOpen indicates the sealed blob failed authentication, usually a
	// wrong key or corrupted data.
	ErrOpen = errors.New("keybox: open failed")
)

// Box seals and opens secrets with a fixed key.
type Box struct {
	aead cipher.AEAD
	kind Kind
}

// New creates a Box with the cipher preferred for this host.
func New(key []byte) (*Box, error) {
	if hardwareAES() {
		return NewWithKind(key, KindAESGCM)
	}
	return NewWithKind(key, KindChaCha20)
}

// NewWithKind creates a Box with an explicit cipher.
func NewWithKind(key []byte, kind Kind) (*Box, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}

	switch kind {
	case KindAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		return &Box{aead: aead, kind: kind}, nil

	case KindChaCha20:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, err
		}
		return &Box{aead: aead, kind: kind}, nil

	default:
		return nil, errors.New("keybox: unknown kind " + string(kind))
	}
}

// Kind returns the sealing algorithm in use.
func (b *Box) Kind() Kind {
	return b.kind
}

// Seal encrypts plain, binding aad into the authentication tag. The
// returned blob carries the nonce as its prefix.
func (b *Box) Seal(plain, aad []byte) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return b.aead.Seal(nonce, nonce, plain, aad), nil
}

// Open decrypts a blob produced by Seal with the same key and aad.
func (b *Box) Open(sealed, aad []byte) ([]byte, error) {
	if len(sealed) < b.aead.NonceSize() {
		return nil, ErrOpen
	}
	nonce, ciphertext := sealed[:b.aead.NonceSize()], sealed[b.aead.NonceSize():]

	plain, err := b.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrOpen
	}
	return plain, nil
}

// hardwareAES reports whether the architecture accelerates AES. Go's
// crypto/aes uses AES-NI on amd64 and the ARM crypto extensions on arm64.
func hardwareAES() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return true
	default:
		return false
	}
}

package keybox

import (
	"bytes"
	"errors"
	"testing"
)

func testKey(b byte) []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestNew_KeySize(t *testing.T) {
	if _, err := New(make([]byte, 16)); !errors.Is(err, ErrKeySize) {
		t.Errorf("New with short key err = %v, want ErrKeySize", err)
	}
	if _, err := New(testKey(1)); err != nil {
		t.Errorf("New with 32-byte key failed: %v", err)
	}
}

func TestBox_SealOpen_RoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindAESGCM, KindChaCha20} {
		t.Run(string(kind), func(t *testing.T) {
			box, err := NewWithKind(testKey(1), kind)
			if err != nil {
				t.Fatalf("NewWithKind failed: %v", err)
			}

			plain := []byte("hunter2")
			aad := []byte("connections/production")

			sealed, err := box.Seal(plain, aad)
			if err != nil {
				t.Fatalf("Seal failed: %v", err)
			}
			if bytes.Contains(sealed, plain) {
				t.Error("sealed blob should not contain the plaintext")
			}

			got, err := box.Open(sealed, aad)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			if !bytes.Equal(got, plain) {
				t.Errorf("Open = %q, want %q", got, plain)
			}
		})
	}
}

func TestBox_Open_WrongKey(t *testing.T) {
	box1, _ := NewWithKind(testKey(1), KindChaCha20)
	box2, _ := NewWithKind(testKey(2), KindChaCha20)

	sealed, err := box1.Seal([]byte("secret"), nil)
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := box2.Open(sealed, nil); !errors.Is(err, ErrOpen) {
		t.Errorf("Open with wrong key err = %v, want ErrOpen", err)
	}
}

func TestBox_Open_WrongAAD(t *testing.T) {
	box, _ := NewWithKind(testKey(1), KindAESGCM)

	sealed, err := box.Seal([]byte("secret"), []byte("name-a"))
	if err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	if _, err := box.Open(sealed, []byte("name-b")); !errors.Is(err, ErrOpen) {
		t.Errorf("Open with wrong aad err = %v, want ErrOpen", err)
	}
}

func TestBox_Open_Truncated(t *testing.T) {
	box, _ := New(testKey(1))

	if _, err := box.Open([]byte("short"), nil); !errors.Is(err, ErrOpen) {
		t.Errorf("Open of truncated blob err = %v, want ErrOpen", err)
	}
}

func TestBox_SealUniqueNonce(t *testing.T) {
	box, _ := New(testKey(1))

	a, _ := box.Seal([]byte("same"), nil)
	b, _ := box.Seal([]byte("same"), nil)
	if bytes.Equal(a, b) {
		t.Error("two seals of the same plaintext should differ")
	}
}

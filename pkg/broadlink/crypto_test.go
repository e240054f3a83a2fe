package broadlink

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte("the quick brown fox")
	ct, err := encryptZeroPad(InitialKey, InitialVector, plaintext)
	if err != nil {
		t.Fatalf("encryptZeroPad: %v", err)
	}
	if len(ct)%16 != 0 {
		t.Fatalf("ciphertext length %d not block aligned", len(ct))
	}

	pt, err := decryptBlocks(InitialKey, InitialVector, ct)
	if err != nil {
		t.Fatalf("decryptBlocks: %v", err)
	}
	if !bytes.Equal(pt[:len(plaintext)], plaintext) {
		t.Fatalf("round trip mismatch: got %q, want prefix %q", pt, plaintext)
	}
	for _, b := range pt[len(plaintext):] {
		if b != 0 {
			t.Fatalf("expected zero padding tail, got %v", pt[len(plaintext):])
		}
	}
}

func TestEncryptSeedVectorPayload(t *testing.T) {
	// The 10-byte payload from the command envelope seed vector, zero-padded
	// to one AES block and encrypted under the fixed initial key/IV.
	payload := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	want := []byte{0xa5, 0xc5, 0x58, 0xb7, 0x2b, 0x46, 0xae, 0x58, 0x6d, 0xf1, 0xbb, 0x08, 0xe4, 0x4a, 0x1e, 0xda}

	got, err := encryptZeroPad(InitialKey, InitialVector, payload)
	if err != nil {
		t.Fatalf("encryptZeroPad: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("ciphertext = % x, want % x", got, want)
	}
}

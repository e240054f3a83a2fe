package broadlink

import (
	"bytes"
	"testing"
)

func TestAuthenticationMessagePacksCorrectly(t *testing.T) {
	auth := newAuthenticationMessage("Test 1")

	want := []byte{
		0, 0, 0, 0, 49, 49, 49, 49, 49, 49, 49, 49, 49, 49, 49, 49,
		49, 49, 49, 49, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0,
		84, 101, 115, 116, 32, 49, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	got := auth.pack()
	if !bytes.Equal(got, want) {
		t.Fatalf("pack() = % x, want % x", got, want)
	}
}

func TestAuthenticationResponseParse(t *testing.T) {
	data := make([]byte, authenticationResponseSize)
	putU32LE(data[0x00:0x04], 0xCAFEBABE)
	copy(data[0x04:0x14], InitialKey[:])

	resp, err := parseAuthenticationResponse(data)
	if err != nil {
		t.Fatalf("parseAuthenticationResponse: %v", err)
	}
	if resp.authID != 0xCAFEBABE {
		t.Fatalf("authID = 0x%X, want 0xCAFEBABE", resp.authID)
	}
	if resp.key != InitialKey {
		t.Fatalf("key = %v, want %v", resp.key, InitialKey)
	}
}

func TestAuthenticationResponseShort(t *testing.T) {
	if _, err := parseAuthenticationResponse(make([]byte, 4)); err == nil {
		t.Fatal("expected ShortReplyError, got nil")
	}
}

package broadlink

import (
	"bytes"
	"testing"
)

func TestRemoteDataMessagePacksCorrectly(t *testing.T) {
	msg := newRemoteDataMessage(remoteCmdSendCode)
	payload := []byte{0xAB, 0xCD, 0xEF, 0x01, 0x23, 0x45, 0x67, 0x89}

	want := []byte{12, 0, 2, 0, 0, 0, 171, 205, 239, 1, 35, 69, 103, 137}
	got := msg.packWithPayload(payload)
	if !bytes.Equal(got, want) {
		t.Fatalf("packWithPayload() = % x, want % x", got, want)
	}
}

func TestRemoteDataUnpackRoundTrip(t *testing.T) {
	msg := newRemoteDataMessage(remoteCmdGetCode)
	payload := []byte{1, 2, 3, 4, 5}
	packed := msg.packWithPayload(payload)

	got, err := unpackRemoteDataPayload(packed)
	if err != nil {
		t.Fatalf("unpackRemoteDataPayload: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("unpackRemoteDataPayload() = % x, want % x", got, payload)
	}
}

func TestRemoteDataUnpackEmptyReply(t *testing.T) {
	got, err := unpackRemoteDataPayload([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("unpackRemoteDataPayload: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil payload for short reply, got % x", got)
	}
}

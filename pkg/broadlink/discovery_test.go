package broadlink

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestDiscoveryMessagePacksCorrectly(t *testing.T) {
	local := net.IPv4(1, 2, 3, 4)
	ts := time.Date(2000, time.February, 14, 10, 30, 0, 0, time.FixedZone("test", -5))

	msg, err := newDiscoveryMessage(local, 42424, ts)
	if err != nil {
		t.Fatalf("newDiscoveryMessage: %v", err)
	}

	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 0, 251, 255, 255, 255, 208, 7, 30, 10,
		0, 1, 14, 2, 0, 0, 0, 0, 4, 3, 2, 1, 184, 165, 0, 0,
		36, 197, 0, 0, 0, 0, 6, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	got := msg.pack()
	if !bytes.Equal(got, want) {
		t.Fatalf("pack() = % x, want % x", got, want)
	}
}

func TestClassifyModel(t *testing.T) {
	name, kind, err := classifyModel(0x649B)
	if err != nil || name != "RM4 Pro" || kind != "Remote" {
		t.Fatalf("classifyModel(0x649B) = (%q, %q, %v)", name, kind, err)
	}

	name, kind, err = classifyModel(0x4E2A)
	if err != nil || name != "Licensed manufacturer" || kind != "Hvac" {
		t.Fatalf("classifyModel(0x4E2A) = (%q, %q, %v)", name, kind, err)
	}

	if _, _, err := classifyModel(0xFFFF); err == nil {
		t.Fatal("classifyModel(0xFFFF) succeeded, want UnknownModelError")
	}
}

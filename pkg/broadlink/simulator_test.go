package broadlink

import (
	"net"
	"testing"
	"time"
)

func TestSimulatorAnswersDiscovery(t *testing.T) {
	sim := NewSimulator(0x649B, [6]byte{1, 2, 3, 4, 5, 6}, "sim remote")

	local := net.IPv4(192, 168, 1, 10)
	msg, err := newDiscoveryMessage(local, 0, time.Now())
	if err != nil {
		t.Fatalf("newDiscoveryMessage: %v", err)
	}

	reply, err := sim.handle(msg.pack())
	if err != nil {
		t.Fatalf("handle(discovery): %v", err)
	}

	resp, err := parseDiscoveryResponse(reply)
	if err != nil {
		t.Fatalf("parseDiscoveryResponse: %v", err)
	}
	if resp.modelCode != 0x649B {
		t.Fatalf("modelCode = 0x%04X, want 0x649B", resp.modelCode)
	}
	if resp.name != "sim remote" {
		t.Fatalf("name = %q, want %q", resp.name, "sim remote")
	}
}

func TestSimulatorAuthenticatesAndAnswersCommands(t *testing.T) {
	sim := NewSimulator(0x649B, [6]byte{1, 2, 3, 4, 5, 6}, "sim remote")

	auth := newAuthenticationMessage("client")
	cmd := newCommandMessageWithCount(1, authPacketType, sim.ModelCode, sim.MAC, 0)
	packed, err := cmd.packWithPayload(auth.pack(), InitialKey)
	if err != nil {
		t.Fatalf("packWithPayload(auth): %v", err)
	}

	reply, err := sim.handle(packed)
	if err != nil {
		t.Fatalf("handle(auth): %v", err)
	}

	_, plaintext, err := unpackCommandWithPayload(reply, InitialKey)
	if err != nil {
		t.Fatalf("unpackCommandWithPayload(auth reply): %v", err)
	}
	authResp, err := parseAuthenticationResponse(plaintext)
	if err != nil {
		t.Fatalf("parseAuthenticationResponse: %v", err)
	}
	if authResp.key == InitialKey {
		t.Fatal("expected simulator to issue a rotated session key, got InitialKey")
	}
	if sim.key != authResp.key || sim.authID != authResp.authID {
		t.Fatalf("simulator did not retain its own issued session state")
	}

	dataMsg := newRemoteDataMessage(remoteCmdGetCode)
	dataCmd := newCommandMessageWithCount(2, remoteDataPacketType, sim.ModelCode, sim.MAC, authResp.authID)
	dataPacked, err := dataCmd.packWithPayload(dataMsg.packWithPayload(nil), authResp.key)
	if err != nil {
		t.Fatalf("packWithPayload(data): %v", err)
	}

	dataReply, err := sim.handle(dataPacked)
	if err != nil {
		t.Fatalf("handle(data): %v", err)
	}
	_, dataPlaintext, err := unpackCommandWithPayload(dataReply, authResp.key)
	if err != nil {
		t.Fatalf("unpackCommandWithPayload(data reply): %v", err)
	}
	code, err := unpackRemoteDataPayload(dataPlaintext)
	if err != nil {
		t.Fatalf("unpackRemoteDataPayload: %v", err)
	}
	if len(code) == 0 {
		t.Fatal("expected a non-empty canned code from the simulator")
	}
}

func TestSimulatorIgnoresWirelessJoin(t *testing.T) {
	sim := NewSimulator(0x649B, [6]byte{1, 2, 3, 4, 5, 6}, "sim remote")
	conn := WirelessWPA2("ssid", "password")
	packed, err := conn.pack()
	if err != nil {
		t.Fatalf("pack: %v", err)
	}

	reply, err := sim.handle(packed)
	if err != nil {
		t.Fatalf("handle(wireless join): %v", err)
	}
	if reply != nil {
		t.Fatalf("expected no reply to a wireless-join broadcast, got % x", reply)
	}
}

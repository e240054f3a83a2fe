package broadlink

import (
	"crypto/rand"
	"log/slog"
	"net"
)

// Simulator is a UDP listener that speaks enough of the wire protocol to
// exercise a Device end to end without physical hardware: it answers
// discovery, answers every authentication request with a fresh session key
// that replaces the previous one for all later commands (it keeps a single
// session, whatever the source address), and echoes a canned inner payload
// back through the command envelope for remote/HVAC data packets. It does not implement any
// device-class business logic — callers driving it get back fixed,
// self-consistent responses, not a faithful IR/RF or HVAC simulation.
//
// Simulator exists to give the CLI and integration tests something to talk
// to; it is not part of the wire protocol itself.
type Simulator struct {
	// ModelCode is the device identity this simulator answers discovery
	// probes with; it determines whether generated command replies look
	// like a Remote or an HVAC sub-payload.
	ModelCode uint16
	MAC       [6]byte
	Name      string
	Locked    bool

	authID uint32
	key    [16]byte
}

// NewSimulator constructs a Simulator impersonating a single device identity.
// It starts unauthenticated, using the universal InitialKey until its first
// successful authentication exchange.
func NewSimulator(modelCode uint16, mac [6]byte, name string) *Simulator {
	return &Simulator{
		ModelCode: modelCode,
		MAC:       mac,
		Name:      name,
		key:       InitialKey,
	}
}

// ListenAndServe binds addr (e.g. ":80") and answers datagrams until conn is
// closed by the caller cancelling done, or a non-timeout read error occurs.
func (s *Simulator) ListenAndServe(addr string, done <-chan struct{}) error {
	udpAddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return &TransportError{Op: "resolving listen address", Cause: err}
	}
	conn, err := net.ListenUDP("udp4", udpAddr)
	if err != nil {
		return &TransportError{Op: "binding listen socket", Cause: err}
	}
	defer conn.Close()

	go func() {
		<-done
		conn.Close()
	}()

	buf := make([]byte, recvBufferSize)
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-done:
				return nil
			default:
			}
			return &TransportError{Op: "receiving datagram", Cause: err}
		}

		reply, err := s.handle(buf[:n])
		if err != nil {
			slog.Debug("broadlinksim: discarding unhandled datagram", "from", from, "error", err)
			continue
		}
		if reply == nil {
			continue
		}
		if _, err := conn.WriteToUDP(reply, from); err != nil {
			slog.Warn("broadlinksim: failed to send reply", "to", from, "error", err)
		}
	}
}

// handle dispatches a single received datagram to the matching wire-format
// handler, returning the bytes to send back (nil for "no reply", matching
// the real device's fire-and-forget wireless-join behavior).
func (s *Simulator) handle(data []byte) ([]byte, error) {
	switch {
	case len(data) == discoveryMessageSize && data[0x26] == 0x06:
		return s.handleDiscovery(), nil
	case len(data) == wirelessConnectionMessageSize && data[0x26] == 0x14:
		return nil, nil
	case len(data) >= commandHeaderSize:
		return s.handleCommand(data)
	default:
		return nil, &ShortReplyError{Expected: commandHeaderSize, Got: len(data)}
	}
}

// handleDiscovery synthesizes a 128-byte discovery response describing this
// simulator's configured identity.
func (s *Simulator) handleDiscovery() []byte {
	buf := make([]byte, discoveryResponseSize)
	putU16LE(buf[0x34:0x36], s.ModelCode)
	macRev := reverseMAC(s.MAC)
	copy(buf[0x3A:0x40], macRev[:])
	name := []byte(s.Name)
	if len(name) > 62 {
		name = name[:62]
	}
	copy(buf[0x40:0x7E], name)
	if s.Locked {
		buf[0x7F] = 1
	}
	return buf
}

// handleCommand decrypts an outer command envelope under this simulator's
// current key and dispatches on packet type.
func (s *Simulator) handleCommand(data []byte) ([]byte, error) {
	header, payload, err := unpackCommandWithPayload(data, s.key)
	if err != nil {
		return nil, err
	}

	switch header.packetType {
	case authPacketType:
		return s.handleAuth(header)
	case remoteDataPacketType: // == hvacDataPacketType; both device classes share 0x006A
		return s.handleData(header, payload)
	default:
		return nil, &DecodeError{Field: "packetType"}
	}
}

// handleAuth issues a fresh, random session auth ID and key, stores them as
// this simulator's key for subsequent commands, and replies with the
// authentication response payload encrypted under the key the request
// itself used (InitialKey, since authentication always precedes key
// rotation).
func (s *Simulator) handleAuth(header *commandMessage) ([]byte, error) {
	var authIDBytes [4]byte
	if _, err := rand.Read(authIDBytes[:]); err != nil {
		return nil, &CryptoFailureError{Cause: err}
	}
	var newKey [16]byte
	if _, err := rand.Read(newKey[:]); err != nil {
		return nil, &CryptoFailureError{Cause: err}
	}
	newAuthID := getU32LE(authIDBytes[:])

	respPayload := make([]byte, authenticationResponseSize)
	putU32LE(respPayload[0x00:0x04], newAuthID)
	copy(respPayload[0x04:0x14], newKey[:])

	reply := newCommandMessageWithCount(header.count, authPacketType, s.ModelCode, s.MAC, 0)
	packed, err := reply.packWithPayload(respPayload, InitialKey)
	if err != nil {
		return nil, err
	}

	s.authID = newAuthID
	s.key = newKey
	slog.Debug("broadlinksim: issued session key", "auth_id", newAuthID)
	return packed, nil
}

// handleData answers a remote/HVAC data packet with a small canned reply:
// for a Remote identity, a short fixed "code" payload whose byte 0 is 1, so
// it also reads as a "locked" RF-frequency check reply; for an HVAC identity,
// a fixed AirCondState. The inner sub-payload's own command byte is not
// inspected beyond deciding which canned shape to send, matching the real
// device's documented tolerance for a reply echoing a different command
// than the one the client sent.
func (s *Simulator) handleData(header *commandMessage, _ []byte) ([]byte, error) {
	var innerPayload []byte
	_, friendlyType, err := classifyModel(s.ModelCode)
	if err != nil {
		return nil, err
	}

	if friendlyType == "Remote" {
		innerPayload = newRemoteDataMessage(remoteCmdGetCode).packWithPayload([]byte{0x01, 0xDE, 0xAD, 0xBE, 0xEF})
	} else {
		state := &AirCondState{Mode: HvacModeCool, FanSpeed: HvacSpeedAuto}
		_ = state.SetTargetTemp(24)
		innerPayload = newHvacDataMessage(hvacCmdGetState).packWithPayload(state.pack())
	}

	reply := newCommandMessageWithCount(header.count, remoteDataPacketType, s.ModelCode, s.MAC, s.authID)
	return reply.packWithPayload(innerPayload, s.key)
}

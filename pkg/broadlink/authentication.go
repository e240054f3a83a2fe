package broadlink

const (
	authenticationMessageSize  = 0x50
	authenticationResponseSize = 0x14
	authPacketType             = 0x0065
)

// authenticationID is the fixed client identifier sent with every
// authentication request. Any stable 16-byte token works; real devices do
// not appear to validate it.
var authenticationID = [16]byte{
	0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31,
	0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31, 0x31,
}

// authenticationMessage is the handshake request a client sends once to
// derive a per-session auth ID and AES key.
type authenticationMessage struct {
	name string
}

func newAuthenticationMessage(name string) *authenticationMessage {
	return &authenticationMessage{name: name}
}

// pack serializes the authentication request. The device name is NUL-padded
// and truncated to 32 bytes.
func (a *authenticationMessage) pack() []byte {
	buf := make([]byte, authenticationMessageSize)
	copy(buf[0x04:0x14], authenticationID[:])
	buf[0x1E] = 1 // magic0
	buf[0x2D] = 1 // magic1

	name := []byte(a.name)
	if len(name) > 32 {
		name = name[:32]
	}
	copy(buf[0x30:0x50], name)
	return buf
}

// authenticationResponse carries the per-session auth ID and AES key a
// device issues in reply to an authenticationMessage.
type authenticationResponse struct {
	authID uint32
	key    [16]byte
}

func parseAuthenticationResponse(data []byte) (*authenticationResponse, error) {
	if len(data) < authenticationResponseSize {
		return nil, &ShortReplyError{Expected: authenticationResponseSize, Got: len(data)}
	}
	resp := &authenticationResponse{
		authID: getU32LE(data[0x00:0x04]),
	}
	copy(resp.key[:], data[0x04:0x14])
	return resp, nil
}

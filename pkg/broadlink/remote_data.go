package broadlink

// remoteDataCommand enumerates the sub-commands exchanged inside the Remote
// device's command envelope.
type remoteDataCommand uint8

const (
	remoteCmdSendCode           remoteDataCommand = 0x02
	remoteCmdStartLearningIR    remoteDataCommand = 0x03
	remoteCmdStartLearningRF    remoteDataCommand = 0x1B
	remoteCmdGetCode            remoteDataCommand = 0x04
	remoteCmdSweepRfFrequencies remoteDataCommand = 0x19
	remoteCmdStopRfSweep        remoteDataCommand = 0x1E
	remoteCmdCheckFrequency     remoteDataCommand = 0x1A
)

const remoteDataHeaderSize = 0x06
const remoteDataPacketType = 0x006A

// remoteDataMessage is the Remote device's inner sub-payload: a small header
// naming which sub-command is being invoked, followed by a command-specific
// payload (an IR/RF code, or nothing for poll-style commands).
type remoteDataMessage struct {
	command remoteDataCommand
}

func newRemoteDataMessage(cmd remoteDataCommand) *remoteDataMessage {
	return &remoteDataMessage{command: cmd}
}

// packWithPayload serializes the header followed by payload. payloadLength
// records len(payload)+4, reserving room for a 4-byte stop tail the device
// expects after the body; bytes 0x03..0x06 of the header are reserved and
// left zero.
func (m *remoteDataMessage) packWithPayload(payload []byte) []byte {
	buf := make([]byte, remoteDataHeaderSize+len(payload))
	putU16LE(buf[0x00:0x02], uint16(len(payload)+4))
	buf[0x02] = byte(m.command)
	copy(buf[remoteDataHeaderSize:], payload)
	return buf
}

// unpackRemoteDataPayload extracts the inner payload from a decrypted
// remoteDataMessage buffer. A buffer shorter than the header is treated as an
// empty reply (devices reply this way to poll-style commands with nothing to
// report yet) rather than an error.
func unpackRemoteDataPayload(data []byte) ([]byte, error) {
	if len(data) < remoteDataHeaderSize {
		return nil, nil
	}
	payloadLength := int(getU16LE(data[0x00:0x02]))
	end := remoteDataHeaderSize + payloadLength - 4
	if end < remoteDataHeaderSize {
		end = remoteDataHeaderSize
	}
	if end > len(data) {
		end = len(data)
	}
	return data[remoteDataHeaderSize:end], nil
}

package broadlink

import (
	"crypto/rand"
	"encoding/binary"
)

// commandHeaderSize is the size of the outer command envelope's fixed
// header, before the encrypted payload.
const commandHeaderSize = 0x38

// magicHeader begins every outer command envelope.
var magicHeader = [8]byte{0x5A, 0xA5, 0xAA, 0x55, 0x5A, 0xA5, 0xAA, 0x55}

// commandMessage is the outer envelope wrapping every authenticated command
// sent to a device: a fixed header carrying routing/auth metadata and an
// envelope checksum, followed by an AES-128-CBC encrypted inner payload whose
// own checksum is recorded in the header before encryption.
type commandMessage struct {
	deviceType      uint16
	packetType      uint16
	count           uint16 // high bit always set
	macReversed     [6]byte
	authID          uint32
	checksum        uint16 // over header+ciphertext, this field zeroed
	payloadChecksum uint16 // over the cleartext payload, computed before encryption
}

// newCommandMessage builds a commandMessage with a random count, as a real
// client does for every outgoing command.
func newCommandMessage(packetType, deviceModelCode uint16, mac [6]byte, authID uint32) (*commandMessage, error) {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return nil, &CryptoFailureError{Cause: err}
	}
	count := binary.LittleEndian.Uint16(buf[:])
	return newCommandMessageWithCount(count, packetType, deviceModelCode, mac, authID), nil
}

// newCommandMessageWithCount builds a commandMessage with an explicit count,
// used by tests that need deterministic output.
func newCommandMessageWithCount(count, packetType, deviceModelCode uint16, mac [6]byte, authID uint32) *commandMessage {
	return &commandMessage{
		deviceType:  deviceModelCode,
		packetType:  packetType,
		count:       count | 0x8000,
		macReversed: reverseMAC(mac),
		authID:      authID,
	}
}

// packHeader serializes the fixed header. checksum and payloadChecksum are
// written as currently held on the struct; callers are responsible for
// sequencing field updates before calling this.
func (c *commandMessage) packHeader() []byte {
	buf := make([]byte, commandHeaderSize)
	copy(buf[0x00:0x08], magicHeader[:])
	putU16LE(buf[0x20:0x22], c.checksum)
	putU16LE(buf[0x24:0x26], c.deviceType)
	putU16LE(buf[0x26:0x28], c.packetType)
	putU16LE(buf[0x28:0x2A], c.count)
	copy(buf[0x2A:0x30], c.macReversed[:])
	putU32LE(buf[0x30:0x34], c.authID)
	putU16LE(buf[0x34:0x36], c.payloadChecksum)
	return buf
}

// packWithPayload encrypts payload under key and the fixed InitialVector,
// computing both checksums in the order the wire format requires: the
// payload checksum is taken over the cleartext before encryption, and the
// envelope checksum is taken over the header-with-zeroed-envelope-checksum
// concatenated with the ciphertext.
func (c *commandMessage) packWithPayload(payload []byte, key [16]byte) ([]byte, error) {
	c.payloadChecksum = checksum(payload)

	ciphertext, err := encryptZeroPad(key, InitialVector, payload)
	if err != nil {
		return nil, err
	}

	c.checksum = 0
	header := c.packHeader()
	full := append(append([]byte{}, header...), ciphertext...)
	c.checksum = checksum(full)

	out := c.packHeader()
	out = append(out, ciphertext...)
	return out, nil
}

// unpackCommandWithPayload validates and decrypts a received envelope,
// returning the decoded header and the raw (still zero-padding-tolerant)
// decrypted payload bytes.
func unpackCommandWithPayload(data []byte, key [16]byte) (*commandMessage, []byte, error) {
	if len(data) < commandHeaderSize {
		return nil, nil, &ShortReplyError{Expected: commandHeaderSize, Got: len(data)}
	}

	header := make([]byte, commandHeaderSize)
	copy(header, data[:commandHeaderSize])

	c := &commandMessage{
		checksum:        getU16LE(header[0x20:0x22]),
		deviceType:      getU16LE(header[0x24:0x26]),
		packetType:      getU16LE(header[0x26:0x28]),
		count:           getU16LE(header[0x28:0x2A]),
		payloadChecksum: getU16LE(header[0x34:0x36]),
	}
	copy(c.macReversed[:], header[0x2A:0x30])
	c.authID = getU32LE(header[0x30:0x34])

	verifyBuf := make([]byte, len(data))
	copy(verifyBuf, data)
	putU16LE(verifyBuf[0x20:0x22], 0)
	if got := checksum(verifyBuf); got != c.checksum {
		return nil, nil, &ChecksumMismatchError{Kind: ChecksumEnvelope, Expected: c.checksum, Got: got}
	}

	plaintext, err := decryptBlocks(key, InitialVector, data[commandHeaderSize:])
	if err != nil {
		return nil, nil, err
	}
	return c, plaintext, nil
}

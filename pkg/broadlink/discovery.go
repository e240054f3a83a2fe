package broadlink

import (
	"fmt"
	"net"
	"time"
)

// remoteModels maps the model codes of Remote (IR/RF blaster) devices to
// their marketing name. Matching against this table (and hvacModels below) is
// how a freshly discovered device is classified into a Device variant.
var remoteModels = map[uint16]string{
	0x520B: "RM4 Pro",
	0x5213: "RM4 Pro",
	0x5218: "RM4C Pro",
	0x6026: "RM4 Pro",
	0x6184: "RMC4 Pro",
	0x61A2: "RM4 Pro",
	0x649B: "RM4 Pro",
	0x653C: "RM4 Pro",
}

// hvacModels maps the model codes of HVAC controller devices to their
// marketing name.
var hvacModels = map[uint16]string{
	0x4E2A: "Licensed manufacturer",
}

const discoveryMessageSize = 48
const discoveryResponseSize = 128

// discoveryBindPort is the local port discovery listens for replies on. The
// probe message names it explicitly (some firmware replies to the named port
// rather than the datagram's source port), so the socket must actually be
// bound to it.
const discoveryBindPort = 42424

// discoveryMessage is the 48-byte broadcast/unicast probe a client sends to
// find devices on the network. Its fields beyond the timestamp and sender
// address are unused by any known device firmware but are populated to match
// what real clients send.
type discoveryMessage struct {
	gmtOffsetSeconds int32
	year             uint16
	minute           uint8
	hour             uint8
	yearWithoutCent  uint8
	dayOfWeek        uint8 // 1=Monday ... 7=Sunday
	dayOfMonth       uint8
	month            uint8
	localIP          [4]byte // already reversed (wire order)
	localPort        uint16
	checksum         uint16
}

// newDiscoveryMessage builds a discoveryMessage describing localAddr and the
// local port the client is listening for replies on, timestamped with t.
func newDiscoveryMessage(localAddr net.IP, localPort uint16, t time.Time) (*discoveryMessage, error) {
	v4 := localAddr.To4()
	if v4 == nil {
		return nil, ErrNotIPv4
	}
	_, offsetSeconds := t.Zone()

	msg := &discoveryMessage{
		gmtOffsetSeconds: int32(offsetSeconds),
		year:             uint16(t.Year()),
		minute:           uint8(t.Minute()),
		hour:             uint8(t.Hour()),
		yearWithoutCent:  uint8(t.Year() % 100),
		dayOfWeek:        weekdayMondayOne(t.Weekday()),
		dayOfMonth:       uint8(t.Day()),
		month:            uint8(t.Month()),
		localIP:          [4]byte{v4[3], v4[2], v4[1], v4[0]},
		localPort:        localPort,
	}
	msg.checksum = checksum(msg.packUnchecksummed())
	return msg, nil
}

// weekdayMondayOne converts Go's Sunday=0 weekday numbering to the
// protocol's Monday=1 .. Sunday=7 numbering.
func weekdayMondayOne(w time.Weekday) uint8 {
	if w == time.Sunday {
		return 7
	}
	return uint8(w)
}

// packUnchecksummed serializes the message with the checksum field left
// zero, which is what the checksum is itself computed over.
func (m *discoveryMessage) packUnchecksummed() []byte {
	buf := make([]byte, discoveryMessageSize)
	putI32LE(buf[0x08:0x0C], m.gmtOffsetSeconds)
	putU16LE(buf[0x0C:0x0E], m.year)
	buf[0x0E] = m.minute
	buf[0x0F] = m.hour
	buf[0x10] = m.yearWithoutCent
	buf[0x11] = m.dayOfWeek
	buf[0x12] = m.dayOfMonth
	buf[0x13] = m.month
	copy(buf[0x18:0x1C], m.localIP[:])
	putU16LE(buf[0x1C:0x1E], m.localPort)
	buf[0x26] = 0x06 // magic constant
	return buf
}

// pack serializes the full discovery message, including the checksum.
func (m *discoveryMessage) pack() []byte {
	buf := m.packUnchecksummed()
	putU16LE(buf[0x20:0x22], m.checksum)
	return buf
}

// discoveryResponse is the 128-byte reply a device sends in answer to a
// discoveryMessage (or that a device may broadcast on boot).
type discoveryResponse struct {
	modelCode uint16
	mac       [6]byte // reversed on the wire
	name      string
	isLocked  bool
}

// parseDiscoveryResponse decodes a raw UDP datagram into a discoveryResponse.
// It does not classify the device into a Remote/HVAC variant; that is the
// caller's job once the model code is known.
func parseDiscoveryResponse(data []byte) (*discoveryResponse, error) {
	if len(data) != discoveryResponseSize {
		return nil, &ShortReplyError{Expected: discoveryResponseSize, Got: len(data)}
	}

	var macReversed [6]byte
	copy(macReversed[:], data[0x3A:0x40])

	rawName := data[0x40:0x7E]
	end := len(rawName)
	for end > 0 && rawName[end-1] == 0 {
		end--
	}

	return &discoveryResponse{
		modelCode: getU16LE(data[0x34:0x36]),
		mac:       reverseMAC(macReversed),
		name:      string(rawName[:end]),
		isLocked:  data[0x7F] != 0,
	}, nil
}

// classifyModel returns the friendly model name and type ("Remote"/"Hvac")
// for a model code, or an *UnknownModelError if the code is not in either
// table.
func classifyModel(code uint16) (friendlyModel, friendlyType string, err error) {
	if name, ok := remoteModels[code]; ok {
		return name, "Remote", nil
	}
	if name, ok := hvacModels[code]; ok {
		return name, "Hvac", nil
	}
	return "", "", &UnknownModelError{Code: code}
}

func (r *discoveryResponse) String() string {
	return fmt.Sprintf("discoveryResponse{model=0x%04X, mac=%x, name=%q, locked=%v}", r.modelCode, r.mac, r.name, r.isLocked)
}

package broadlink

// hvacDataCommand enumerates the sub-commands exchanged inside the HVAC
// device's command envelope.
type hvacDataCommand uint8

const (
	hvacCmdSetState  hvacDataCommand = 0
	hvacCmdGetState  hvacDataCommand = 1
	hvacCmdGetAcInfo hvacDataCommand = 2
)

// HvacMode selects the air conditioner's operating mode.
type HvacMode uint8

const (
	HvacModeAuto HvacMode = 0
	HvacModeCool HvacMode = 1
	HvacModeDry  HvacMode = 2
	HvacModeHeat HvacMode = 3
	HvacModeFan  HvacMode = 4
)

// HvacSpeed selects the fan speed.
type HvacSpeed uint8

const (
	HvacSpeedNone HvacSpeed = 0
	HvacSpeedHigh HvacSpeed = 1
	HvacSpeedMid  HvacSpeed = 2
	HvacSpeedLow  HvacSpeed = 3
	HvacSpeedAuto HvacSpeed = 5
)

// HvacPreset selects a named operating preset.
type HvacPreset uint8

const (
	HvacPresetNormal HvacPreset = 0
	HvacPresetTurbo  HvacPreset = 1
	HvacPresetMute   HvacPreset = 2
)

// HvacSwHoriz selects the horizontal louver position.
type HvacSwHoriz uint8

const (
	HvacSwHorizOn            HvacSwHoriz = 0
	HvacSwHorizOff           HvacSwHoriz = 1
	HvacSwHorizLeftFix       HvacSwHoriz = 2
	HvacSwHorizRightFlap     HvacSwHoriz = 5
	HvacSwHorizRightFix      HvacSwHoriz = 6
	HvacSwHorizLeftRightFix  HvacSwHoriz = 7
)

// HvacSwVert selects the vertical louver position.
type HvacSwVert uint8

const (
	HvacSwVertOn   HvacSwVert = 0
	HvacSwVertPos1 HvacSwVert = 1
	HvacSwVertPos2 HvacSwVert = 2
	HvacSwVertPos3 HvacSwVert = 3
	HvacSwVertPos4 HvacSwVert = 4
	HvacSwVertPos5 HvacSwVert = 5
	HvacSwVertOff  HvacSwVert = 7
)

const airCondStateSize = 13
const airCondInfoSize = 22

// airCondStateMagic1 is a fixed value the protocol requires in every state
// update; its meaning is undocumented by the vendor.
const airCondStateMagic1 = 0x0F

// AirCondState is the desired air conditioner configuration sent with a
// set-state command.
type AirCondState struct {
	Power         bool
	TargetTempInt uint8 // actual target temp is TargetTempInt + 8
	SwingV        HvacSwVert
	SwingH        HvacSwHoriz
	Mode          HvacMode
	FanSpeed      HvacSpeed
	Preset        HvacPreset
	Sleep         bool
	IFeel         bool
	Health        bool
	Clean         bool
	Display       bool
	Mildew        bool
}

// TargetTemp returns the target temperature in degrees Celsius.
func (s *AirCondState) TargetTemp() float32 {
	return float32(s.TargetTempInt) + 8.0
}

// SetTargetTemp sets the target temperature, which must fall within the
// device's supported range of 16.0 to 32.0 degrees Celsius inclusive.
func (s *AirCondState) SetTargetTemp(celsius float32) error {
	if celsius < 16.0 || celsius > 32.0 {
		return &InvalidTemperatureError{Celsius: celsius}
	}
	s.TargetTempInt = uint8(celsius) - 8
	return nil
}

// pack serializes the state into its 13-byte MSB0 bit-packed wire form,
// setting the required magic1 field in the process.
func (s *AirCondState) pack() []byte {
	buf := make([]byte, airCondStateSize)

	setBitsMSB0(buf, 0, 5, uint64(s.TargetTempInt))
	setBitsMSB0(buf, 5, 3, uint64(s.SwingV))
	setBitsMSB0(buf, 8, 3, uint64(s.SwingH))
	setBitsMSB0(buf, 20, 4, airCondStateMagic1)
	setBitsMSB0(buf, 24, 3, uint64(s.FanSpeed))
	setBitsMSB0(buf, 38, 2, uint64(s.Preset))
	setBitsMSB0(buf, 40, 3, uint64(s.Mode))
	setBitMSB0(buf, 44, s.IFeel)
	setBitMSB0(buf, 45, s.Sleep)
	setBitMSB0(buf, 66, s.Power)
	setBitMSB0(buf, 69, s.Clean)
	setBitMSB0(buf, 70, s.Health)
	setBitMSB0(buf, 83, s.Display)
	setBitMSB0(buf, 84, s.Mildew)

	return buf
}

// unpackAirCondState decodes a 13-byte wire buffer into an AirCondState.
func unpackAirCondState(buf []byte) (*AirCondState, error) {
	if len(buf) < airCondStateSize {
		return nil, &ShortReplyError{Expected: airCondStateSize, Got: len(buf)}
	}
	return &AirCondState{
		TargetTempInt: uint8(getBitsMSB0(buf, 0, 5)),
		SwingV:        HvacSwVert(getBitsMSB0(buf, 5, 3)),
		SwingH:        HvacSwHoriz(getBitsMSB0(buf, 8, 3)),
		FanSpeed:      HvacSpeed(getBitsMSB0(buf, 24, 3)),
		Preset:        HvacPreset(getBitsMSB0(buf, 38, 2)),
		Mode:          HvacMode(getBitsMSB0(buf, 40, 3)),
		IFeel:         getBitMSB0(buf, 44),
		Sleep:         getBitMSB0(buf, 45),
		Power:         getBitMSB0(buf, 66),
		Clean:         getBitMSB0(buf, 69),
		Health:        getBitMSB0(buf, 70),
		Display:       getBitMSB0(buf, 83),
		Mildew:        getBitMSB0(buf, 84),
	}, nil
}

// AirCondInfo is the air conditioner's reported status, returned by a
// get-info command.
type AirCondInfo struct {
	Power             bool
	AmbientTempInt    uint8
	AmbientTempFract  uint8
}

// AmbientTemp returns the ambient temperature in degrees Celsius.
func (i *AirCondInfo) AmbientTemp() float32 {
	return float32(i.AmbientTempInt) + float32(i.AmbientTempFract)/10.0
}

// unpackAirCondInfo decodes a 22-byte wire buffer into an AirCondInfo.
func unpackAirCondInfo(buf []byte) (*AirCondInfo, error) {
	if len(buf) < airCondInfoSize {
		return nil, &ShortReplyError{Expected: airCondInfoSize, Got: len(buf)}
	}
	return &AirCondInfo{
		Power:            getBitMSB0(buf, 15),
		AmbientTempInt:   uint8(getBitsMSB0(buf, 43, 5)),
		AmbientTempFract: uint8(getBitsMSB0(buf, 171, 5)),
	}, nil
}

const hvacDataHeaderSize = 0x0C
const hvacDataPacketType = 0x006A

// hvacDataMessage is the HVAC device's inner sub-payload. Unlike the Remote
// sub-codec, it uses its own CRC-16/MODBUS checksum rather than the
// envelope's additive checksum.
type hvacDataMessage struct {
	command hvacDataCommand
}

func newHvacDataMessage(cmd hvacDataCommand) *hvacDataMessage {
	return &hvacDataMessage{command: cmd}
}

// packWithPayload serializes the header and payload, then appends a
// CRC-16/MODBUS checksum computed over everything from byte 2 onward
// (i.e. excluding the leading payload_length field itself).
func (m *hvacDataMessage) packWithPayload(payload []byte) []byte {
	dataLength := 2 + len(payload)
	payloadLength := dataLength + 10

	buf := make([]byte, hvacDataHeaderSize+len(payload))
	putU16LE(buf[0x00:0x02], uint16(payloadLength))
	putU16LE(buf[0x02:0x04], 0x00BB)
	putU16LE(buf[0x04:0x06], 0x8006)
	putU16LE(buf[0x06:0x08], 0x0000)
	putU16LE(buf[0x08:0x0A], uint16(dataLength))
	putU16LE(buf[0x0A:0x0C], 0x0100|((uint16(m.command)<<4)|1))
	copy(buf[hvacDataHeaderSize:], payload)

	crc := crc16Modbus(buf[0x02:])
	out := make([]byte, len(buf)+2)
	copy(out, buf)
	putU16LE(out[len(buf):], crc)
	return out
}

// unpackHvacDataPayload validates the CRC-16/MODBUS checksum and declared
// lengths of a decrypted hvacDataMessage buffer, returning the inner
// payload with the 2-byte command echo stripped.
func unpackHvacDataPayload(data []byte) ([]byte, error) {
	if len(data) < hvacDataHeaderSize+2 {
		return nil, &ShortReplyError{Expected: hvacDataHeaderSize + 2, Got: len(data)}
	}

	// The decrypted buffer may carry trailing zero padding from the AES
	// envelope, so it only has to be at least as long as declared.
	payloadLength := int(getU16LE(data[0x00:0x02]))
	realSize := len(data) - 2
	if payloadLength < hvacDataHeaderSize || realSize < payloadLength {
		return nil, &DecodeError{Field: "hvac payload_length", Cause: &ShortReplyError{Expected: payloadLength, Got: realSize}}
	}

	want := getU16LE(data[payloadLength : payloadLength+2])
	got := crc16Modbus(data[0x02:payloadLength])
	if got != want {
		return nil, &ChecksumMismatchError{Kind: ChecksumHVAC, Expected: want, Got: got}
	}

	dataLength := int(getU16LE(data[0x08:0x0A]))
	innerLen := dataLength - 2
	if innerLen < 0 {
		innerLen = 0
	}
	end := hvacDataHeaderSize + innerLen
	if end > len(data) {
		end = len(data)
	}
	return data[hvacDataHeaderSize:end], nil
}

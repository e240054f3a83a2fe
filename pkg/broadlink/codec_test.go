package broadlink

import "testing"

func TestChecksumSeed(t *testing.T) {
	if got := checksum(nil); got != 0xBEAF {
		t.Fatalf("checksum(nil) = 0x%04X, want 0xBEAF", got)
	}
	if got := checksum([]byte{0x01}); got != 0xBEB0 {
		t.Fatalf("checksum([0x01]) = 0x%04X, want 0xBEB0", got)
	}
	if got := checksum([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}); got != 0xBEDC {
		t.Fatalf("checksum(0..9) = 0x%04X, want 0xBEDC", got)
	}
}

func TestReverseMACRoundTrip(t *testing.T) {
	mac := [6]byte{1, 2, 3, 4, 5, 6}
	rev := reverseMAC(mac)
	want := [6]byte{6, 5, 4, 3, 2, 1}
	if rev != want {
		t.Fatalf("reverseMAC(%v) = %v, want %v", mac, rev, want)
	}
	if reverseMAC(rev) != mac {
		t.Fatalf("reverseMAC is not its own inverse for %v", mac)
	}
}

func TestCRC16ModbusKnownVector(t *testing.T) {
	// "123456789" is the standard CRC-16/MODBUS check-value vector.
	got := crc16Modbus([]byte("123456789"))
	const want = 0x4B37
	if got != want {
		t.Fatalf("crc16Modbus(123456789) = 0x%04X, want 0x%04X", got, want)
	}
}

func TestZeroPad(t *testing.T) {
	in := []byte{1, 2, 3}
	out := zeroPad(in, 16)
	if len(out) != 16 {
		t.Fatalf("zeroPad length = %d, want 16", len(out))
	}
	for i, b := range out[3:] {
		if b != 0 {
			t.Fatalf("zeroPad[%d] = %d, want 0", i+3, b)
		}
	}

	aligned := make([]byte, 16)
	if got := zeroPad(aligned, 16); len(got) != 16 {
		t.Fatalf("zeroPad of already-aligned data changed length to %d", len(got))
	}
}

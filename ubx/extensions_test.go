package ubx

import (
	"encoding/binary"
	"testing"
)

func TestNAVPVTDecode(t *testing.T) {
	payload := make([]byte, 92)
	le := binary.LittleEndian
	le.PutUint32(payload[0:4], 123456)     // iTOW
	le.PutUint16(payload[4:6], 2026)       // year
	payload[6] = 7                         // month
	payload[7] = 31                        // day
	payload[20] = 3                        // fixType
	payload[23] = 12                       // numSV
	le.PutUint32(payload[24:28], uint32(int32(-12345))) // lon

	frame, err := Encode(ClassNAV, IDNavPVT, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p := NewParser()
	var got *Message
	for _, b := range frame {
		if msg, _ := p.FeedByte(b); msg != nil {
			got = msg
		}
	}
	if got == nil {
		t.Fatal("parser never produced a message")
	}
	pvt, ok := got.Body.(*NAVPVT)
	if !ok {
		t.Fatalf("decoded body is %T, want *NAVPVT", got.Body)
	}
	if pvt.Year != 2026 || pvt.Month != 7 || pvt.Day != 31 {
		t.Errorf("date = %d-%02d-%02d, want 2026-07-31", pvt.Year, pvt.Month, pvt.Day)
	}
	if pvt.NumSV != 12 {
		t.Errorf("NumSV = %d, want 12", pvt.NumSV)
	}
	if pvt.LonDegE7 != -12345 {
		t.Errorf("LonDegE7 = %d, want -12345", pvt.LonDegE7)
	}
}

func TestRXMRAWXDecode(t *testing.T) {
	payload := make([]byte, 16+32)
	payload[11] = 1 // numMeas
	payload[13] = 1 // version
	le := binary.LittleEndian
	le.PutUint16(payload[8:10], 2100) // week
	block := payload[16:48]
	block[20] = 1  // gnssID
	block[21] = 14 // svID
	le.PutUint16(block[24:26], 500) // lockTime

	frame, err := Encode(ClassRXM, IDRxmRAWX, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p := NewParser()
	var got *Message
	for _, b := range frame {
		if msg, _ := p.FeedByte(b); msg != nil {
			got = msg
		}
	}
	if got == nil {
		t.Fatal("parser never produced a message")
	}
	rawx, ok := got.Body.(*RXMRAWX)
	if !ok {
		t.Fatalf("decoded body is %T, want *RXMRAWX", got.Body)
	}
	if rawx.Week != 2100 {
		t.Errorf("Week = %d, want 2100", rawx.Week)
	}
	if len(rawx.Measurements) != 1 {
		t.Fatalf("Measurements = %+v, want exactly one", rawx.Measurements)
	}
	m := rawx.Measurements[0]
	if m.GnssID != 1 || m.SvID != 14 || m.LockTime != 500 {
		t.Errorf("measurement = %+v, want GnssID=1 SvID=14 LockTime=500", m)
	}
}

func TestMONVERDecode(t *testing.T) {
	payload := make([]byte, 40)
	copy(payload[0:30], "ROM CORE 3.01\x00")
	copy(payload[30:40], "00080000\x00")

	frame, err := Encode(ClassMON, IDMonVER, payload)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	p := NewParser()
	var got *Message
	for _, b := range frame {
		if msg, _ := p.FeedByte(b); msg != nil {
			got = msg
		}
	}
	if got == nil {
		t.Fatal("parser never produced a message")
	}
	ver, ok := got.Body.(*MONVER)
	if !ok {
		t.Fatalf("decoded body is %T, want *MONVER", got.Body)
	}
	if ver.SoftwareVersion != "ROM CORE 3.01" {
		t.Errorf("SoftwareVersion = %q, want %q", ver.SoftwareVersion, "ROM CORE 3.01")
	}
	if ver.HardwareVersion != "00080000" {
		t.Errorf("HardwareVersion = %q, want %q", ver.HardwareVersion, "00080000")
	}
}

package ubx

import (
	"encoding/binary"
	"strings"
)

// MONVER is the UBX-MON-VER payload: firmware and hardware version
// strings, each a NUL-terminated, fixed-width field on the wire.
type MONVER struct {
	SoftwareVersion string
	HardwareVersion string
	Extensions      []string
}

func decodeMONVER(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 40, "MON-VER"); err != nil {
		return nil, err
	}
	msg := &MONVER{
		SoftwareVersion: cString(payload[0:30]),
		HardwareVersion: cString(payload[30:40]),
	}
	for offset := 40; offset+30 <= len(payload); offset += 30 {
		msg.Extensions = append(msg.Extensions, cString(payload[offset:offset+30]))
	}
	return msg, nil
}

func cString(b []byte) string {
	if i := strings.IndexByte(string(b), 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

// MONHW is the UBX-MON-HW payload's hardware status subset this module
// cares about.
type MONHW struct {
	Noise    uint16
	AGCCnt   uint16
	AntStatus byte
	AntPower  byte
	Flags     byte
	JamInd    byte
}

func decodeMONHW(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 60, "MON-HW"); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	return &MONHW{
		Noise:     le.Uint16(payload[16:18]),
		AGCCnt:    le.Uint16(payload[18:20]),
		AntStatus: payload[20],
		AntPower:  payload[21],
		Flags:     payload[22],
		JamInd:    payload[45],
	}, nil
}

func init() {
	register(ClassMON, IDMonVER, decodeMONVER)
	register(ClassMON, IDMonHW, decodeMONHW)
}

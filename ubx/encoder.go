package ubx

import (
	"fmt"

	"github.com/goblimey/go-gnss-codec/crc"
)

// Encode renders class, id and payload as a complete UBX wire frame:
// sync bytes, class, id, little-endian length and the Fletcher-8 checksum.
func Encode(class, id byte, payload []byte) ([]byte, error) {
	if len(payload) > maxPayloadLength {
		return nil, fmt.Errorf("ubx: payload of %d bytes exceeds the %d-byte maximum", len(payload), maxPayloadLength)
	}

	covered := make([]byte, 0, 4+len(payload))
	covered = append(covered, class, id, byte(len(payload)), byte(len(payload)>>8))
	covered = append(covered, payload...)

	a, b := crc.Fletcher8(covered)

	frame := make([]byte, 0, 2+len(covered)+2)
	frame = append(frame, Sync1, Sync2)
	frame = append(frame, covered...)
	frame = append(frame, a, b)
	return frame, nil
}

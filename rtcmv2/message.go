package rtcmv2

import "fmt"

// Message is a decoded RTCM v2 packet, carrying both the typed, readable
// form (when the packet type is registered) and the original bytes.
type Message struct {
	Header
	RawData  []byte
	Readable interface{}
}

// ChecksumError is raised when a fully-framed RTCM v2 word fails its
// 6-bit parity check. It carries the accumulated packet bytes so a caller
// (or the autodetecting parser) can inspect what was rejected.
type ChecksumError struct {
	Packet []byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("rtcmv2: parity check failed on a %d-byte packet", len(e.Packet))
}

func decodeBody(header Header, body []byte) (interface{}, error) {
	switch header.PacketType {
	case 1:
		return decodeFullCorrections(header, body)
	case 3:
		return decodeReferenceStation(header, body)
	default:
		return nil, nil
	}
}

package rtcmv3

import (
	"fmt"

	"github.com/goblimey/go-gnss-codec/bitreader"
	"github.com/goblimey/go-gnss-codec/crc"
)

// Encode renders body as a complete RTCM v3 wire frame: preamble, 10-bit
// payload length, payload and CRC-24Q. body must be one of the types
// returned by the Parser (a registered message body or an *UnknownBody).
func Encode(body interface{}) ([]byte, error) {
	var payload []byte

	if unknown, ok := body.(*UnknownBody); ok {
		payload = unknown.Payload
	} else if bw, ok := body.(bodyWriter); ok {
		w := bitreader.NewWriter()
		if err := w.WriteU(12, uint32(bw.messageType())); err != nil {
			return nil, err
		}
		if err := bw.writeBody(w); err != nil {
			return nil, err
		}
		w.PadToByte()
		payload = w.Bytes()
	} else {
		return nil, fmt.Errorf("rtcmv3: %T is not an encodable message body", body)
	}

	if len(payload) > 0x3FF {
		return nil, fmt.Errorf("rtcmv3: payload of %d bytes exceeds the 10-bit length field", len(payload))
	}

	frame := make([]byte, 0, 3+len(payload)+3)
	frame = append(frame, Preamble, byte(len(payload)>>8)&0x03, byte(len(payload)))
	frame = append(frame, payload...)

	sum := crc.CRC24Q(frame)
	hi, mid, lo := crc.Bytes(sum)
	frame = append(frame, hi, mid, lo)
	return frame, nil
}

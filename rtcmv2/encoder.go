package rtcmv2

import (
	"fmt"
	"math/bits"

	"github.com/goblimey/go-gnss-codec/bitreader"
)

// Packet is implemented by every encodable RTCM v2 message body.
type Packet interface {
	header() Header
	writeBody(w *bitreader.Writer) error
}

// encodeParityFormula holds the (carry-bit index, 24-bit mask) pairs used
// by the encoder's parity algorithm. Unlike the decoder's masks, these
// apply directly to the 24 data bits of the word being encoded.
var encodeParityFormula = [6]struct {
	carryIndex int
	mask       uint32
}{
	{0, 0xEC7CD2},
	{1, 0x763E69},
	{0, 0xBB1F34},
	{1, 0x5D8F9A},
	{1, 0xAEC7CD},
	{0, 0x2DEA27},
}

// Encoder produces RTCM v2 wire frames from typed packets. It holds
// mutable carry state in the instance itself (the parity bits of the
// previously-encoded word and a rolling 3-bit sequence number), so an
// Encoder is a value type: independent encoders never interfere with each
// other.
type Encoder struct {
	seq               int
	previousParities  [2]bool
}

// NewEncoder returns an Encoder with its sequence counter reset to zero.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode renders message as a wire frame. If gpsTimeOfWeek is non-nil it
// is used to compute the modified Z count; otherwise the message's own
// ModifiedZCount is used, and encoding fails if that is also unset
// (represented here as a negative value).
func (e *Encoder) Encode(message Packet, gpsTimeOfWeek *float64) ([]byte, error) {
	w := bitreader.NewWriter()
	if err := message.writeBody(w); err != nil {
		return nil, err
	}

	bodyBits := w.BitsWritten()
	if bodyBits%8 != 0 {
		return nil, fmt.Errorf("rtcmv2: packet body length %d bits is not a whole number of bytes", bodyBits)
	}

	header := message.header()
	modZCount, err := e.modifiedZCount(header, gpsTimeOfWeek)
	if err != nil {
		return nil, err
	}

	// The body is padded with 0xAA bytes up to a whole 24-bit word below.
	numDataWords := (bodyBits + 23) / 24
	seq := e.seq
	e.seq = (e.seq + 1) % 8

	const health = 0
	headerWords := bitreader.NewWriter()
	_ = headerWords.WriteU(8, preamble)
	_ = headerWords.WriteU(6, uint32(header.PacketType))
	_ = headerWords.WriteU(10, uint32(header.StationID))
	_ = headerWords.WriteU(13, uint32(modZCount))
	_ = headerWords.WriteU(3, uint32(seq))
	_ = headerWords.WriteU(5, uint32(numDataWords))
	_ = headerWords.WriteU(3, health)

	full := append(headerWords.Bytes(), w.Bytes()...)
	for len(full)%3 != 0 {
		full = append(full, 0xAA)
	}

	return e.encodeWords(full), nil
}

func (e *Encoder) modifiedZCount(header Header, gpsTimeOfWeek *float64) (int, error) {
	if gpsTimeOfWeek == nil {
		if header.ModifiedZCount < 0 {
			return 0, fmt.Errorf("rtcmv2: cannot encode this message without a GPS time of week or a modified Z count")
		}
		return header.ModifiedZCount, nil
	}
	timeWithinHour := *gpsTimeOfWeek - 3600*float64(int64(*gpsTimeOfWeek)/3600)
	return int(timeWithinHour/0.6 + 0.5), nil
}

// encodeWords applies the stateful parity algorithm to each 24-bit data
// word in data and returns the transmitted byte stream: every 30-bit word
// (24 data bits plus 6 parity bits) is split into five 6-bit groups, each
// LSB-reversed and prefixed with the two bits 01.
func (e *Encoder) encodeWords(data []byte) []byte {
	var result []byte
	for start := 0; start < len(data); start += 3 {
		word := uint32(data[start])<<16 | uint32(data[start+1])<<8 | uint32(data[start+2])
		encoded, parities := e.encodeWord(word)
		for chunkStart := 0; chunkStart < 30; chunkStart += 6 {
			chunk := (encoded >> uint(30-chunkStart-6)) & 0x3F
			result = append(result, 0x40|lsbReversed[chunk])
		}
		e.previousParities = parities
	}
	return result
}

// encodeWord computes the six parity bits for a 24-bit data word, inverts
// the data bits if the previous word's second parity bit was set (the
// carry is taken *before* inversion, per the SC-104 algorithm), and
// returns the resulting 30-bit word plus its own trailing parity bits.
func (e *Encoder) encodeWord(word uint32) (uint32, [2]bool) {
	var parities [6]uint32
	for i, entry := range encodeParityFormula {
		carry := uint32(0)
		if e.previousParities[entry.carryIndex] {
			carry = 1
		}
		numSetBits := bits.OnesCount32(word&entry.mask) + int(carry)
		parities[i] = uint32(numSetBits) & 1
	}

	if e.previousParities[1] {
		word ^= 0xFFFFFF
	}

	var parityBits uint32
	for _, p := range parities {
		parityBits = (parityBits << 1) | p
	}

	encoded := (word << 6) | parityBits
	return encoded, [2]bool{parities[4] == 1, parities[5] == 1}
}

package rtcmv2

import "github.com/goblimey/go-gnss-codec/bitreader"

// state is the framing state of the RTCM v2 stream parser.
type state int

const (
	stateStart state = iota
	stateLength
	statePayload
)

// preamble is the value of the 8-bit RTCM v2 preamble word.
const preamble = 0x66

// parityFormula holds the six 32-bit masks used to check a decoded word's
// parity bits against the 30 data bits plus the 2 parity bits carried over
// from the previous word, per RTCM SC-104 section 3.3.
var parityFormula = [6]uint32{
	0xBB1F3480,
	0x5D8F9A40,
	0xAEC7CD00,
	0x5763E680,
	0x6BB1F340,
	0x8B7A89C0,
}

// lsbReversed maps a 6-bit transmitted symbol to its bit-reversed form.
var lsbReversed = func() [64]byte {
	var table [64]byte
	for i := 0; i < 64; i++ {
		b := i
		var result byte
		for n := 0; n < 6; n++ {
			result = (result << 1) | byte(b&1)
			b >>= 1
		}
		table[i] = result
	}
	return table
}()

// Parser decodes an RTCM v2 byte stream into Messages. It holds private,
// mutable framing state (a 32-bit rolling word, a packet buffer, and a
// state enum) and must be driven from a single logical task.
type Parser struct {
	state   state
	length  int
	numBits uint
	packet  []byte
	word    uint32
}

// NewParser returns a Parser ready to consume a fresh RTCM v2 stream.
func NewParser() *Parser {
	p := &Parser{}
	p.Reset()
	return p
}

// Reset discards any partially-accumulated frame and returns the parser to
// its initial state. It is called automatically on every framing or parity
// error and after every complete frame.
func (p *Parser) Reset() {
	p.state = stateStart
	p.length = 0
	p.numBits = 0
	p.packet = nil
	p.word = 0
}

// FeedByte feeds a single transmitted byte into the parser. It returns a
// decoded Message when a full frame completes, a *ChecksumError when a
// word fails its parity check, or (nil, nil) otherwise.
func (p *Parser) FeedByte(b byte) (*Message, error) {
	if b&0xC0 != 0x40 {
		p.Reset()
		return nil, nil
	}

	symbol := lsbReversed[b&0x3F]
	p.word = (p.word<<6 | uint32(symbol)) & 0xFFFFFFFF

	if p.state == stateStart {
		preamb := (p.word >> 22) & 0xFF
		if p.word&0x40000000 != 0 {
			preamb ^= 0xFF
		}
		if preamb == preamble {
			if p.decodeWord() {
				p.numBits = 0
				p.state = stateLength
			}
		}
		return nil, nil
	}

	p.numBits += 6
	if p.numBits < 30 {
		return nil, nil
	}
	p.numBits = 0

	if !p.decodeWord() {
		err := &ChecksumError{Packet: append([]byte(nil), p.packet...)}
		p.Reset()
		return nil, err
	}

	switch p.state {
	case stateLength:
		p.length = int(p.packet[5]>>3)*3 + 6
		if p.length <= 6 {
			p.Reset()
		} else {
			p.state = statePayload
		}
	case statePayload:
		if len(p.packet) >= p.length {
			msg, err := processPacket(p.packet)
			p.Reset()
			return msg, err
		}
	default:
		p.Reset()
	}
	return nil, nil
}

// decodeWord validates the parity of the 30-bit word sitting in the bottom
// of the rolling window, inverts it if the previous word's D30* bit was
// set, and appends the three decoded data bytes to the packet buffer.
func (p *Parser) decodeWord() bool {
	word := p.word
	if word&0x40000000 != 0 {
		word ^= 0x3FFFFFC0
	}

	var parity uint32
	for _, mask := range parityFormula {
		parity <<= 1
		w := (word & mask) >> 6
		for w != 0 {
			parity ^= w & 1
			w >>= 1
		}
	}

	if parity != word&0x3F {
		return false
	}

	for i := 0; i < 3; i++ {
		p.packet = append(p.packet, byte((word>>(22-uint(i)*8))&0xFF))
	}
	return true
}

// Feed feeds a whole buffer of bytes into the parser, returning every
// decoded message in byte order. Checksum errors are discarded from the
// slice but can be observed one at a time via FeedByte.
func (p *Parser) Feed(data []byte) []*Message {
	var messages []*Message
	for _, b := range data {
		msg, _ := p.FeedByte(b)
		if msg != nil {
			messages = append(messages, msg)
		}
	}
	return messages
}

func processPacket(packet []byte) (*Message, error) {
	r := bitreader.New(packet[1:])
	packetType, err := r.ReadU(6)
	if err != nil {
		return nil, err
	}
	stationID, err := r.ReadU(10)
	if err != nil {
		return nil, err
	}
	modZCount, err := r.ReadU(13)
	if err != nil {
		return nil, err
	}
	if err := r.Skip(11); err != nil {
		return nil, err
	}

	header := Header{
		PacketType:     int(packetType),
		StationID:      int(stationID),
		ModifiedZCount: int(modZCount),
	}

	body := packet[6:]
	readable, err := decodeBody(header, body)
	if err != nil {
		return &Message{Header: header, RawData: packet}, err
	}

	return &Message{Header: header, RawData: packet, Readable: readable}, nil
}

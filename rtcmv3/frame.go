package rtcmv3

import (
	"bytes"
	"fmt"

	"github.com/goblimey/go-gnss-codec/crc"
)

// ChecksumError is raised when a fully-framed RTCM v3 packet's trailing
// CRC-24Q bytes don't match the CRC computed over the preamble, length and
// payload. It carries the packet bytes (preamble, length, payload) and the
// three received parity bytes so a caller can inspect what was rejected.
type ChecksumError struct {
	Packet []byte
	Parity [3]byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("rtcmv3: CRC-24Q mismatch on a %d-byte packet", len(e.Packet))
}

// state is the framing state of the RTCM v3 stream parser.
type state int

const (
	stateStart state = iota
	stateLength
	statePayload
	stateParity
)

// Options configures a Parser.
type Options struct {
	// MaxPacketLength bounds the frame length (leader + payload,
	// excluding CRC). A frame whose declared length would exceed it
	// triggers a resynchronisation instead of bounded buffering. Zero
	// means unbounded.
	MaxPacketLength int
}

// Parser decodes an RTCM v3 byte stream into Messages. It holds private
// mutable framing state (a growing packet buffer, a frame-length target
// and a state enum) and must be driven from a single logical task.
type Parser struct {
	opts   Options
	state  state
	packet []byte
	parity []byte
	length int // total frame length: leader + payload, excluding CRC
}

// NewParser returns a Parser ready to consume a fresh RTCM v3 stream.
func NewParser(opts Options) *Parser {
	p := &Parser{opts: opts}
	p.Reset()
	return p
}

// Reset discards any partially-accumulated frame and returns the parser to
// its initial state. It is called automatically on every framing error,
// length-overrun and after every complete frame (successful or not).
func (p *Parser) Reset() {
	p.state = stateStart
	p.packet = nil
	p.parity = nil
	p.length = 0
}

// FeedByte feeds a single byte into the parser. It returns a decoded
// *Message when a full frame validates, a *ChecksumError when one fails
// its CRC, or (nil, nil) otherwise.
func (p *Parser) FeedByte(b byte) (*Message, error) {
	switch p.state {
	case stateStart:
		if b != Preamble {
			return nil, nil
		}
		p.packet = []byte{b}
		p.state = stateLength
		return nil, nil

	case stateLength:
		p.packet = append(p.packet, b)
		if len(p.packet) < 3 {
			return nil, nil
		}
		payloadLen := int(p.packet[1]&0x03)<<8 | int(p.packet[2])
		p.length = payloadLen + 3
		if p.opts.MaxPacketLength > 0 && p.length > p.opts.MaxPacketLength {
			p.Reset()
			return nil, nil
		}
		if payloadLen == 0 {
			p.state = stateParity
		} else {
			p.state = statePayload
		}
		return nil, nil

	case statePayload:
		p.packet = append(p.packet, b)
		if len(p.packet) >= p.length {
			p.state = stateParity
		}
		return nil, nil

	case stateParity:
		p.parity = append(p.parity, b)
		if len(p.parity) < 3 {
			return nil, nil
		}
		return p.completeFrame()

	default:
		p.Reset()
		return nil, nil
	}
}

func (p *Parser) completeFrame() (*Message, error) {
	packet := p.packet
	parity := [3]byte{p.parity[0], p.parity[1], p.parity[2]}

	want := crc.CRC24Q(packet)
	hi, mid, lo := crc.Bytes(want)
	if hi != parity[0] || mid != parity[1] || lo != parity[2] {
		err := &ChecksumError{Packet: append([]byte(nil), packet...), Parity: parity}
		p.Reset()
		return nil, err
	}

	payload := packet[3:]
	msgType, body, decodeErr := decodeBody(payload)

	raw := make([]byte, 0, len(packet)+3)
	raw = append(raw, packet...)
	raw = append(raw, parity[:]...)

	p.Reset()
	if decodeErr != nil {
		return nil, decodeErr
	}
	return &Message{MessageType: msgType, RawData: raw, Body: body}, nil
}

// Feed feeds a whole buffer of bytes into the parser, returning every
// decoded message in byte order. Checksum errors abort that frame but the
// parser keeps scanning the remaining bytes as usual (it has already been
// reset to stateStart).
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

// Recover searches the bytes rejected by the most recent ChecksumError
// (payload followed by the three parity bytes) for the next preamble byte
// at or after position 1, and re-feeds the parser from there. It returns
// any message that recovery immediately produces.
func (e *ChecksumError) Recover(p *Parser) (*Message, error) {
	combined := append(append([]byte(nil), e.Packet...), e.Parity[:]...)
	idx := bytes.IndexByte(combined[1:], Preamble)
	if idx < 0 {
		return nil, nil
	}
	var msg *Message
	var err error
	for _, b := range combined[1+idx:] {
		msg, err = p.FeedByte(b)
		if msg != nil || err != nil {
			return msg, err
		}
	}
	return nil, nil
}

package ubx

import (
	"fmt"

	"github.com/goblimey/go-gnss-codec/crc"
)

// ChecksumError is raised when a fully-framed UBX packet's trailing
// Fletcher-8 bytes don't match the checksum computed over class, ID,
// length and payload.
type ChecksumError struct {
	Packet []byte // class, id, length (2 bytes), payload
	CKA    byte
	CKB    byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("ubx: Fletcher-8 mismatch on a %d-byte packet (class=%#02x id=%#02x)",
		len(e.Packet), e.Packet[0], e.Packet[1])
}

type state int

const (
	stateSync1 state = iota
	stateSync2
	stateClass
	stateID
	stateLength1
	stateLength2
	statePayload
	stateCK1
	stateCK2
)

// Parser decodes a UBX byte stream into Messages. It holds private mutable
// framing state and must be driven from a single logical task.
type Parser struct {
	state       state
	class       byte
	id          byte
	length      int
	payload     []byte
	ck1         byte
	ck2         byte
}

// NewParser returns a Parser ready to consume a fresh UBX stream.
func NewParser() *Parser {
	p := &Parser{}
	p.Reset()
	return p
}

// Reset discards any partially-accumulated frame and returns the parser to
// its initial state.
func (p *Parser) Reset() {
	p.state = stateSync1
	p.class = 0
	p.id = 0
	p.length = 0
	p.payload = nil
}

// FeedByte feeds a single byte into the parser. It returns a decoded
// *Message when a full frame validates, a *ChecksumError when one fails
// its checksum, or (nil, nil) otherwise.
func (p *Parser) FeedByte(b byte) (*Message, error) {
	switch p.state {
	case stateSync1:
		if b == Sync1 {
			p.state = stateSync2
		}
		return nil, nil

	case stateSync2:
		if b == Sync2 {
			p.state = stateClass
		} else if b != Sync1 {
			p.state = stateSync1
		}
		return nil, nil

	case stateClass:
		p.class = b
		p.state = stateID
		return nil, nil

	case stateID:
		p.id = b
		p.state = stateLength1
		return nil, nil

	case stateLength1:
		p.length = int(b)
		p.state = stateLength2
		return nil, nil

	case stateLength2:
		p.length |= int(b) << 8
		if p.length > maxPayloadLength {
			p.Reset()
			return nil, nil
		}
		if p.length == 0 {
			p.state = stateCK1
		} else {
			p.state = statePayload
		}
		return nil, nil

	case statePayload:
		p.payload = append(p.payload, b)
		if len(p.payload) >= p.length {
			p.state = stateCK1
		}
		return nil, nil

	case stateCK1:
		p.ck1 = b
		p.state = stateCK2
		return nil, nil

	case stateCK2:
		p.ck2 = b
		return p.completeFrame()

	default:
		p.Reset()
		return nil, nil
	}
}

func (p *Parser) completeFrame() (*Message, error) {
	covered := make([]byte, 0, 4+len(p.payload))
	covered = append(covered, p.class, p.id, byte(p.length), byte(p.length>>8))
	covered = append(covered, p.payload...)

	wantA, wantB := crc.Fletcher8(covered)
	if wantA != p.ck1 || wantB != p.ck2 {
		err := &ChecksumError{
			Packet: append([]byte(nil), covered...),
			CKA:    p.ck1,
			CKB:    p.ck2,
		}
		p.Reset()
		return nil, err
	}

	class, id, payload := p.class, p.id, append([]byte(nil), p.payload...)
	body, decodeErr := decodeBody(class, id, payload)

	raw := make([]byte, 0, 2+len(covered)+2)
	raw = append(raw, Sync1, Sync2)
	raw = append(raw, covered...)
	raw = append(raw, p.ck1, p.ck2)

	p.Reset()
	if decodeErr != nil {
		return nil, decodeErr
	}
	return &Message{Class: class, ID: id, RawData: raw, Body: body}, nil
}

// Feed feeds a whole buffer of bytes into the parser, returning every
// decoded message in byte order. Checksum errors abort that frame but the
// parser keeps scanning the remaining bytes.
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

// Recover searches the bytes rejected by the most recent ChecksumError for
// the next sync-word pair, and re-feeds the parser from there.
func (e *ChecksumError) Recover(p *Parser) (*Message, error) {
	combined := append(append([]byte(nil), e.Packet...), e.CKA, e.CKB)
	for i := 0; i < len(combined)-1; i++ {
		if combined[i] == Sync1 && combined[i+1] == Sync2 {
			var msg *Message
			var err error
			for _, b := range combined[i:] {
				msg, err = p.FeedByte(b)
				if msg != nil || err != nil {
					return msg, err
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}

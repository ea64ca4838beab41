// Package autodetect fans an incoming byte stream out to RTCM v2, RTCM v3,
// UBX and NMEA subparsers and settles on whichever one first produces a
// validated frame. After that, the chosen subparser owns the stream
// exclusively; the others are discarded.
package autodetect

import (
	"github.com/goblimey/go-gnss-codec/nmea"
	"github.com/goblimey/go-gnss-codec/rtcmv2"
	"github.com/goblimey/go-gnss-codec/rtcmv3"
	"github.com/goblimey/go-gnss-codec/ubx"
)

// Source identifies which subparser produced a Message.
type Source int

const (
	SourceNone Source = iota
	SourceRTCMv2
	SourceRTCMv3
	SourceUBX
	SourceNMEA
)

func (s Source) String() string {
	switch s {
	case SourceRTCMv2:
		return "rtcmv2"
	case SourceRTCMv3:
		return "rtcmv3"
	case SourceUBX:
		return "ubx"
	case SourceNMEA:
		return "nmea"
	default:
		return "none"
	}
}

// Message wraps whichever subparser produced it. Exactly one of the
// typed fields is non-nil, matching Source.
type Message struct {
	Source Source
	RTCMv2 *rtcmv2.Message
	RTCMv3 *rtcmv3.Message
	UBX    *ubx.Message
	NMEA   *nmea.Sentence
}

// Parser orchestrates the four subparsers. Once one of RTCMv2/RTCMv3/UBX
// produces a validated frame, that subparser becomes the exclusive owner
// of the stream; the others are dropped. NMEA never claims exclusivity: it
// runs alongside the binary subparsers only while none of them is chosen;
// once one is chosen, NMEA sees no further bytes.
type Parser struct {
	rtcmv2p *rtcmv2.Parser
	rtcmv3p *rtcmv3.Parser
	ubxp    *ubx.Parser
	nmeap   *nmea.Framer

	chosen Source
}

// Options configures the RTCM v3 subparser's framing guard.
type Options struct {
	MaxRTCMv3PacketLength int
}

// NewParser returns a Parser with all four subparsers live and none
// chosen.
func NewParser(opts Options) *Parser {
	return &Parser{
		rtcmv2p: rtcmv2.NewParser(),
		rtcmv3p: rtcmv3.NewParser(rtcmv3.Options{MaxPacketLength: opts.MaxRTCMv3PacketLength}),
		ubxp:    ubx.NewParser(),
		nmeap:   nmea.NewFramer(),
		chosen:  SourceNone,
	}
}

// FeedByte feeds a single byte into the parser. It returns at most one
// Message: the next packet produced by whichever subparser currently owns
// (or comes to own) the stream. Checksum and framing errors from
// subparsers that aren't chosen are swallowed; once a subparser is
// chosen, its errors surface so the caller can track misbehaviour on a
// live, identified stream.
func (p *Parser) FeedByte(b byte) (*Message, error) {
	// Once a binary subparser owns the stream, every byte goes to it
	// exclusively: NMEA (and the other binary subparsers) see nothing
	// more, matching the "forward to it exclusively" rule.
	switch p.chosen {
	case SourceRTCMv2:
		msg, err := p.rtcmv2p.FeedByte(b)
		if msg != nil {
			return &Message{Source: SourceRTCMv2, RTCMv2: msg}, nil
		}
		return nil, err

	case SourceRTCMv3:
		msg, err := p.rtcmv3p.FeedByte(b)
		if msg != nil {
			return &Message{Source: SourceRTCMv3, RTCMv3: msg}, nil
		}
		if cksumErr, ok := err.(*rtcmv3.ChecksumError); ok {
			if recovered, rerr := cksumErr.Recover(p.rtcmv3p); recovered != nil {
				return &Message{Source: SourceRTCMv3, RTCMv3: recovered}, nil
			} else if rerr != nil {
				return nil, rerr
			}
		}
		return nil, err

	case SourceUBX:
		msg, err := p.ubxp.FeedByte(b)
		if msg != nil {
			return &Message{Source: SourceUBX, UBX: msg}, nil
		}
		if cksumErr, ok := err.(*ubx.ChecksumError); ok {
			if recovered, rerr := cksumErr.Recover(p.ubxp); recovered != nil {
				return &Message{Source: SourceUBX, UBX: recovered}, nil
			} else if rerr != nil {
				return nil, rerr
			}
		}
		return nil, err
	}

	// No subparser chosen yet: feed every subparser, including NMEA,
	// which never wins exclusivity even when it validates a sentence.
	nmeaMsg, _ := p.nmeap.FeedByte(b)
	v2msg, v2err := p.rtcmv2p.FeedByte(b)
	v3msg, v3err := p.rtcmv3p.FeedByte(b)
	ubxMsg, ubxErr := p.ubxp.FeedByte(b)

	if v2msg != nil {
		p.choose(SourceRTCMv2)
		return &Message{Source: SourceRTCMv2, RTCMv2: v2msg}, nil
	}
	if v3msg != nil {
		p.choose(SourceRTCMv3)
		return &Message{Source: SourceRTCMv3, RTCMv3: v3msg}, nil
	}
	if ubxMsg != nil {
		p.choose(SourceUBX)
		return &Message{Source: SourceUBX, UBX: ubxMsg}, nil
	}
	if nmeaMsg != nil {
		return &Message{Source: SourceNMEA, NMEA: nmeaMsg}, nil
	}

	// No validated frame yet. If one of the subparsers just rejected a
	// fully-framed packet on checksum, try its recovery: a single garbage
	// byte elsewhere in the stream shouldn't cost us the rest of a
	// genuine frame that happens to follow closely.
	if v3CksumErr, ok := v3err.(*rtcmv3.ChecksumError); ok {
		if recovered, _ := v3CksumErr.Recover(p.rtcmv3p); recovered != nil {
			p.choose(SourceRTCMv3)
			return &Message{Source: SourceRTCMv3, RTCMv3: recovered}, nil
		}
	}
	if ubxCksumErr, ok := ubxErr.(*ubx.ChecksumError); ok {
		if recovered, _ := ubxCksumErr.Recover(p.ubxp); recovered != nil {
			p.choose(SourceUBX)
			return &Message{Source: SourceUBX, UBX: recovered}, nil
		}
	}
	_ = v2err // RTCM v2 parity failures reset themselves; nothing to recover.

	return nil, nil
}

// choose commits the stream to the given subparser and resets the losing
// ones, so stray bytes they've half-buffered don't linger.
func (p *Parser) choose(source Source) {
	p.chosen = source
	if source != SourceRTCMv2 {
		p.rtcmv2p.Reset()
	}
	if source != SourceRTCMv3 {
		p.rtcmv3p.Reset()
	}
	if source != SourceUBX {
		p.ubxp.Reset()
	}
}

// Chosen reports which subparser, if any, currently owns the stream.
func (p *Parser) Chosen() Source {
	return p.chosen
}

// Reset discards all framing state and returns the parser to its initial,
// undetermined state.
func (p *Parser) Reset() {
	p.rtcmv2p.Reset()
	p.rtcmv3p.Reset()
	p.ubxp.Reset()
	p.nmeap.Reset()
	p.chosen = SourceNone
}

// Feed feeds a whole buffer into the parser, returning every message
// produced, in byte order.
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

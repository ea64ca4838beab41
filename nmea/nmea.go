// Package nmea frames and parses NMEA-0183 sentences well enough to
// support the NTRIP GGA position handshake: line-delimited `$...*CC`
// ASCII sentences with an XOR checksum, a decoder for the well-known
// talker sentences that handshake needs, and a formatter that builds a
// GGA sentence from a position.
//
// The core engineering for this module lives in the RTCM and UBX codecs;
// this framer is deliberately small, matching the "NMEA is consumed in
// passing" framing of the rest of this package.
package nmea

import (
	"fmt"
	"strconv"
	"strings"
)

// Sentence is one parsed NMEA-0183 sentence: the talker+type field, its
// comma-separated fields (not including the leading `$<id>` or the
// trailing `*CC`), and the raw line it came from.
type Sentence struct {
	Raw    string
	Type   string // e.g. "GPGGA", "GNRMC"
	Fields []string
}

// Checksum returns the XOR checksum of the bytes between the leading `$`
// and the `*`, as two uppercase hex digits.
func Checksum(data string) string {
	var sum byte
	for i := 0; i < len(data); i++ {
		sum ^= data[i]
	}
	return fmt.Sprintf("%02X", sum)
}

// ErrInvalidSentence is returned when a line doesn't fit the
// `$<type>,<fields>*<hh>` shape.
type ErrInvalidSentence struct {
	Line string
}

func (e *ErrInvalidSentence) Error() string {
	return fmt.Sprintf("nmea: malformed sentence %q", e.Line)
}

// ErrChecksumMismatch is returned when a sentence's trailing checksum
// doesn't match the one computed over its body.
type ErrChecksumMismatch struct {
	Line     string
	Want     string
	Received string
}

func (e *ErrChecksumMismatch) Error() string {
	return fmt.Sprintf("nmea: checksum mismatch on %q: want %s got %s", e.Line, e.Want, e.Received)
}

// Parse validates and splits a single NMEA line (with or without a
// trailing CR/LF) into a Sentence.
func Parse(line string) (*Sentence, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 1 || line[0] != '$' {
		return nil, &ErrInvalidSentence{Line: line}
	}

	star := strings.LastIndexByte(line, '*')
	if star < 0 || star+3 > len(line) {
		return nil, &ErrInvalidSentence{Line: line}
	}

	body := line[1:star]
	received := strings.ToUpper(line[star+1 : star+3])
	want := Checksum(body)
	if received != want {
		return nil, &ErrChecksumMismatch{Line: line, Want: want, Received: received}
	}

	fields := strings.Split(body, ",")
	if len(fields) < 1 {
		return nil, &ErrInvalidSentence{Line: line}
	}

	return &Sentence{Raw: line, Type: fields[0], Fields: fields[1:]}, nil
}

// state is the framing state of the line-delimited Framer.
type state int

const (
	stateWaitStart state = iota
	stateInLine
)

// Framer accumulates bytes into complete `$...*CC\r\n`-delimited lines.
// Like the other stream codecs in this module, it holds private mutable
// buffering state and must be driven from a single logical task.
type Framer struct {
	state state
	line  []byte
}

// NewFramer returns a Framer ready to consume a fresh byte stream.
func NewFramer() *Framer {
	return &Framer{}
}

// Reset discards any partially-accumulated line.
func (f *Framer) Reset() {
	f.state = stateWaitStart
	f.line = nil
}

// FeedByte feeds a single byte into the framer. It returns a parsed
// *Sentence when a full, checksum-valid line completes; a non-nil error
// when a full line fails to parse or checksum (the framer resets either
// way); or (nil, nil) while still accumulating.
func (f *Framer) FeedByte(b byte) (*Sentence, error) {
	switch f.state {
	case stateWaitStart:
		if b == '$' {
			f.line = []byte{b}
			f.state = stateInLine
		}
		return nil, nil

	case stateInLine:
		if b == '\n' || b == '\r' {
			if len(f.line) == 0 {
				return nil, nil
			}
			line := string(f.line)
			f.Reset()
			sentence, err := Parse(line)
			return sentence, err
		}
		f.line = append(f.line, b)
		return nil, nil

	default:
		f.Reset()
		return nil, nil
	}
}

// Feed feeds a whole buffer into the framer, returning every
// successfully-parsed sentence in byte order. Malformed or checksum-
// failing lines are silently dropped from the slice but can be observed
// one at a time via FeedByte.
func (f *Framer) Feed(data []byte) []*Sentence {
	var sentences []*Sentence
	for _, b := range data {
		s, _ := f.FeedByte(b)
		if s != nil {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// degreesToNMEA splits decimal degrees into the NMEA DDMM.mmmm (or
// DDDMM.mmmm) form and a hemisphere letter.
func degreesToNMEA(decimalDegrees float64, degreeDigits int, positive, negative string) (string, string) {
	hemisphere := positive
	if decimalDegrees < 0 {
		hemisphere = negative
		decimalDegrees = -decimalDegrees
	}
	degrees := int(decimalDegrees)
	minutes := (decimalDegrees - float64(degrees)) * 60

	format := fmt.Sprintf("%%0%dd%%07.4f", degreeDigits)
	return fmt.Sprintf(format, degrees, minutes), hemisphere
}

// ParseNMEADegrees converts a DDMM.mmmm (or DDDMM.mmmm) value plus a
// hemisphere letter into decimal degrees.
func ParseNMEADegrees(field, hemisphere string) (float64, error) {
	if field == "" {
		return 0, fmt.Errorf("nmea: empty coordinate field")
	}
	raw, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("nmea: invalid coordinate field %q: %w", field, err)
	}
	degrees := float64(int(raw / 100))
	minutes := raw - degrees*100
	value := degrees + minutes/60
	if hemisphere == "S" || hemisphere == "W" {
		value = -value
	}
	return value, nil
}

package ubx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// RXMRAWXMeasurement is one satellite/signal measurement block within a
// RXM-RAWX payload.
type RXMRAWXMeasurement struct {
	PseudorangeM  float64
	CarrierPhaseCycles float64
	DopplerHz     float64
	GnssID        byte
	SvID          byte
	SigID         byte
	FreqID        byte
	LockTime      uint16
	CN0           byte
	PseudorangeStd byte
	CarrierPhaseStd byte
	DopplerStd    byte
	TrkStat       byte
}

// RXMRAWX is the UBX-RXM-RAWX payload: multi-GNSS raw measurement data.
type RXMRAWX struct {
	ReceiverTOW  float64
	Week         uint16
	LeapSecond   int8
	Version      byte
	Measurements []RXMRAWXMeasurement
}

func decodeRXMRAWX(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 16, "RXM-RAWX"); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	nmeas := int(payload[11])
	version := payload[13]
	const blockLen = 32
	if len(payload) < 16+blockLen*nmeas {
		return nil, fmt.Errorf("ubx: RXM-RAWX declares %d measurement blocks but payload is only %d bytes", nmeas, len(payload))
	}

	msg := &RXMRAWX{
		ReceiverTOW: math.Float64frombits(le.Uint64(payload[0:8])),
		Week:        le.Uint16(payload[8:10]),
		LeapSecond:  int8(payload[10]),
		Version:     version,
	}
	for i := 0; i < nmeas; i++ {
		b := payload[16+i*blockLen : 16+(i+1)*blockLen]
		msg.Measurements = append(msg.Measurements, RXMRAWXMeasurement{
			PseudorangeM:       math.Float64frombits(le.Uint64(b[0:8])),
			CarrierPhaseCycles: math.Float64frombits(le.Uint64(b[8:16])),
			DopplerHz:          float64(math.Float32frombits(le.Uint32(b[16:20]))),
			GnssID:             b[20],
			SvID:               b[21],
			SigID:              b[22],
			FreqID:             b[23],
			LockTime:           le.Uint16(b[24:26]),
			CN0:                b[26],
			PseudorangeStd:     b[27],
			CarrierPhaseStd:    b[28],
			DopplerStd:         b[29],
			TrkStat:            b[30],
		})
	}
	return msg, nil
}

// RXMSFRBX is the UBX-RXM-SFRBX payload: a raw broadcast navigation
// subframe. The words are preserved verbatim; decoding their bit content
// is out of scope for this module (it is ephemeris-format-specific and
// already covered for RTCM v3 by the 1019 message body).
type RXMSFRBX struct {
	GnssID  byte
	SvID    byte
	FreqID  byte
	NumWords byte
	Version byte
	Words   []uint32
}

func decodeRXMSFRBX(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 8, "RXM-SFRBX"); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	numWords := int(payload[4])
	if len(payload) < 8+4*numWords {
		return nil, fmt.Errorf("ubx: RXM-SFRBX declares %d words but payload is only %d bytes", numWords, len(payload))
	}
	msg := &RXMSFRBX{
		GnssID:   payload[0],
		SvID:     payload[1],
		FreqID:   payload[2],
		NumWords: payload[4],
		Version:  payload[6],
	}
	for i := 0; i < numWords; i++ {
		msg.Words = append(msg.Words, le.Uint32(payload[8+i*4:12+i*4]))
	}
	return msg, nil
}

// RXMRAW is the deprecated (pre-RAWX) UBX-RXM-RAW payload.
type RXMRAW struct {
	RcvTOW float32
	Week   int16
	NumSV  byte
}

func decodeRXMRAW(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 8, "RXM-RAW"); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	return &RXMRAW{
		RcvTOW: math.Float32frombits(le.Uint32(payload[0:4])),
		Week:   int16(le.Uint16(payload[4:6])),
		NumSV:  payload[6],
	}, nil
}

// RXMSFRB is the deprecated (pre-SFRBX) UBX-RXM-SFRB payload: one GPS or
// GLONASS subframe, ten raw 32-bit words.
type RXMSFRB struct {
	ChannelNum byte
	SvID       byte
	Words      [10]uint32
}

func decodeRXMSFRB(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 42, "RXM-SFRB"); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	msg := &RXMSFRB{ChannelNum: payload[0], SvID: payload[1]}
	for i := 0; i < 10; i++ {
		msg.Words[i] = le.Uint32(payload[2+i*4 : 6+i*4])
	}
	return msg, nil
}

func init() {
	register(ClassRXM, IDRxmRAWX, decodeRXMRAWX)
	register(ClassRXM, IDRxmSFRBX, decodeRXMSFRBX)
	register(ClassRXM, IDRxmRAW, decodeRXMRAW)
	register(ClassRXM, IDRxmSFRB, decodeRXMSFRB)
}

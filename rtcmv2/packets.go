package rtcmv2

import (
	"fmt"

	"github.com/goblimey/go-gnss-codec/bitreader"
)

// Header fields shared by every RTCM v2 packet. ModifiedZCount counts
// 0.6-second ticks since the start of the current GPS hour (0..5999).
type Header struct {
	PacketType      int
	StationID       int
	ModifiedZCount  int
}

// FullCorrectionsPacket is RTCM v2 message type 1: DGPS pseudorange and
// range-rate corrections for every satellite in view.
type FullCorrectionsPacket struct {
	Header
	Corrections []CorrectionData
}

// NumSatellites returns the number of satellites carried in this packet.
func (p *FullCorrectionsPacket) NumSatellites() int {
	return len(p.Corrections)
}

func (p *FullCorrectionsPacket) header() Header { return p.Header }

func decodeFullCorrections(header Header, body []byte) (*FullCorrectionsPacket, error) {
	r := bitreader.New(body)
	numBits := r.Len()
	numCorrections := numBits / 40
	remainder := numBits % 40
	if remainder%8 != 0 {
		return nil, fmt.Errorf("rtcmv2: full corrections packet fill section length %d not divisible by 8", remainder)
	}

	corrections := make([]CorrectionData, 0, numCorrections)
	for i := uint(0); i < numCorrections; i++ {
		scale, err := r.ReadU(1)
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadU(2); err != nil {
			return nil, err
		}
		svid, err := r.ReadU(5)
		if err != nil {
			return nil, err
		}
		scaledPRC, err := r.ReadBEI(2)
		if err != nil {
			return nil, err
		}
		scaledPRRC, err := r.ReadBEI(1)
		if err != nil {
			return nil, err
		}
		iode, err := r.ReadU(8)
		if err != nil {
			return nil, err
		}

		multiplier := float64(int64(1) << (4 * scale))
		corrections = append(corrections, CorrectionData{
			SVID: int(svid),
			PRC:  float64(scaledPRC) * multiplier,
			PRRC: float64(scaledPRRC) * multiplier,
			IODE: int(iode),
		})
	}

	for r.Len() > 0 {
		fillByte, err := r.ReadU(8)
		if err != nil {
			return nil, err
		}
		if fillByte != 0xAA {
			return nil, fmt.Errorf("rtcmv2: invalid padding in full corrections packet, expected 0xaa, got %#x", fillByte)
		}
	}

	return &FullCorrectionsPacket{Header: header, Corrections: corrections}, nil
}

// writeBody appends the packet's correction records to w; the caller is
// responsible for padding to a 24-bit word boundary with 0xAA bytes
// afterwards.
func (p *FullCorrectionsPacket) writeBody(w *bitreader.Writer) error {
	for _, c := range p.Corrections {
		if c.SVID < 0 || c.SVID > 32 {
			return fmt.Errorf("rtcmv2: correction data SVID must be 0..32, got %d", c.SVID)
		}
		scale := c.ScaleFactor()
		if scale > 1 {
			return fmt.Errorf("rtcmv2: scale factor %d too large", scale)
		}
		if scale < 0 {
			return fmt.Errorf("rtcmv2: scale factor must not be negative")
		}
		if err := w.WriteU(1, uint32(scale)); err != nil {
			return err
		}
		if err := w.WriteU(2, 0); err != nil {
			return err
		}
		if err := w.WriteU(5, uint32(c.SVID&0x1F)); err != nil {
			return err
		}
		if err := w.WriteI(16, int32(c.ScaledPRC())); err != nil {
			return err
		}
		if err := w.WriteI(8, int32(c.ScaledPRRC())); err != nil {
			return err
		}
		if err := w.WriteU(8, uint32(c.IODE)); err != nil {
			return err
		}
	}
	return nil
}

// ReferenceStationPacket is RTCM v2 message type 3: the reference
// station's ECEF position, in metres.
type ReferenceStationPacket struct {
	Header
	X, Y, Z float64
}

func decodeReferenceStation(header Header, body []byte) (*ReferenceStationPacket, error) {
	r := bitreader.New(body)
	x, err := r.ReadBEI(4)
	if err != nil {
		return nil, err
	}
	y, err := r.ReadBEI(4)
	if err != nil {
		return nil, err
	}
	z, err := r.ReadBEI(4)
	if err != nil {
		return nil, err
	}
	const cmToM = 1.0 / 100
	return &ReferenceStationPacket{
		Header: header,
		X:      float64(x) * cmToM,
		Y:      float64(y) * cmToM,
		Z:      float64(z) * cmToM,
	}, nil
}

func (p *ReferenceStationPacket) header() Header { return p.Header }

func (p *ReferenceStationPacket) writeBody(w *bitreader.Writer) error {
	const mToCm = 100
	if err := w.WriteI(32, int32(p.X*mToCm)); err != nil {
		return err
	}
	if err := w.WriteI(32, int32(p.Y*mToCm)); err != nil {
		return err
	}
	return w.WriteI(32, int32(p.Z*mToCm))
}

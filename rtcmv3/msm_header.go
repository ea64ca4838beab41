package rtcmv3

import (
	"fmt"

	"github.com/goblimey/go-gnss-codec/bitreader"
)

// msmHeader is the extended header shared by every Multiple Signal
// Message (message types 107x, 108x, 109x, 111x, 112x). It is followed by
// the per-satellite and per-signal cell data described in msm.go.
type msmHeader struct {
	StationID               uint
	EpochTime                uint
	MultipleMessage         bool
	IssueOfDataStation      uint
	SessionTransmissionTime uint
	ClockSteeringIndicator  uint
	ExternalClockIndicator  uint
	DivergenceFreeSmoothing bool
	SmoothingInterval       uint
	SatelliteMask           uint64
	SignalMask              uint32
	CellMask                uint64
	Satellites              []uint
	Signals                 []uint
	Cells                   [][]bool
}

func readMSMHeader(r *bitreader.Reader) (*msmHeader, error) {
	stationID, err := r.ReadU(12)
	if err != nil {
		return nil, err
	}
	epochTime, err := r.ReadU(30)
	if err != nil {
		return nil, err
	}
	multiple, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	iod, err := r.ReadU(3)
	if err != nil {
		return nil, err
	}
	sessionTime, err := r.ReadU(7)
	if err != nil {
		return nil, err
	}
	clockSteering, err := r.ReadU(2)
	if err != nil {
		return nil, err
	}
	extClock, err := r.ReadU(2)
	if err != nil {
		return nil, err
	}
	smoothing, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	smoothingInterval, err := r.ReadU(3)
	if err != nil {
		return nil, err
	}
	satMask, err := r.ReadU(64)
	if err != nil {
		return nil, err
	}
	sigMask, err := r.ReadU(32)
	if err != nil {
		return nil, err
	}

	satellites := bitsToIndices(satMask, 64)
	signals := bitsToIndices(sigMask, 32)

	cellBits := uint(len(satellites) * len(signals))
	if cellBits > 64 {
		return nil, fmt.Errorf("rtcmv3: MSM cell mask is %d bits, expected <= 64", cellBits)
	}
	cellMask, err := r.ReadU(cellBits)
	if err != nil {
		return nil, err
	}

	return &msmHeader{
		StationID:               uint(stationID),
		EpochTime:               uint(epochTime),
		MultipleMessage:         multiple,
		IssueOfDataStation:      uint(iod),
		SessionTransmissionTime: uint(sessionTime),
		ClockSteeringIndicator:  uint(clockSteering),
		ExternalClockIndicator:  uint(extClock),
		DivergenceFreeSmoothing: smoothing,
		SmoothingInterval:       uint(smoothingInterval),
		SatelliteMask:           satMask,
		SignalMask:              uint32(sigMask),
		CellMask:                cellMask,
		Satellites:              satellites,
		Signals:                 signals,
		Cells:                   unpackCells(cellMask, len(satellites), len(signals)),
	}, nil
}

func (h *msmHeader) write(w *bitreader.Writer) error {
	if err := w.WriteU(12, uint32(h.StationID)); err != nil {
		return err
	}
	if err := w.WriteU(30, uint32(h.EpochTime)); err != nil {
		return err
	}
	if err := w.WriteBool(h.MultipleMessage); err != nil {
		return err
	}
	if err := w.WriteU(3, uint32(h.IssueOfDataStation)); err != nil {
		return err
	}
	if err := w.WriteU(7, uint32(h.SessionTransmissionTime)); err != nil {
		return err
	}
	if err := w.WriteU(2, uint32(h.ClockSteeringIndicator)); err != nil {
		return err
	}
	if err := w.WriteU(2, uint32(h.ExternalClockIndicator)); err != nil {
		return err
	}
	if err := w.WriteBool(h.DivergenceFreeSmoothing); err != nil {
		return err
	}
	if err := w.WriteU(3, uint32(h.SmoothingInterval)); err != nil {
		return err
	}
	if err := w.WriteU64(64, h.SatelliteMask); err != nil {
		return err
	}
	if err := w.WriteU(32, h.SignalMask); err != nil {
		return err
	}
	cellBits := uint(len(h.Satellites) * len(h.Signals))
	return w.WriteU64(cellBits, h.CellMask)
}

// bitsToIndices returns the 1-based positions of the set bits of mask,
// read most-significant-bit first across width bits.
func bitsToIndices(mask uint64, width int) []uint {
	var out []uint
	for i := 0; i < width; i++ {
		bitPos := width - 1 - i
		if (mask>>uint(bitPos))&1 == 1 {
			out = append(out, uint(i+1))
		}
	}
	return out
}

func unpackCells(cellMask uint64, nsat, nsig int) [][]bool {
	total := nsat * nsig
	cells := make([][]bool, nsat)
	cellNum := 0
	for i := 0; i < nsat; i++ {
		row := make([]bool, nsig)
		for j := 0; j < nsig; j++ {
			bitPos := total - cellNum - 1
			row[j] = (cellMask>>uint(bitPos))&1 == 1
			cellNum++
		}
		cells[i] = row
	}
	return cells
}

// constellationForType maps an MSM message type to its constellation name
// and satellite-ID prefix. The prefix follows the range table given for
// satellite IDs: G below 1080, R below 1090, E below 1100, Q below 1120,
// else C; SBAS shares the Q bucket, there being no separate prefix for it.
func constellationForType(msgType int) (name, prefix string) {
	switch {
	case msgType < 1080:
		return "GPS", "G"
	case msgType < 1090:
		return "GLONASS", "R"
	case msgType < 1100:
		return "Galileo", "E"
	case msgType < 1110:
		return "SBAS", "Q"
	case msgType < 1120:
		return "QZSS", "Q"
	case msgType < 1130:
		return "BeiDou", "C"
	default:
		return "NavIC/IRNSS", "C"
	}
}

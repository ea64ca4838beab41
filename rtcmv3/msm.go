package rtcmv3

import (
	"fmt"

	"github.com/goblimey/go-gnss-codec/bitreader"
)

// msmFamilies lists the five MSM message-type families this module
// registers, one leading digit group per constellation as named in
// msm_header.go's constellationForType.
var msmFamilies = []int{1070, 1080, 1090, 1110, 1120}

// MSMSatellite is one satellite's entry in an MSM message: the satellite
// ID (prefixed per its constellation, e.g. "G03"), the rough range and,
// for the extended variants (MSM5/MSM7), the extended satellite info and
// range rate.
type MSMSatellite struct {
	ID                    string
	RangeWholeMillis      uint
	RangeFractionalMillis uint
	ExtendedInfo          *uint
	RangeRate             *int
}

// MSMSignal is one satellite/signal cell's entry: the decoded pseudorange
// and phase-range deltas (combined with the satellite's rough range to
// give the full values), lock time, half-cycle ambiguity flag, carrier-
// to-noise ratio and, for MSM5/MSM7, the phase-range rate delta.
type MSMSignal struct {
	SatelliteID         string
	SignalID            uint
	PseudorangeDelta    int
	PhaseRangeDelta     int
	LockTimeIndicator   uint
	HalfCycleAmbiguity  bool
	CNR                 float64
	PhaseRangeRateDelta *int
}

// MSMMessage is a decoded Multiple Signal Message (types 1074-1077,
// 1084-1087, 1094-1097, 1114-1117, 1124-1127).
type MSMMessage struct {
	Type          int
	Constellation string
	Header        *msmHeader
	Satellites    []MSMSatellite
	Signals       []MSMSignal
}

func (m *MSMMessage) messageType() int { return m.Type }

// hiRes reports whether this MSM variant uses the high-resolution
// (20/24-bit) cell fields (last digit 6 or 7) rather than the
// low-resolution (15/22-bit) ones (last digit 4 or 5).
func hiRes(msgType int) bool {
	d := msgType % 10
	return d == 6 || d == 7
}

// extended reports whether this MSM variant carries the extended
// per-satellite (range rate) and per-cell (phase-range rate) fields
// (last digit 5 or 7).
func extended(msgType int) bool {
	d := msgType % 10
	return d == 5 || d == 7
}

func decodeMSM(msgType int) func(*bitreader.Reader) (interface{}, error) {
	return func(r *bitreader.Reader) (interface{}, error) {
		header, err := readMSMHeader(r)
		if err != nil {
			return nil, err
		}
		constellation, prefix := constellationForType(msgType)
		ext := extended(msgType)
		hi := hiRes(msgType)

		satellites := make([]MSMSatellite, len(header.Satellites))
		for i, id := range header.Satellites {
			whole, err := r.ReadU(8)
			if err != nil {
				return nil, err
			}
			satellites[i].ID = fmt.Sprintf("%s%02d", prefix, id)
			satellites[i].RangeWholeMillis = uint(whole)
		}
		if ext {
			for i := range satellites {
				info, err := r.ReadU(4)
				if err != nil {
					return nil, err
				}
				v := uint(info)
				satellites[i].ExtendedInfo = &v
			}
		}
		for i := range satellites {
			frac, err := r.ReadU(10)
			if err != nil {
				return nil, err
			}
			satellites[i].RangeFractionalMillis = uint(frac)
		}
		if ext {
			for i := range satellites {
				rate, err := r.ReadI(14)
				if err != nil {
					return nil, err
				}
				v := int(rate)
				satellites[i].RangeRate = &v
			}
		}

		var signals []MSMSignal
		for satIdx, row := range header.Cells {
			for sigIdx, present := range row {
				if !present {
					continue
				}
				signals = append(signals, MSMSignal{
					SatelliteID: satellites[satIdx].ID,
					SignalID:    header.Signals[sigIdx],
				})
			}
		}

		pseudorangeWidth := uint(15)
		phaseRangeWidth := uint(22)
		if hi {
			pseudorangeWidth, phaseRangeWidth = 20, 24
		}
		for i := range signals {
			v, err := r.ReadI(pseudorangeWidth)
			if err != nil {
				return nil, err
			}
			signals[i].PseudorangeDelta = int(v)
		}
		for i := range signals {
			v, err := r.ReadI(phaseRangeWidth)
			if err != nil {
				return nil, err
			}
			signals[i].PhaseRangeDelta = int(v)
		}
		lockWidth := uint(4)
		if hi {
			lockWidth = 10
		}
		for i := range signals {
			v, err := r.ReadU(lockWidth)
			if err != nil {
				return nil, err
			}
			signals[i].LockTimeIndicator = uint(v)
		}
		for i := range signals {
			v, err := r.ReadBool()
			if err != nil {
				return nil, err
			}
			signals[i].HalfCycleAmbiguity = v
		}
		cnrWidth := uint(6)
		cnrScale := 1.0
		if hi {
			cnrWidth = 10
			cnrScale = 0.0625
		}
		for i := range signals {
			v, err := r.ReadU(cnrWidth)
			if err != nil {
				return nil, err
			}
			signals[i].CNR = float64(v) * cnrScale
		}
		if ext {
			for i := range signals {
				v, err := r.ReadI(15)
				if err != nil {
					return nil, err
				}
				rate := int(v)
				signals[i].PhaseRangeRateDelta = &rate
			}
		}

		return &MSMMessage{
			Type:          msgType,
			Constellation: constellation,
			Header:        header,
			Satellites:    satellites,
			Signals:       signals,
		}, nil
	}
}

func (m *MSMMessage) writeBody(w *bitreader.Writer) error {
	if err := m.Header.write(w); err != nil {
		return err
	}
	ext := extended(m.Type)
	hi := hiRes(m.Type)

	for _, sat := range m.Satellites {
		if err := w.WriteU(8, uint32(sat.RangeWholeMillis)); err != nil {
			return err
		}
	}
	if ext {
		for _, sat := range m.Satellites {
			v := uint32(0)
			if sat.ExtendedInfo != nil {
				v = uint32(*sat.ExtendedInfo)
			}
			if err := w.WriteU(4, v); err != nil {
				return err
			}
		}
	}
	for _, sat := range m.Satellites {
		if err := w.WriteU(10, uint32(sat.RangeFractionalMillis)); err != nil {
			return err
		}
	}
	if ext {
		for _, sat := range m.Satellites {
			v := int32(0)
			if sat.RangeRate != nil {
				v = int32(*sat.RangeRate)
			}
			if err := w.WriteI(14, v); err != nil {
				return err
			}
		}
	}

	pseudorangeWidth := uint(15)
	phaseRangeWidth := uint(22)
	lockWidth := uint(4)
	cnrWidth := uint(6)
	cnrScale := 1.0
	if hi {
		pseudorangeWidth, phaseRangeWidth, lockWidth, cnrWidth, cnrScale = 20, 24, 10, 10, 0.0625
	}
	for _, sig := range m.Signals {
		if err := w.WriteI(pseudorangeWidth, int32(sig.PseudorangeDelta)); err != nil {
			return err
		}
	}
	for _, sig := range m.Signals {
		if err := w.WriteI(phaseRangeWidth, int32(sig.PhaseRangeDelta)); err != nil {
			return err
		}
	}
	for _, sig := range m.Signals {
		if err := w.WriteU(lockWidth, uint32(sig.LockTimeIndicator)); err != nil {
			return err
		}
	}
	for _, sig := range m.Signals {
		if err := w.WriteBool(sig.HalfCycleAmbiguity); err != nil {
			return err
		}
	}
	for _, sig := range m.Signals {
		if err := w.WriteU(cnrWidth, uint32(sig.CNR/cnrScale+0.5)); err != nil {
			return err
		}
	}
	if ext {
		for _, sig := range m.Signals {
			v := int32(0)
			if sig.PhaseRangeRateDelta != nil {
				v = int32(*sig.PhaseRangeRateDelta)
			}
			if err := w.WriteI(15, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// MaxCNR returns the maximum CNR observed across all of this message's
// cells for the given satellite ID, and whether that satellite has any
// cells at all.
func (m *MSMMessage) MaxCNR(satelliteID string) (float64, bool) {
	var max float64
	found := false
	for _, sig := range m.Signals {
		if sig.SatelliteID != satelliteID {
			continue
		}
		if !found || sig.CNR > max {
			max = sig.CNR
		}
		found = true
	}
	return max, found
}

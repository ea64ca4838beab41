package rtcmv3

import "github.com/goblimey/go-gnss-codec/bitreader"

// Observation is an RTK observation message: GPS (message types 1001-1004)
// or GLONASS (1009-1012). The odd-numbered type in each pair of two (1001,
// 1003; 1009, 1011) omits the integer ambiguity and CNR (except GLONASS
// 1011, see hasL1AmbiguityAndCNR); the even-numbered type (1002, 1004;
// 1010, 1012) additionally carries them for each frequency actually
// present. Types 1003/1004 and 1011/1012 carry
// both L1 and L2; 1001/1002 and 1009/1010 carry L1 only.
type Observation struct {
	Type        int
	StationID   uint
	Epoch       uint // GPS: TOW in ms; GLONASS: time-of-day in ms
	Synchronous bool
	Satellites  []ObservationSatellite
}

// ObservationSatellite is one satellite's row of an Observation message.
// L2 and ambiguity/CNR fields are nil when the enclosing message type
// doesn't carry them.
type ObservationSatellite struct {
	PRN               uint
	Code1             uint
	FrequencyChannel  *uint // GLONASS only: satellite frequency channel number - 7
	Pseudorange1      uint
	PhaseRangeDelta1  int
	LockTime1         uint
	Ambiguity1        *uint
	CNR1              *float64
	Code2             *uint
	PseudorangeDiff2  *int
	PhaseRangeDelta2  *int
	LockTime2         *uint
	CNR2              *float64
}

func (m *Observation) messageType() int { return m.Type }

func isGLONASS(msgType int) bool { return msgType >= 1009 && msgType <= 1012 }

func hasL2(msgType int) bool {
	return msgType == 1003 || msgType == 1004 || msgType == 1011 || msgType == 1012
}

func hasAmbiguityAndCNR(msgType int) bool {
	return msgType == 1002 || msgType == 1004 || msgType == 1010 || msgType == 1012
}

// hasL1AmbiguityAndCNR reports whether the L1 block carries an integer
// ambiguity and CNR. For GPS this is exactly the extended (even-numbered)
// types. For GLONASS, the non-extended, has-L2 variant (1011) carries them
// too — a documented divergence between reference implementations that
// this module resolves by keeping them present, per the source it was
// distilled from.
func hasL1AmbiguityAndCNR(msgType int) bool {
	if isGLONASS(msgType) {
		return hasAmbiguityAndCNR(msgType) || hasL2(msgType)
	}
	return hasAmbiguityAndCNR(msgType)
}

// hasL2CNR reports whether the L2 block carries a CNR. For GPS this only
// holds for the extended types. For GLONASS it holds whenever L2 is
// present at all, extended or not — the same divergence as
// hasL1AmbiguityAndCNR, applied to the L2 side.
func hasL2CNR(msgType int) bool {
	if isGLONASS(msgType) {
		return hasL2(msgType)
	}
	return hasAmbiguityAndCNR(msgType)
}

func decodeObservation(msgType int) decoderFunc {
	return func(r *bitreader.Reader) (interface{}, error) {
		stationID, err := r.ReadU(12)
		if err != nil {
			return nil, err
		}
		epoch, err := r.ReadU(30)
		if err != nil {
			return nil, err
		}
		sync, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		nsat, err := r.ReadU(5)
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadU(4); err != nil { // divergence-free smoothing (1 bit) + smoothing interval (3 bits), ignored
			return nil, err
		}

		glonass := isGLONASS(msgType)
		l2 := hasL2(msgType)
		withAmb := hasL1AmbiguityAndCNR(msgType)
		withL2CNR := hasL2CNR(msgType)

		satellites := make([]ObservationSatellite, nsat)
		for i := range satellites {
			prn, err := r.ReadU(6)
			if err != nil {
				return nil, err
			}
			code1, err := r.ReadU(1)
			if err != nil {
				return nil, err
			}
			sat := ObservationSatellite{PRN: uint(prn), Code1: uint(code1)}

			if glonass {
				fcn, err := r.ReadU(5)
				if err != nil {
					return nil, err
				}
				v := uint(fcn)
				sat.FrequencyChannel = &v
			}

			prWidth := uint(24)
			if glonass {
				prWidth = 25
			}
			pr1, err := r.ReadU(prWidth)
			if err != nil {
				return nil, err
			}
			sat.Pseudorange1 = uint(pr1)

			ppr1, err := r.ReadI(20)
			if err != nil {
				return nil, err
			}
			sat.PhaseRangeDelta1 = int(ppr1)

			lock1, err := r.ReadU(7)
			if err != nil {
				return nil, err
			}
			sat.LockTime1 = uint(lock1)

			if withAmb {
				ambWidth := uint(8)
				if glonass {
					ambWidth = 7
				}
				amb, err := r.ReadU(ambWidth)
				if err != nil {
					return nil, err
				}
				a := uint(amb)
				sat.Ambiguity1 = &a

				cnrRaw, err := r.ReadU(8)
				if err != nil {
					return nil, err
				}
				cnr := float64(cnrRaw) * 0.25
				sat.CNR1 = &cnr
			}

			if l2 {
				code2, err := r.ReadU(2)
				if err != nil {
					return nil, err
				}
				c2 := uint(code2)
				sat.Code2 = &c2

				diff2, err := r.ReadI(14)
				if err != nil {
					return nil, err
				}
				d := int(diff2)
				sat.PseudorangeDiff2 = &d

				ppr2, err := r.ReadI(20)
				if err != nil {
					return nil, err
				}
				p := int(ppr2)
				sat.PhaseRangeDelta2 = &p

				lock2, err := r.ReadU(7)
				if err != nil {
					return nil, err
				}
				l2v := uint(lock2)
				sat.LockTime2 = &l2v

				if withL2CNR {
					cnr2Raw, err := r.ReadU(8)
					if err != nil {
						return nil, err
					}
					cnr2 := float64(cnr2Raw) * 0.25
					sat.CNR2 = &cnr2
				}
			}

			satellites[i] = sat
		}

		return &Observation{
			Type:        msgType,
			StationID:   uint(stationID),
			Epoch:       uint(epoch),
			Synchronous: sync,
			Satellites:  satellites,
		}, nil
	}
}

func (m *Observation) writeBody(w *bitreader.Writer) error {
	if err := w.WriteU(12, uint32(m.StationID)); err != nil {
		return err
	}
	if err := w.WriteU(30, uint32(m.Epoch)); err != nil {
		return err
	}
	if err := w.WriteBool(m.Synchronous); err != nil {
		return err
	}
	if err := w.WriteU(5, uint32(len(m.Satellites))); err != nil {
		return err
	}
	if err := w.WriteU(4, 0); err != nil {
		return err
	}

	glonass := isGLONASS(m.Type)
	l2 := hasL2(m.Type)
	withAmb := hasL1AmbiguityAndCNR(m.Type)
	withL2CNR := hasL2CNR(m.Type)

	for _, sat := range m.Satellites {
		if err := w.WriteU(6, uint32(sat.PRN)); err != nil {
			return err
		}
		if err := w.WriteU(1, uint32(sat.Code1)); err != nil {
			return err
		}
		if glonass {
			v := uint32(0)
			if sat.FrequencyChannel != nil {
				v = uint32(*sat.FrequencyChannel)
			}
			if err := w.WriteU(5, v); err != nil {
				return err
			}
		}
		prWidth := uint(24)
		if glonass {
			prWidth = 25
		}
		if err := w.WriteU(prWidth, uint32(sat.Pseudorange1)); err != nil {
			return err
		}
		if err := w.WriteI(20, int32(sat.PhaseRangeDelta1)); err != nil {
			return err
		}
		if err := w.WriteU(7, uint32(sat.LockTime1)); err != nil {
			return err
		}
		if withAmb {
			ambWidth := uint(8)
			if glonass {
				ambWidth = 7
			}
			amb := uint32(0)
			if sat.Ambiguity1 != nil {
				amb = uint32(*sat.Ambiguity1)
			}
			if err := w.WriteU(ambWidth, amb); err != nil {
				return err
			}
			cnr := 0.0
			if sat.CNR1 != nil {
				cnr = *sat.CNR1
			}
			if err := w.WriteU(8, uint32(cnr/0.25+0.5)); err != nil {
				return err
			}
		}
		if l2 {
			code2 := uint32(0)
			if sat.Code2 != nil {
				code2 = uint32(*sat.Code2)
			}
			if err := w.WriteU(2, code2); err != nil {
				return err
			}
			diff2 := int32(0)
			if sat.PseudorangeDiff2 != nil {
				diff2 = int32(*sat.PseudorangeDiff2)
			}
			if err := w.WriteI(14, diff2); err != nil {
				return err
			}
			ppr2 := int32(0)
			if sat.PhaseRangeDelta2 != nil {
				ppr2 = int32(*sat.PhaseRangeDelta2)
			}
			if err := w.WriteI(20, ppr2); err != nil {
				return err
			}
			lock2 := uint32(0)
			if sat.LockTime2 != nil {
				lock2 = uint32(*sat.LockTime2)
			}
			if err := w.WriteU(7, lock2); err != nil {
				return err
			}
			if withL2CNR {
				cnr2 := 0.0
				if sat.CNR2 != nil {
					cnr2 = *sat.CNR2
				}
				if err := w.WriteU(8, uint32(cnr2/0.25+0.5)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

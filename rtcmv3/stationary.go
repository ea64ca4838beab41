package rtcmv3

import "github.com/goblimey/go-gnss-codec/bitreader"

// StationaryAntenna is RTCM v3 message type 1005 (ARP only) or 1006 (ARP
// plus antenna height). It carries a reference station's stationary ECEF
// position.
type StationaryAntenna struct {
	Type               int
	StationID          uint
	ITRFRealisationYear uint
	GPSIndicator        bool
	GLONASSIndicator     bool
	GalileoIndicator     bool
	IsReferenceStation   bool
	ECEFX                int64 // raw, 1e-4 m units
	SingleReceiverOscillator bool
	ECEFY                    int64
	QuarterCycleIndicator    uint
	ECEFZ                    int64
	AntennaHeight            *uint // 1e-4 m units; only present on type 1006
}

func (m *StationaryAntenna) messageType() int { return m.Type }

// PositionMetres returns the antenna reference point in metres.
func (m *StationaryAntenna) PositionMetres() (x, y, z float64) {
	const scale = 1e-4
	return float64(m.ECEFX) * scale, float64(m.ECEFY) * scale, float64(m.ECEFZ) * scale
}

// AntennaHeightMetres returns the antenna height in metres and whether it
// was present (only message type 1006 carries one).
func (m *StationaryAntenna) AntennaHeightMetres() (float64, bool) {
	if m.AntennaHeight == nil {
		return 0, false
	}
	return float64(*m.AntennaHeight) * 1e-4, true
}

func decodeStationary(msgType int) decoderFunc {
	return func(r *bitreader.Reader) (interface{}, error) {
		stationID, err := r.ReadU(12)
		if err != nil {
			return nil, err
		}
		itrfYear, err := r.ReadU(6)
		if err != nil {
			return nil, err
		}
		gps, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		glonass, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		galileo, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		isRef, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		ecefX, err := r.ReadI(38)
		if err != nil {
			return nil, err
		}
		singleOsc, err := r.ReadBool()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadU(1); err != nil { // reserved
			return nil, err
		}
		ecefY, err := r.ReadI(38)
		if err != nil {
			return nil, err
		}
		quarterCycle, err := r.ReadU(2)
		if err != nil {
			return nil, err
		}
		ecefZ, err := r.ReadI(38)
		if err != nil {
			return nil, err
		}

		msg := &StationaryAntenna{
			Type:                     msgType,
			StationID:                uint(stationID),
			ITRFRealisationYear:      uint(itrfYear),
			GPSIndicator:             gps,
			GLONASSIndicator:         glonass,
			GalileoIndicator:         galileo,
			IsReferenceStation:       isRef,
			ECEFX:                    ecefX,
			SingleReceiverOscillator: singleOsc,
			ECEFY:                    ecefY,
			QuarterCycleIndicator:    uint(quarterCycle),
			ECEFZ:                    ecefZ,
		}

		if msgType == 1006 {
			height, err := r.ReadU(16)
			if err != nil {
				return nil, err
			}
			h := uint(height)
			msg.AntennaHeight = &h
		}

		return msg, nil
	}
}

func (m *StationaryAntenna) writeBody(w *bitreader.Writer) error {
	if err := w.WriteU(12, uint32(m.StationID)); err != nil {
		return err
	}
	if err := w.WriteU(6, uint32(m.ITRFRealisationYear)); err != nil {
		return err
	}
	if err := w.WriteBool(m.GPSIndicator); err != nil {
		return err
	}
	if err := w.WriteBool(m.GLONASSIndicator); err != nil {
		return err
	}
	if err := w.WriteBool(m.GalileoIndicator); err != nil {
		return err
	}
	if err := w.WriteBool(m.IsReferenceStation); err != nil {
		return err
	}
	if err := w.WriteI64(38, m.ECEFX); err != nil {
		return err
	}
	if err := w.WriteBool(m.SingleReceiverOscillator); err != nil {
		return err
	}
	if err := w.WriteU(1, 0); err != nil {
		return err
	}
	if err := w.WriteI64(38, m.ECEFY); err != nil {
		return err
	}
	if err := w.WriteU(2, uint32(m.QuarterCycleIndicator)); err != nil {
		return err
	}
	if err := w.WriteI64(38, m.ECEFZ); err != nil {
		return err
	}
	if m.Type == 1006 {
		height := uint(0)
		if m.AntennaHeight != nil {
			height = *m.AntennaHeight
		}
		return w.WriteU(16, uint32(height))
	}
	return nil
}

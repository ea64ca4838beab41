package rtcmv3

import "github.com/goblimey/go-gnss-codec/bitreader"

// gpsPi is the GPS ICD's own value of pi, used (rather than math.Pi) to
// convert semicircle-scaled angular fields to radians, matching the
// constant the broadcast ephemeris format is defined against.
const gpsPi = 3.1415926535898

// GPSEphemeris is RTCM v3 message type 1019: a GPS broadcast ephemeris,
// carrying the raw, scaled fields exactly as transmitted. Use SI to get
// a view in conventional units.
type GPSEphemeris struct {
	PRN             uint
	WeekNumber      uint
	URA             uint
	CodeOnL2        uint
	IDOT            int
	IODE            uint
	TOC             uint
	AF2             int
	AF1             int
	AF0             int
	IODC            uint
	CRS             int
	DeltaN          int
	M0              int64
	CUC             int
	Eccentricity    uint64
	CUS             int
	SqrtA           uint64
	TOE             uint
	CIC             int
	Omega0          int64
	CIS             int
	I0              int64
	CRC             int
	Omega           int64
	OmegaDot        int
	TGD             int
	SVHealth        uint
	L2PDataFlag     bool
	FitIntervalFlag bool
}

func (m *GPSEphemeris) messageType() int { return 1019 }

// SIEphemeris is the GPSEphemeris fields converted to conventional SI
// units (seconds, radians, metres, metres^0.5).
type SIEphemeris struct {
	WeekNumber   uint
	SqrtA        float64 // metres^0.5
	Eccentricity float64
	I0           float64 // radians
	Omega0       float64 // radians
	Omega        float64 // radians
	M0           float64 // radians
	DeltaN       float64 // radians/s
	IDOT         float64 // radians/s
	OmegaDot     float64 // radians/s
	CUC, CUS     float64 // radians
	CRC, CRS     float64 // metres
	CIC, CIS     float64 // radians
	TOE, TOC     float64 // seconds of week
	AF0          float64 // seconds
	AF1          float64 // seconds/second
	AF2          float64 // seconds/second^2
	TGD          float64 // seconds
}

// SI converts the raw broadcast fields to conventional units, following
// the scale factors defined by the GPS interface specification.
func (m *GPSEphemeris) SI() SIEphemeris {
	return SIEphemeris{
		WeekNumber:   m.WeekNumber,
		SqrtA:        float64(m.SqrtA) / p2(19),
		Eccentricity: float64(m.Eccentricity) / p2(33),
		I0:           float64(m.I0) * gpsPi / p2(31),
		Omega0:       float64(m.Omega0) * gpsPi / p2(31),
		Omega:        float64(m.Omega) * gpsPi / p2(31),
		M0:           float64(m.M0) * gpsPi / p2(31),
		DeltaN:       float64(m.DeltaN) * gpsPi / p2(43),
		IDOT:         float64(m.IDOT) * gpsPi / p2(43),
		OmegaDot:     float64(m.OmegaDot) * gpsPi / p2(43),
		CUC:          float64(m.CUC) / p2(29),
		CUS:          float64(m.CUS) / p2(29),
		CRC:          float64(m.CRC) / p2(5),
		CRS:          float64(m.CRS) / p2(5),
		CIC:          float64(m.CIC) / p2(29),
		CIS:          float64(m.CIS) / p2(29),
		TOE:          float64(m.TOE) * 16,
		TOC:          float64(m.TOC) * 16,
		AF0:          float64(m.AF0) / p2(31),
		AF1:          float64(m.AF1) / p2(43),
		AF2:          float64(m.AF2) / p2(55),
		TGD:          float64(m.TGD) / p2(31),
	}
}

// p2 returns 2^n as a float64, matching the P2_xx power-of-two scale
// constants GPS receiver firmware conventionally names.
func p2(n uint) float64 {
	v := 1.0
	for i := uint(0); i < n; i++ {
		v *= 2
	}
	return v
}

func decodeEphemeris(r *bitreader.Reader) (interface{}, error) {
	prn, err := r.ReadU(6)
	if err != nil {
		return nil, err
	}
	week, err := r.ReadU(10)
	if err != nil {
		return nil, err
	}
	ura, err := r.ReadU(4)
	if err != nil {
		return nil, err
	}
	codeOnL2, err := r.ReadU(2)
	if err != nil {
		return nil, err
	}
	idot, err := r.ReadI(14)
	if err != nil {
		return nil, err
	}
	iode, err := r.ReadU(8)
	if err != nil {
		return nil, err
	}
	toc, err := r.ReadU(16)
	if err != nil {
		return nil, err
	}
	af2, err := r.ReadI(8)
	if err != nil {
		return nil, err
	}
	af1, err := r.ReadI(16)
	if err != nil {
		return nil, err
	}
	af0, err := r.ReadI(22)
	if err != nil {
		return nil, err
	}
	iodc, err := r.ReadU(10)
	if err != nil {
		return nil, err
	}
	crs, err := r.ReadI(16)
	if err != nil {
		return nil, err
	}
	deltaN, err := r.ReadI(16)
	if err != nil {
		return nil, err
	}
	m0, err := r.ReadI(32)
	if err != nil {
		return nil, err
	}
	cuc, err := r.ReadI(16)
	if err != nil {
		return nil, err
	}
	ecc, err := r.ReadU(32)
	if err != nil {
		return nil, err
	}
	cus, err := r.ReadI(16)
	if err != nil {
		return nil, err
	}
	sqrtA, err := r.ReadU(32)
	if err != nil {
		return nil, err
	}
	toe, err := r.ReadU(16)
	if err != nil {
		return nil, err
	}
	cic, err := r.ReadI(16)
	if err != nil {
		return nil, err
	}
	omega0, err := r.ReadI(32)
	if err != nil {
		return nil, err
	}
	cis, err := r.ReadI(16)
	if err != nil {
		return nil, err
	}
	i0, err := r.ReadI(32)
	if err != nil {
		return nil, err
	}
	crc, err := r.ReadI(16)
	if err != nil {
		return nil, err
	}
	omega, err := r.ReadI(32)
	if err != nil {
		return nil, err
	}
	omegaDot, err := r.ReadI(24)
	if err != nil {
		return nil, err
	}
	tgd, err := r.ReadI(8)
	if err != nil {
		return nil, err
	}
	svHealth, err := r.ReadU(6)
	if err != nil {
		return nil, err
	}
	l2pData, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	fitInterval, err := r.ReadBool()
	if err != nil {
		return nil, err
	}

	return &GPSEphemeris{
		PRN:             uint(prn),
		WeekNumber:      uint(week),
		URA:             uint(ura),
		CodeOnL2:        uint(codeOnL2),
		IDOT:            int(idot),
		IODE:            uint(iode),
		TOC:             uint(toc),
		AF2:             int(af2),
		AF1:             int(af1),
		AF0:             int(af0),
		IODC:            uint(iodc),
		CRS:             int(crs),
		DeltaN:          int(deltaN),
		M0:              m0,
		CUC:             int(cuc),
		Eccentricity:    ecc,
		CUS:             int(cus),
		SqrtA:           sqrtA,
		TOE:             uint(toe),
		CIC:             int(cic),
		Omega0:          omega0,
		CIS:             int(cis),
		I0:              i0,
		CRC:             int(crc),
		Omega:           omega,
		OmegaDot:        int(omegaDot),
		TGD:             int(tgd),
		SVHealth:        uint(svHealth),
		L2PDataFlag:     l2pData,
		FitIntervalFlag: fitInterval,
	}, nil
}

func (m *GPSEphemeris) writeBody(w *bitreader.Writer) error {
	fields := []struct {
		width uint
		value int64
		uns   bool
	}{
		{6, int64(m.PRN), true},
		{10, int64(m.WeekNumber), true},
		{4, int64(m.URA), true},
		{2, int64(m.CodeOnL2), true},
		{14, int64(m.IDOT), false},
		{8, int64(m.IODE), true},
		{16, int64(m.TOC), true},
		{8, int64(m.AF2), false},
		{16, int64(m.AF1), false},
		{22, int64(m.AF0), false},
		{10, int64(m.IODC), true},
		{16, int64(m.CRS), false},
		{16, int64(m.DeltaN), false},
		{32, m.M0, false},
		{16, int64(m.CUC), false},
		{32, int64(m.Eccentricity), true},
		{16, int64(m.CUS), false},
		{32, int64(m.SqrtA), true},
		{16, int64(m.TOE), true},
		{16, int64(m.CIC), false},
		{32, m.Omega0, false},
		{16, int64(m.CIS), false},
		{32, m.I0, false},
		{16, int64(m.CRC), false},
		{32, m.Omega, false},
		{24, int64(m.OmegaDot), false},
		{8, int64(m.TGD), false},
		{6, int64(m.SVHealth), true},
	}
	for _, f := range fields {
		var err error
		if f.uns {
			err = w.WriteU64(f.width, uint64(f.value))
		} else {
			err = w.WriteI64(f.width, f.value)
		}
		if err != nil {
			return err
		}
	}
	if err := w.WriteBool(m.L2PDataFlag); err != nil {
		return err
	}
	return w.WriteBool(m.FitIntervalFlag)
}

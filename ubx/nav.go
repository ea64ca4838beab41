package ubx

import "encoding/binary"

// NAVPVT is the UBX-NAV-PVT payload: the receiver's full navigation
// solution. Only the fields collaborators actually consume are exposed;
// the payload's many reserved/flag bytes are dropped on decode. There is no
// NAV-PVT encoder.
type NAVPVT struct {
	ITOW       uint32
	Year       uint16
	Month      byte
	Day        byte
	Hour       byte
	Min        byte
	Sec        byte
	Valid      byte
	FixType    byte
	Flags      byte
	LonDegE7   int32
	LatDegE7   int32
	HeightMM   int32
	HMSLmm     int32
	HAccMM     uint32
	VAccMM     uint32
	VelNMMps   int32
	VelEMMps   int32
	VelDMMps   int32
	GSpeedMMps int32
	HeadMotion int32
	SAcc       uint32
	NumSV      byte
}

func decodeNAVPVT(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 92, "NAV-PVT"); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	return &NAVPVT{
		ITOW:       le.Uint32(payload[0:4]),
		Year:       le.Uint16(payload[4:6]),
		Month:      payload[6],
		Day:        payload[7],
		Hour:       payload[8],
		Min:        payload[9],
		Sec:        payload[10],
		Valid:      payload[11],
		FixType:    payload[20],
		Flags:      payload[21],
		NumSV:      payload[23],
		LonDegE7:   int32(le.Uint32(payload[24:28])),
		LatDegE7:   int32(le.Uint32(payload[28:32])),
		HeightMM:   int32(le.Uint32(payload[32:36])),
		HMSLmm:     int32(le.Uint32(payload[36:40])),
		HAccMM:     le.Uint32(payload[40:44]),
		VAccMM:     le.Uint32(payload[44:48]),
		VelNMMps:   int32(le.Uint32(payload[48:52])),
		VelEMMps:   int32(le.Uint32(payload[52:56])),
		VelDMMps:   int32(le.Uint32(payload[56:60])),
		GSpeedMMps: int32(le.Uint32(payload[60:64])),
		HeadMotion: int32(le.Uint32(payload[64:68])),
		SAcc:       le.Uint32(payload[68:72]),
	}, nil
}

// NAVSVIN is the UBX-NAV-SVIN payload reporting survey-in progress.
type NAVSVIN struct {
	ITOW        uint32
	DurationSec uint32
	MeanXcm     int32
	MeanYcm     int32
	MeanZcm     int32
	MeanAccMM   uint32
	Observations uint32
	Valid       bool
	Active      bool
}

func decodeNAVSVIN(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 40, "NAV-SVIN"); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	return &NAVSVIN{
		ITOW:         le.Uint32(payload[4:8]),
		DurationSec:  le.Uint32(payload[8:12]),
		MeanXcm:      int32(le.Uint32(payload[12:16])),
		MeanYcm:      int32(le.Uint32(payload[16:20])),
		MeanZcm:      int32(le.Uint32(payload[20:24])),
		MeanAccMM:    le.Uint32(payload[28:32]),
		Observations: le.Uint32(payload[32:36]),
		Valid:        payload[36] != 0,
		Active:       payload[37] != 0,
	}, nil
}

// NAVVELNED is the UBX-NAV-VELNED payload: velocity in the NED frame.
type NAVVELNED struct {
	ITOW      uint32
	VelNcms   int32
	VelEcms   int32
	VelDcms   int32
	SpeedCMps uint32
	GSpeed    uint32
	HeadingDegE5 int32
}

func decodeNAVVELNED(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 36, "NAV-VELNED"); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	return &NAVVELNED{
		ITOW:         le.Uint32(payload[0:4]),
		VelNcms:      int32(le.Uint32(payload[4:8])),
		VelEcms:      int32(le.Uint32(payload[8:12])),
		VelDcms:      int32(le.Uint32(payload[12:16])),
		SpeedCMps:    le.Uint32(payload[16:20]),
		GSpeed:       le.Uint32(payload[20:24]),
		HeadingDegE5: int32(le.Uint32(payload[24:28])),
	}, nil
}

// NAVTIMEUTC is the UBX-NAV-TIMEUTC payload: UTC time solution.
type NAVTIMEUTC struct {
	ITOW   uint32
	TAccNS uint32
	NanoS  int32
	Year   uint16
	Month  byte
	Day    byte
	Hour   byte
	Min    byte
	Sec    byte
	Valid  byte
}

func decodeNAVTIMEUTC(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 20, "NAV-TIMEUTC"); err != nil {
		return nil, err
	}
	le := binary.LittleEndian
	return &NAVTIMEUTC{
		ITOW:   le.Uint32(payload[0:4]),
		TAccNS: le.Uint32(payload[4:8]),
		NanoS:  int32(le.Uint32(payload[8:12])),
		Year:   le.Uint16(payload[12:14]),
		Month:  payload[14],
		Day:    payload[15],
		Hour:   payload[16],
		Min:    payload[17],
		Sec:    payload[18],
		Valid:  payload[19],
	}, nil
}

func init() {
	register(ClassNAV, IDNavPVT, decodeNAVPVT)
	register(ClassNAV, IDNavSVIN, decodeNAVSVIN)
	register(ClassNAV, IDNavVELNED, decodeNAVVELNED)
	register(ClassNAV, IDNavTIMEUTC, decodeNAVTIMEUTC)
}

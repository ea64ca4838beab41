package ubx

import "encoding/binary"

// CFGRate is the UBX-CFG-RATE payload: measurement rate, navigation rate
// (in measurement cycles) and the time reference (0 = UTC, 1 = GPS).
type CFGRate struct {
	MeasRateMillis uint16
	NavRate        uint16
	TimeRef        uint16
}

// Encode renders a CFG-RATE frame ready to send to the receiver.
func (c CFGRate) Encode() ([]byte, error) {
	payload := make([]byte, 6)
	binary.LittleEndian.PutUint16(payload[0:2], c.MeasRateMillis)
	binary.LittleEndian.PutUint16(payload[2:4], c.NavRate)
	binary.LittleEndian.PutUint16(payload[4:6], c.TimeRef)
	return Encode(ClassCFG, IDCfgRATE, payload)
}

func decodeCFGRate(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 6, "CFG-RATE"); err != nil {
		return nil, err
	}
	return &CFGRate{
		MeasRateMillis: binary.LittleEndian.Uint16(payload[0:2]),
		NavRate:        binary.LittleEndian.Uint16(payload[2:4]),
		TimeRef:        binary.LittleEndian.Uint16(payload[4:6]),
	}, nil
}

// CFGMsg is the UBX-CFG-MSG payload requesting a message be sent at a given
// rate on the current port.
type CFGMsg struct {
	MsgClass byte
	MsgID    byte
	Rate     byte
}

// Encode renders the short (class, id, single rate) form of CFG-MSG.
func (c CFGMsg) Encode() ([]byte, error) {
	return Encode(ClassCFG, IDCfgMSG, []byte{c.MsgClass, c.MsgID, c.Rate})
}

func decodeCFGMsg(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 3, "CFG-MSG"); err != nil {
		return nil, err
	}
	return &CFGMsg{MsgClass: payload[0], MsgID: payload[1], Rate: payload[2]}, nil
}

// CFGPrt is the UBX-CFG-PRT payload for a UART port.
type CFGPrt struct {
	PortID          byte
	TxReady         uint16
	Mode            uint32
	BaudRate        uint32
	InProtoMask     uint16
	OutProtoMask    uint16
}

// Encode renders a CFG-PRT frame.
func (c CFGPrt) Encode() ([]byte, error) {
	payload := make([]byte, 20)
	payload[0] = c.PortID
	binary.LittleEndian.PutUint16(payload[2:4], c.TxReady)
	binary.LittleEndian.PutUint32(payload[4:8], c.Mode)
	binary.LittleEndian.PutUint32(payload[8:12], c.BaudRate)
	binary.LittleEndian.PutUint16(payload[12:14], c.InProtoMask)
	binary.LittleEndian.PutUint16(payload[14:16], c.OutProtoMask)
	return Encode(ClassCFG, IDCfgPRT, payload)
}

func decodeCFGPrt(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 20, "CFG-PRT"); err != nil {
		return nil, err
	}
	return &CFGPrt{
		PortID:       payload[0],
		TxReady:      binary.LittleEndian.Uint16(payload[2:4]),
		Mode:         binary.LittleEndian.Uint32(payload[4:8]),
		BaudRate:     binary.LittleEndian.Uint32(payload[8:12]),
		InProtoMask:  binary.LittleEndian.Uint16(payload[12:14]),
		OutProtoMask: binary.LittleEndian.Uint16(payload[14:16]),
	}, nil
}

// CFGNav5 is the UBX-CFG-NAV5 payload's navigation engine settings subset
// this module cares about: the dynamic platform model and fix mode.
type CFGNav5 struct {
	Mask        uint16
	DynModel    byte
	FixMode     byte
	FixedAltM   int32 // cm, scale 0.01
}

// Encode renders a CFG-NAV5 frame. Unused fields in the full 36-byte
// payload are left zero.
func (c CFGNav5) Encode() ([]byte, error) {
	payload := make([]byte, 36)
	binary.LittleEndian.PutUint16(payload[0:2], c.Mask)
	payload[2] = c.DynModel
	payload[3] = c.FixMode
	binary.LittleEndian.PutUint32(payload[4:8], uint32(c.FixedAltM))
	return Encode(ClassCFG, IDCfgNAV5, payload)
}

func decodeCFGNav5(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 8, "CFG-NAV5"); err != nil {
		return nil, err
	}
	return &CFGNav5{
		Mask:      binary.LittleEndian.Uint16(payload[0:2]),
		DynModel:  payload[2],
		FixMode:   payload[3],
		FixedAltM: int32(binary.LittleEndian.Uint32(payload[4:8])),
	}, nil
}

// CFGTMode3 is the UBX-CFG-TMODE3 payload configuring survey-in or a fixed
// base-station position (ECEF, in cm). The 0.1 mm high-precision bytes are
// not decoded and are left zero on encode.
type CFGTMode3 struct {
	Mode      byte
	ECEFXcm   int32
	ECEFYcm   int32
	ECEFZcm   int32
	FixedPosAccuracy uint32
	SvinMinDurSec    uint32
	SvinAccLimit     uint32
}

// Encode renders a CFG-TMODE3 frame.
func (c CFGTMode3) Encode() ([]byte, error) {
	payload := make([]byte, 40)
	payload[2] = c.Mode
	binary.LittleEndian.PutUint32(payload[4:8], uint32(c.ECEFXcm))
	binary.LittleEndian.PutUint32(payload[8:12], uint32(c.ECEFYcm))
	binary.LittleEndian.PutUint32(payload[12:16], uint32(c.ECEFZcm))
	binary.LittleEndian.PutUint32(payload[20:24], c.FixedPosAccuracy)
	binary.LittleEndian.PutUint32(payload[24:28], c.SvinMinDurSec)
	binary.LittleEndian.PutUint32(payload[28:32], c.SvinAccLimit)
	return Encode(ClassCFG, IDCfgTMODE3, payload)
}

func decodeCFGTMode3(payload []byte) (interface{}, error) {
	if err := requireLength(payload, 32, "CFG-TMODE3"); err != nil {
		return nil, err
	}
	return &CFGTMode3{
		Mode:             payload[2],
		ECEFXcm:          int32(binary.LittleEndian.Uint32(payload[4:8])),
		ECEFYcm:          int32(binary.LittleEndian.Uint32(payload[8:12])),
		ECEFZcm:          int32(binary.LittleEndian.Uint32(payload[12:16])),
		FixedPosAccuracy: binary.LittleEndian.Uint32(payload[20:24]),
		SvinMinDurSec:    binary.LittleEndian.Uint32(payload[24:28]),
		SvinAccLimit:     binary.LittleEndian.Uint32(payload[28:32]),
	}, nil
}

func init() {
	register(ClassCFG, IDCfgRATE, decodeCFGRate)
	register(ClassCFG, IDCfgMSG, decodeCFGMsg)
	register(ClassCFG, IDCfgPRT, decodeCFGPrt)
	register(ClassCFG, IDCfgNAV5, decodeCFGNav5)
	register(ClassCFG, IDCfgTMODE3, decodeCFGTMode3)
}

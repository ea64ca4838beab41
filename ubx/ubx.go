// Package ubx implements the U-blox UBX binary protocol: a length-prefixed,
// Fletcher-8 checksummed stream of class/subclass-tagged payloads, plus
// named constructors and decoders for the message subset used to configure
// and read back a receiver (CFG-PRT, CFG-MSG, CFG-RATE, CFG-NAV5,
// CFG-TMODE3, MON-HW, MON-VER, NAV-PVT, NAV-SVIN, NAV-VELNED, NAV-TIMEUTC,
// RXM-RAW/RAWX/SFRB/SFRBX).
package ubx

// Sync1 and Sync2 are the fixed two-byte preamble of every UBX frame.
const (
	Sync1 = 0xB5
	Sync2 = 0x62
)

// Message classes.
const (
	ClassNAV = 0x01
	ClassRXM = 0x02
	ClassCFG = 0x06
	ClassMON = 0x0A
)

// CFG message IDs.
const (
	IDCfgPRT    = 0x00
	IDCfgMSG    = 0x01
	IDCfgRATE   = 0x08
	IDCfgNAV5   = 0x24
	IDCfgTMODE3 = 0x71
)

// NAV message IDs.
const (
	IDNavPVT     = 0x07
	IDNavSVIN    = 0x3B
	IDNavVELNED  = 0x12
	IDNavTIMEUTC = 0x21
)

// MON message IDs.
const (
	IDMonHW  = 0x09
	IDMonVER = 0x04
)

// RXM message IDs.
const (
	IDRxmRAW   = 0x10
	IDRxmRAWX  = 0x15
	IDRxmSFRB  = 0x11
	IDRxmSFRBX = 0x13
)

// maxPayloadLength is the UBX protocol's own payload size ceiling.
const maxPayloadLength = 8192

// key identifies a message type by its class and ID byte pair.
type key struct {
	class byte
	id    byte
}

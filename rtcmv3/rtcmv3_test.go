package rtcmv3

import (
	"math"
	"testing"

	"github.com/goblimey/go-gnss-codec/crc"
)

func TestCRC24QKnownValues(t *testing.T) {
	if got := crc.CRC24Q([]byte{0x00}); got != 0x000000 {
		t.Errorf("CRC24Q(0x00) = %#06x, want 0x000000", got)
	}

	want := crc.CRC24Q([]byte{0xD3, 0x00, 0x00})
	hi, mid, lo := crc.Bytes(want)
	recombined := uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)
	if recombined != want {
		t.Errorf("crc.Bytes does not round-trip CRC24Q(0xD3 0x00 0x00): got %#06x, want %#06x", recombined, want)
	}
}

func frameFor(t *testing.T, body interface{}) []byte {
	t.Helper()
	frame, err := Encode(body)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return frame
}

func feedAll(p *Parser, data []byte) (*Message, error) {
	for i, b := range data {
		msg, err := p.FeedByte(b)
		if msg != nil || err != nil || i == len(data)-1 {
			return msg, err
		}
	}
	return nil, nil
}

func TestChecksumErrorOnCorruptedParity(t *testing.T) {
	frame := frameFor(t, &StationaryAntenna{Type: 1005, StationID: 0, ECEFX: 63781370000, ECEFY: 0, ECEFZ: 0})
	frame[len(frame)-1] ^= 0xFF // corrupt the low CRC byte

	p := NewParser(Options{})
	_, err := feedAll(p, frame)
	cksumErr, ok := err.(*ChecksumError)
	if !ok {
		t.Fatalf("expected *ChecksumError, got %v (%T)", err, err)
	}
	if len(cksumErr.Parity) != 3 {
		t.Errorf("ChecksumError.Parity has %d bytes, want 3", len(cksumErr.Parity))
	}
}

func TestType1005StationaryAntenna(t *testing.T) {
	msg := &StationaryAntenna{
		Type:      1005,
		StationID: 0,
		ECEFX:     6378137 * 1e4,
		ECEFY:     0,
		ECEFZ:     0,
	}
	frame := frameFor(t, msg)

	p := NewParser(Options{})
	decoded, err := feedAll(p, frame)
	if err != nil {
		t.Fatalf("feeding frame: %v", err)
	}
	if decoded == nil {
		t.Fatal("expected a decoded message, got nil")
	}
	got, ok := decoded.Body.(*StationaryAntenna)
	if !ok {
		t.Fatalf("decoded body is %T, want *StationaryAntenna", decoded.Body)
	}
	x, _, _ := got.PositionMetres()
	if math.Abs(x-6378137) > 1e-4 {
		t.Errorf("position.x = %v, want ~6378137 within 1e-4", x)
	}
	if _, present := got.AntennaHeightMetres(); present {
		t.Error("type 1005 decoded with an antenna height, want none")
	}
}

func TestType1006CarriesAntennaHeight(t *testing.T) {
	height := uint(12345)
	msg := &StationaryAntenna{
		Type:          1006,
		StationID:     7,
		ECEFX:         10,
		ECEFY:         20,
		ECEFZ:         30,
		AntennaHeight: &height,
	}
	frame := frameFor(t, msg)

	p := NewParser(Options{})
	decoded, err := feedAll(p, frame)
	if err != nil {
		t.Fatalf("feeding frame: %v", err)
	}
	got := decoded.Body.(*StationaryAntenna)
	h, present := got.AntennaHeightMetres()
	if !present {
		t.Fatal("type 1006 decoded with no antenna height")
	}
	if math.Abs(h-1.2345) > 1e-4 {
		t.Errorf("antenna height = %v, want ~1.2345", h)
	}
}

func TestType1019EphemerisSIConversion(t *testing.T) {
	raw := &GPSEphemeris{
		PRN:        3,
		WeekNumber: 2100,
		SqrtA:      2657540164, // arbitrary raw value within the 32-bit unsigned field
		Omega0:     1200000000,
	}
	frame := frameFor(t, raw)

	p := NewParser(Options{})
	decoded, err := feedAll(p, frame)
	if err != nil {
		t.Fatalf("feeding frame: %v", err)
	}
	got := decoded.Body.(*GPSEphemeris)
	if got.PRN != raw.PRN || got.WeekNumber != raw.WeekNumber {
		t.Errorf("round trip changed PRN/week: got %+v", got)
	}

	si := got.SI()
	wantSqrtA := float64(raw.SqrtA) / p2(19)
	if math.Abs(si.SqrtA-wantSqrtA) > 1e-9 {
		t.Errorf("SI.SqrtA = %v, want %v", si.SqrtA, wantSqrtA)
	}
	wantOmega0 := float64(raw.Omega0) * gpsPi / p2(31)
	if math.Abs(si.Omega0-wantOmega0) > 1e-9 {
		t.Errorf("SI.Omega0 = %v, want %v", si.Omega0, wantOmega0)
	}
}

func TestUnknownTypeRoundTripsRawBytes(t *testing.T) {
	payload := []byte{0b00000100, 0b00000000, 0xAB, 0xCD, 0xEF} // type 1024 (unregistered) + arbitrary bytes
	frame := make([]byte, 0, 3+len(payload)+3)
	frame = append(frame, Preamble, byte(len(payload)>>8)&0x03, byte(len(payload)))
	frame = append(frame, payload...)
	sum := crc.CRC24Q(frame)
	hi, mid, lo := crc.Bytes(sum)
	frame = append(frame, hi, mid, lo)

	p := NewParser(Options{})
	decoded, err := feedAll(p, frame)
	if err != nil {
		t.Fatalf("feeding frame: %v", err)
	}
	unknown, ok := decoded.Body.(*UnknownBody)
	if !ok {
		t.Fatalf("decoded body is %T, want *UnknownBody", decoded.Body)
	}
	if string(unknown.Payload) != string(payload) {
		t.Errorf("UnknownBody.Payload = %x, want %x", unknown.Payload, payload)
	}

	reencoded := frameFor(t, unknown)
	if string(reencoded) != string(frame) {
		t.Errorf("re-encoding an UnknownBody changed the frame:\n got  %x\n want %x", reencoded, frame)
	}
}

func TestSingleSatelliteSingleSignalMSM(t *testing.T) {
	msg := &MSMMessage{
		Type:          1074,
		Constellation: "GPS",
		Header: &msmHeader{
			StationID:     42,
			SatelliteMask: 1 << 63, // satellite 1
			SignalMask:    1 << 31, // signal 1
			CellMask:      1,       // the one satellite/signal cell
			Satellites:    []uint{1},
			Signals:       []uint{1},
			Cells:         [][]bool{{true}},
		},
		Satellites: []MSMSatellite{{ID: "G01", RangeWholeMillis: 80, RangeFractionalMillis: 512}},
		Signals: []MSMSignal{{
			SatelliteID:      "G01",
			SignalID:         1,
			PseudorangeDelta: 100,
			PhaseRangeDelta:  -200,
			CNR:              45,
		}},
	}
	frame := frameFor(t, msg)

	p := NewParser(Options{})
	decoded, err := feedAll(p, frame)
	if err != nil {
		t.Fatalf("feeding frame: %v", err)
	}
	got := decoded.Body.(*MSMMessage)
	if len(got.Satellites) != 1 || got.Satellites[0].ID != "G01" {
		t.Fatalf("satellites = %+v, want one G01 entry", got.Satellites)
	}
	if len(got.Signals) != 1 {
		t.Fatalf("signals = %+v, want exactly one cell", got.Signals)
	}
	max, found := got.MaxCNR("G01")
	if !found || max != 45 {
		t.Errorf("MaxCNR(G01) = (%v, %v), want (45, true)", max, found)
	}
}

func TestRecoverSkipsToNextPreambleAfterChecksumFailure(t *testing.T) {
	good := frameFor(t, &StationaryAntenna{Type: 1005, StationID: 1, ECEFX: 100, ECEFY: 200, ECEFZ: 300})
	corrupted := append([]byte(nil), good...)
	corrupted[len(corrupted)-1] ^= 0xFF

	stream := append(corrupted, good...)

	p := NewParser(Options{})
	var got *Message
	for _, b := range stream {
		msg, err := p.FeedByte(b)
		if msg != nil {
			got = msg
			break
		}
		if cksumErr, ok := err.(*ChecksumError); ok {
			if recovered, _ := cksumErr.Recover(p); recovered != nil {
				got = recovered
				break
			}
		}
	}
	if got == nil {
		t.Fatal("expected recovery to find the second, valid frame")
	}
	if got.Body.(*StationaryAntenna).StationID != 1 {
		t.Errorf("recovered message has station %d, want 1", got.Body.(*StationaryAntenna).StationID)
	}
}

func TestType1011GLONASSNonExtendedHasL2CarriesCNR(t *testing.T) {
	cnr1 := 42.0
	cnr2 := 37.5
	msg := &Observation{
		Type:      1011,
		StationID: 9,
		Satellites: []ObservationSatellite{{
			PRN:          5,
			Pseudorange1: 1000,
			CNR1:         &cnr1,
			CNR2:         &cnr2,
		}},
	}
	frame := frameFor(t, msg)

	p := NewParser(Options{})
	decoded, err := feedAll(p, frame)
	if err != nil {
		t.Fatalf("feeding frame: %v", err)
	}
	got := decoded.Body.(*Observation)
	if len(got.Satellites) != 1 {
		t.Fatalf("satellites = %+v, want exactly one", got.Satellites)
	}
	sat := got.Satellites[0]
	if sat.CNR1 == nil || math.Abs(*sat.CNR1-cnr1) > 0.25 {
		t.Errorf("CNR1 = %v, want ~%v (type 1011's documented divergence keeps CNR present)", sat.CNR1, cnr1)
	}
	if sat.CNR2 == nil || math.Abs(*sat.CNR2-cnr2) > 0.25 {
		t.Errorf("CNR2 = %v, want ~%v", sat.CNR2, cnr2)
	}
}

func TestMaxPacketLengthResyncs(t *testing.T) {
	p := NewParser(Options{MaxPacketLength: 10})
	frame := frameFor(t, &StationaryAntenna{Type: 1005, StationID: 5, ECEFX: 1, ECEFY: 1, ECEFZ: 1})
	if len(frame) <= 10 {
		t.Fatalf("test fixture frame is only %d bytes, need > 10 to exercise the guard", len(frame))
	}
	for _, b := range frame {
		if msg, _ := p.FeedByte(b); msg != nil {
			t.Fatal("expected the over-length frame to be rejected, not decoded")
		}
	}
	if p.state != stateStart {
		t.Errorf("parser state = %v after resync, want stateStart", p.state)
	}
}

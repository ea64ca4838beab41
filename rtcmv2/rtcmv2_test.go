package rtcmv2

import (
	"testing"
)

func TestEncodeDecodeType3RoundTrip(t *testing.T) {
	packet := &ReferenceStationPacket{
		Header: Header{PacketType: 3, StationID: 7, ModifiedZCount: 100},
		X:      6378137.0,
		Y:      10.0,
		Z:      -20.0,
	}

	encoder := NewEncoder()
	frame, err := encoder.Encode(packet, nil)
	if err != nil {
		t.Fatalf("unexpected error encoding: %v", err)
	}

	parser := NewParser()
	messages := parser.Feed(frame)
	if len(messages) != 1 {
		t.Fatalf("want 1 decoded message, got %d", len(messages))
	}

	got, ok := messages[0].Readable.(*ReferenceStationPacket)
	if !ok {
		t.Fatalf("want *ReferenceStationPacket, got %T", messages[0].Readable)
	}
	if got.StationID != packet.StationID {
		t.Errorf("station id: want %d got %d", packet.StationID, got.StationID)
	}
	if diff := got.X - packet.X; diff > 0.01 || diff < -0.01 {
		t.Errorf("x: want %v got %v", packet.X, got.X)
	}
}

func TestEncodeDecodeType1RoundTrip(t *testing.T) {
	packet := &FullCorrectionsPacket{
		Header: Header{PacketType: 1, StationID: 3, ModifiedZCount: 42},
		Corrections: []CorrectionData{
			{SVID: 5, PRC: 123.0, PRRC: 4.0, IODE: 9},
			{SVID: 12, PRC: -456.0, PRRC: -2.0, IODE: 200},
		},
	}

	encoder := NewEncoder()
	frame, err := encoder.Encode(packet, nil)
	if err != nil {
		t.Fatalf("unexpected error encoding: %v", err)
	}

	parser := NewParser()
	messages := parser.Feed(frame)
	if len(messages) != 1 {
		t.Fatalf("want 1 decoded message, got %d", len(messages))
	}

	got, ok := messages[0].Readable.(*FullCorrectionsPacket)
	if !ok {
		t.Fatalf("want *FullCorrectionsPacket, got %T", messages[0].Readable)
	}
	if got.NumSatellites() != 2 {
		t.Fatalf("want 2 satellites, got %d", got.NumSatellites())
	}
	if got.Corrections[0].SVID != 5 || got.Corrections[1].SVID != 12 {
		t.Errorf("unexpected svids: %+v", got.Corrections)
	}
}

func TestModifiedZCountFromTimeOfWeek(t *testing.T) {
	packet := &ReferenceStationPacket{Header: Header{PacketType: 3, StationID: 1, ModifiedZCount: -1}}
	encoder := NewEncoder()
	tow := 3601.2
	frame, err := encoder.Encode(packet, &tow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parser := NewParser()
	messages := parser.Feed(frame)
	if len(messages) != 1 {
		t.Fatalf("want 1 message, got %d", len(messages))
	}
	want := 2 // round((3601.2 - 3600) / 0.6) = round(2.0) = 2
	if messages[0].ModifiedZCount != want {
		t.Errorf("want modified z count %d got %d", want, messages[0].ModifiedZCount)
	}
}

func TestEncodeWithoutTimeOfWeekOrModifiedZCountIsAnError(t *testing.T) {
	packet := &ReferenceStationPacket{Header: Header{PacketType: 3, StationID: 1, ModifiedZCount: -1}}
	encoder := NewEncoder()
	if _, err := encoder.Encode(packet, nil); err == nil {
		t.Error("want an error, got nil")
	}
}

func TestRejectsByteWithWrongTopBits(t *testing.T) {
	parser := NewParser()
	msg, err := parser.FeedByte(0xFF)
	if msg != nil || err != nil {
		t.Errorf("want (nil, nil) for a malformed byte, got (%v, %v)", msg, err)
	}
}

func TestCorrectionDataScaleFactor(t *testing.T) {
	c := CorrectionData{PRC: 100000, PRRC: 1}
	if c.ScaleFactor() == 0 {
		t.Error("want a non-zero scale factor for a PRC value outside int16 range")
	}
	scaled := c.ScaledPRC()
	if scaled > 32767 || scaled < -32768 {
		t.Errorf("scaled PRC %d out of int16 range", scaled)
	}
}

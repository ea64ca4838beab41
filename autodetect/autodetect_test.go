package autodetect

import (
	"testing"

	"github.com/goblimey/go-gnss-codec/rtcmv3"
	"github.com/goblimey/go-gnss-codec/ubx"
)

func rtcmv3Frame(t *testing.T) []byte {
	t.Helper()
	frame, err := rtcmv3.Encode(&rtcmv3.StationaryAntenna{Type: 1005, StationID: 1, ECEFX: 1, ECEFY: 1, ECEFZ: 1})
	if err != nil {
		t.Fatalf("rtcmv3.Encode: %v", err)
	}
	return frame
}

func ubxFrame(t *testing.T) []byte {
	t.Helper()
	frame, err := ubx.Encode(ubx.ClassCFG, ubx.IDCfgMSG, []byte{0x01, 0x02, 0x03})
	if err != nil {
		t.Fatalf("ubx.Encode: %v", err)
	}
	return frame
}

const nmeaLine = "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n"

// TestSelectsFirstSourceToFullyValidate feeds a stream that starts with
// bytes belonging to a source that never completes (a UBX sync pair with
// no valid frame behind it) followed by one complete, valid RTCM v3
// frame. Only the RTCM v3 frame ever validates, so it's the one the
// parser settles on, even though UBX-looking bytes arrived first.
func TestSelectsFirstSourceToFullyValidate(t *testing.T) {
	p := NewParser(Options{})
	// A UBX sync pair followed by a class/id and a payload length (0xFFFF)
	// over the 8192-byte UBX maximum, so the UBX subparser drops it and
	// never completes a frame.
	stream := append([]byte{ubx.Sync1, ubx.Sync2, 0x01, 0x01, 0xFF, 0xFF}, rtcmv3Frame(t)...)

	messages := p.Feed(stream)
	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
	if messages[0].Source != SourceRTCMv3 {
		t.Fatalf("decoded message came from %v, want rtcmv3", messages[0].Source)
	}
	if p.Chosen() != SourceRTCMv3 {
		t.Errorf("Chosen() = %v after RTCM v3 validated, want rtcmv3", p.Chosen())
	}
}

func TestOnceChosenOtherSubparsersAreExcluded(t *testing.T) {
	p := NewParser(Options{})
	v3 := rtcmv3Frame(t)
	p.Feed(v3)
	if p.Chosen() != SourceRTCMv3 {
		t.Fatalf("Chosen() = %v, want rtcmv3", p.Chosen())
	}

	u := ubxFrame(t)
	messages := p.Feed(u)
	for _, m := range messages {
		if m.Source == SourceUBX {
			t.Fatal("a UBX frame decoded after RTCM v3 claimed exclusivity")
		}
	}
}

func TestNMEANeverClaimsExclusivity(t *testing.T) {
	p := NewParser(Options{})
	messages := p.Feed([]byte(nmeaLine))
	if len(messages) != 1 || messages[0].Source != SourceNMEA {
		t.Fatalf("expected a single NMEA message, got %+v", messages)
	}
	if p.Chosen() != SourceNone {
		t.Errorf("Chosen() = %v after an NMEA sentence, want none", p.Chosen())
	}

	v3 := rtcmv3Frame(t)
	messages = p.Feed(v3)
	if len(messages) != 1 || messages[0].Source != SourceRTCMv3 {
		t.Fatalf("expected RTCM v3 to still be selectable after NMEA traffic, got %+v", messages)
	}
}

func TestResetReturnsToUndetermined(t *testing.T) {
	p := NewParser(Options{})
	p.Feed(rtcmv3Frame(t))
	if p.Chosen() == SourceNone {
		t.Fatal("expected a subparser to have been chosen")
	}
	p.Reset()
	if p.Chosen() != SourceNone {
		t.Errorf("Chosen() = %v after Reset, want none", p.Chosen())
	}

	u := ubxFrame(t)
	messages := p.Feed(u)
	if len(messages) != 1 || messages[0].Source != SourceUBX {
		t.Fatalf("expected UBX to be selectable again after Reset, got %+v", messages)
	}
}

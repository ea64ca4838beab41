package nmea

import (
	"testing"
	"time"

	"github.com/goblimey/go-gnss-codec/geodesy"
)

func TestChecksumKnownSentence(t *testing.T) {
	// GPGGA body from a well-known reference sentence.
	body := "GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,"
	if got := Checksum(body); got != "47" {
		t.Errorf("Checksum(%q) = %q, want %q", body, got, "47")
	}
}

func TestParseRoundTripsFields(t *testing.T) {
	line := "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"
	s, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Type != "GPGGA" {
		t.Errorf("Type = %q, want GPGGA", s.Type)
	}
	if len(s.Fields) != 14 {
		t.Fatalf("Fields = %v, want 14 entries", s.Fields)
	}
	if s.Fields[0] != "123519" {
		t.Errorf("Fields[0] = %q, want 123519", s.Fields[0])
	}
}

func TestParseRejectsBadChecksum(t *testing.T) {
	line := "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*00"
	_, err := Parse(line)
	if _, ok := err.(*ErrChecksumMismatch); !ok {
		t.Fatalf("Parse returned %v (%T), want *ErrChecksumMismatch", err, err)
	}
}

func TestParseRejectsMalformedLine(t *testing.T) {
	if _, err := Parse("not a sentence"); err == nil {
		t.Fatal("expected an error for a line with no leading $")
	}
	if _, err := Parse("$GPGGA,no,checksum,marker"); err == nil {
		t.Fatal("expected an error for a line with no * checksum marker")
	}
}

func TestFramerSplitsOnLineEndings(t *testing.T) {
	line := "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n"
	f := NewFramer()
	sentences := f.Feed([]byte(line))
	if len(sentences) != 1 {
		t.Fatalf("got %d sentences, want 1", len(sentences))
	}
	if sentences[0].Type != "GPGGA" {
		t.Errorf("Type = %q, want GPGGA", sentences[0].Type)
	}
}

func TestFramerIgnoresLeadingGarbageBytes(t *testing.T) {
	f := NewFramer()
	garbage := []byte{0xD3, 0x01, 0xFF}
	stream := append(append([]byte(nil), garbage...), []byte("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47\r\n")...)
	sentences := f.Feed(stream)
	if len(sentences) != 1 {
		t.Fatalf("got %d sentences, want 1", len(sentences))
	}
}

func TestParseNMEADegrees(t *testing.T) {
	lat, err := ParseNMEADegrees("4807.038", "N")
	if err != nil {
		t.Fatalf("ParseNMEADegrees: %v", err)
	}
	want := 48 + 7.038/60
	if diff := lat - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("lat = %v, want %v", lat, want)
	}

	lon, err := ParseNMEADegrees("01131.000", "W")
	if err != nil {
		t.Fatalf("ParseNMEADegrees: %v", err)
	}
	wantLon := -(11 + 31.0/60)
	if diff := lon - wantLon; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("lon = %v, want %v", lon, wantLon)
	}
}

func TestFormatGGAThenParseGGARoundTrips(t *testing.T) {
	amsl := 123.4
	pos := geodesy.GPSCoordinate{Lat: 48.117300, Lon: -11.516667, AMSL: &amsl}
	at := time.Date(2026, 7, 31, 14, 28, 1, 0, time.UTC)

	line := FormatGGA(at, pos, 8, 0.9)
	s, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse(FormatGGA(...)): %v", err)
	}
	gga, err := ParseGGA(s)
	if err != nil {
		t.Fatalf("ParseGGA: %v", err)
	}
	if gga.NumSatellites != 8 {
		t.Errorf("NumSatellites = %d, want 8", gga.NumSatellites)
	}
	if diff := gga.Position.Lat - pos.Lat; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("round-tripped lat = %v, want ~%v", gga.Position.Lat, pos.Lat)
	}
	if diff := gga.Position.Lon - pos.Lon; diff > 1e-3 || diff < -1e-3 {
		t.Errorf("round-tripped lon = %v, want ~%v", gga.Position.Lon, pos.Lon)
	}
}

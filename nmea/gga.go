package nmea

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goblimey/go-gnss-codec/geodesy"
)

// GGA is the "Global Positioning System Fix Data" sentence: the one the
// NTRIP GGA position handshake sends to a caster so it can pick the
// nearest mount point.
type GGA struct {
	Time          string // HHMMSS.ff
	Position      geodesy.GPSCoordinate
	FixQuality    int
	NumSatellites int
	HDOP          float64
}

// ParseGGA parses a GGA sentence already split by Parse.
func ParseGGA(s *Sentence) (*GGA, error) {
	if len(s.Fields) < 9 {
		return nil, fmt.Errorf("nmea: GGA sentence has %d fields, need at least 9", len(s.Fields))
	}

	lat, err := ParseNMEADegrees(s.Fields[1], s.Fields[2])
	if err != nil && s.Fields[1] != "" {
		return nil, err
	}
	lon, err := ParseNMEADegrees(s.Fields[3], s.Fields[4])
	if err != nil && s.Fields[3] != "" {
		return nil, err
	}

	quality, _ := strconv.Atoi(s.Fields[5])
	numSats, _ := strconv.Atoi(s.Fields[6])
	hdop, _ := strconv.ParseFloat(s.Fields[7], 64)

	gga := &GGA{
		Time:          s.Fields[0],
		Position:      geodesy.GPSCoordinate{Lat: lat, Lon: lon},
		FixQuality:    quality,
		NumSatellites: numSats,
		HDOP:          hdop,
	}
	if s.Fields[8] != "" {
		amsl, err := strconv.ParseFloat(s.Fields[8], 64)
		if err == nil {
			gga.Position.AMSL = &amsl
		}
	}
	return gga, nil
}

// FormatGGA renders position as a GGA sentence, with the fix-type, satellite
// count and HDOP fields the NTRIP handshake needs. at is the UTC instant
// the fix was taken.
func FormatGGA(at time.Time, position geodesy.GPSCoordinate, numSatellites int, hdop float64) string {
	latStr, latHemi := degreesToNMEA(position.Lat, 2, "N", "S")
	lonStr, lonHemi := degreesToNMEA(position.Lon, 3, "E", "W")

	altitude := 0.0
	if position.AMSL != nil {
		altitude = *position.AMSL
	}

	body := fmt.Sprintf(
		"GPGGA,%s,%s,%s,%s,%s,1,%02d,%.1f,%.2f,M,,,0.0,0000",
		at.UTC().Format("150405.00"),
		latStr, latHemi,
		lonStr, lonHemi,
		numSatellites, hdop, altitude,
	)
	return fmt.Sprintf("$%s*%s\r\n", body, Checksum(body))
}

package geodesy

import (
	"errors"
	"math"
)

// ErrMissingAMSL is returned when a geodetic-to-ECEF conversion is attempted
// on a coordinate that has no altitude above mean sea level.
var ErrMissingAMSL = errors.New("geodesy: GPS coordinate needs an altitude above mean sea level")

// ECEFTransform converts between GPSCoordinate and ECEFCoordinate for a
// given reference ellipsoid. The zero value uses the WGS-84 ellipsoid.
type ECEFTransform struct {
	EquatorialRadius float64
	PolarRadius      float64

	eqRadiusSq          float64
	polarRadiusSq       float64
	eccSq               float64
	epSqTimesPolarRad   float64
	eccSqTimesEqRadius  float64
	recalculated        bool
}

// NewECEFTransform returns a transform for the WGS-84 ellipsoid.
func NewECEFTransform() *ECEFTransform {
	t := &ECEFTransform{
		EquatorialRadius: WGS84.EquatorialRadiusMeters,
		PolarRadius:      WGS84.PolarRadiusMeters,
	}
	t.recalculate()
	return t
}

func (t *ECEFTransform) recalculate() {
	t.eqRadiusSq = t.EquatorialRadius * t.EquatorialRadius
	t.polarRadiusSq = t.PolarRadius * t.PolarRadius
	t.eccSq = 1 - t.polarRadiusSq/t.eqRadiusSq
	t.epSqTimesPolarRad = (t.eqRadiusSq - t.polarRadiusSq) / t.PolarRadius
	t.eccSqTimesEqRadius = t.EquatorialRadius - t.polarRadiusSq/t.EquatorialRadius
	t.recalculated = true
}

func (t *ECEFTransform) ensure() {
	if !t.recalculated {
		if t.EquatorialRadius == 0 {
			t.EquatorialRadius = WGS84.EquatorialRadiusMeters
			t.PolarRadius = WGS84.PolarRadiusMeters
		}
		t.recalculate()
	}
}

// ToECEF converts a geodetic coordinate to ECEF. The coordinate must carry
// an altitude above mean sea level.
func (t *ECEFTransform) ToECEF(coord GPSCoordinate) (ECEFCoordinate, error) {
	t.ensure()
	if coord.AMSL == nil {
		return ECEFCoordinate{}, ErrMissingAMSL
	}

	lat := coord.Lat * math.Pi / 180
	lon := coord.Lon * math.Pi / 180
	height := *coord.AMSL

	n := t.EquatorialRadius / math.Sqrt(1-t.eccSq*sinSq(lat))
	cosLat := math.Cos(lat)
	x := (n + height) * cosLat * math.Cos(lon)
	y := (n + height) * cosLat * math.Sin(lon)
	z := (n*(1-t.eccSq) + height) * math.Sin(lat)
	return ECEFCoordinate{X: x, Y: y, Z: z}, nil
}

// ToGPS converts an ECEF coordinate to geodetic latitude/longitude/altitude
// above mean sea level, using the closed-form single-pass formula (no
// iteration).
func (t *ECEFTransform) ToGPS(coord ECEFCoordinate) GPSCoordinate {
	t.ensure()
	x, y, z := coord.X, coord.Y, coord.Z
	p := math.Sqrt(x*x + y*y)
	th := math.Atan2(t.EquatorialRadius*z, t.PolarRadius*p)
	lon := math.Atan2(y, x)
	lat := math.Atan2(
		z+t.epSqTimesPolarRad*cube(math.Sin(th)),
		p-t.eccSqTimesEqRadius*cube(math.Cos(th)),
	)
	n := t.EquatorialRadius / math.Sqrt(1-t.eccSq*sinSq(lat))
	amsl := p/math.Cos(lat) - n

	latDeg := lat * 180 / math.Pi
	lonDeg := lon * 180 / math.Pi
	return GPSCoordinate{Lat: latDeg, Lon: lonDeg, AMSL: &amsl}
}

func sinSq(radians float64) float64 {
	s := math.Sin(radians)
	return s * s
}

func cube(v float64) float64 {
	return v * v * v
}

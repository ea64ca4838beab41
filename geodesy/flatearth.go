package geodesy

import (
	"fmt"
	"math"
	"strings"
)

// AxisConvention names the orientation of a local tangent-plane frame's
// axes relative to North/East/Up.
type AxisConvention string

const (
	NEU AxisConvention = "neu"
	NWU AxisConvention = "nwu"
	NED AxisConvention = "ned"
	NWD AxisConvention = "nwd"
)

func normalizeAxisConvention(t string) (AxisConvention, error) {
	lower := strings.ToLower(t)
	switch AxisConvention(lower) {
	case NEU, NWU, NED, NWD:
		return AxisConvention(lower), nil
	default:
		return "", fmt.Errorf("geodesy: unknown coordinate system type: %q", t)
	}
}

// FlatEarthTransformOptions configures a FlatEarthTransform.
type FlatEarthTransformOptions struct {
	Origin      GPSCoordinate
	Orientation float64 // degrees, clockwise from North
	Type        string  // "neu", "nwu", "ned" or "nwd"; default "nwu"
}

// FlatEarthTransform converts between GPSCoordinate and FlatEarthCoordinate
// around a fixed origin, with a configurable clockwise rotation from North
// and a configurable axis convention.
type FlatEarthTransform struct {
	origin      GPSCoordinate
	orientation float64
	axisType    AxisConvention

	r1                      float64
	r2OverCosOriginLat      float64
	sinAlpha, cosAlpha      float64
	xmul, ymul, zmul        float64
}

// NewFlatEarthTransform builds a transform from the given options. Type
// defaults to "nwu" if empty.
func NewFlatEarthTransform(opts FlatEarthTransformOptions) (*FlatEarthTransform, error) {
	typeName := opts.Type
	if typeName == "" {
		typeName = string(NWU)
	}
	axis, err := normalizeAxisConvention(typeName)
	if err != nil {
		return nil, err
	}
	t := &FlatEarthTransform{
		origin:      opts.Origin,
		orientation: opts.Orientation,
		axisType:    axis,
	}
	t.recalculate()
	return t, nil
}

func (t *FlatEarthTransform) recalculate() {
	earthRadius := WGS84.EquatorialRadiusMeters
	eccSq := WGS84.EccentricitySquared

	originLat := t.origin.Lat * math.Pi / 180

	x := 1 - eccSq*sinSq(originLat)
	t.r1 = earthRadius * (1 - eccSq) / math.Pow(x, 1.5)
	t.r2OverCosOriginLat = earthRadius / math.Sqrt(x) * math.Cos(originLat)

	alpha := t.orientation * math.Pi / 180
	t.sinAlpha = math.Sin(alpha)
	t.cosAlpha = math.Cos(alpha)

	t.xmul = 1
	t.ymul = -1
	if len(t.axisType) == 3 && t.axisType[1] == 'e' {
		t.ymul = 1
	}
	t.zmul = -1
	if len(t.axisType) == 3 && t.axisType[2] == 'u' {
		t.zmul = 1
	}
}

// ToFlatEarth converts a GPS coordinate to the local tangent-plane frame.
func (t *FlatEarthTransform) ToFlatEarth(coord GPSCoordinate) FlatEarthCoordinate {
	dLat := (coord.Lat - t.origin.Lat) * math.Pi / 180
	dLon := (coord.Lon - t.origin.Lon) * math.Pi / 180

	x := dLat * t.r1
	y := dLon * t.r2OverCosOriginLat

	rx := x*t.cosAlpha + y*t.sinAlpha
	ry := -x*t.sinAlpha + y*t.cosAlpha

	return FlatEarthCoordinate{
		X:    rx * t.xmul,
		Y:    ry * t.ymul,
		AMSL: scaleAltitude(coord.AMSL, t.zmul),
		AHL:  scaleAltitude(coord.AHL, t.zmul),
		AGL:  scaleAltitude(coord.AGL, t.zmul),
	}
}

// ToGPS converts a local tangent-plane coordinate back to GPS coordinates.
func (t *FlatEarthTransform) ToGPS(coord FlatEarthCoordinate) GPSCoordinate {
	x := coord.X * t.xmul
	y := coord.Y * t.ymul

	rx := x*t.cosAlpha - y*t.sinAlpha
	ry := x*t.sinAlpha + y*t.cosAlpha

	latDeg := (rx / t.r1) * 180 / math.Pi
	lonDeg := (ry / t.r2OverCosOriginLat) * 180 / math.Pi

	return GPSCoordinate{
		Lat:  latDeg + t.origin.Lat,
		Lon:  lonDeg + t.origin.Lon,
		AMSL: scaleAltitude(coord.AMSL, t.zmul),
		AHL:  scaleAltitude(coord.AHL, t.zmul),
		AGL:  scaleAltitude(coord.AGL, t.zmul),
	}
}

func scaleAltitude(v *float64, mul float64) *float64 {
	if v == nil {
		return nil
	}
	scaled := *v * mul
	return &scaled
}

// Package geodesy implements the WGS-84 ellipsoid model, conversions
// between ECEF, geodetic and local tangent-plane ("flat Earth")
// coordinates, and the haversine great-circle distance.
package geodesy

import "math"

// WGS84 holds the defining and derived parameters of the WGS-84 ellipsoid.
var WGS84 = struct {
	EquatorialRadiusMeters float64
	InverseFlattening      float64
	Flattening             float64
	Eccentricity           float64
	EccentricitySquared    float64
	PolarRadiusMeters      float64
	MeanRadiusMeters       float64
}{
	EquatorialRadiusMeters: 6378137.0,
	InverseFlattening:      298.257223563,
}

func init() {
	w := &WGS84
	w.Flattening = 1.0 / w.InverseFlattening
	w.Eccentricity = math.Sqrt(w.Flattening * (2 - w.Flattening))
	w.EccentricitySquared = w.Eccentricity * w.Eccentricity
	w.PolarRadiusMeters = w.EquatorialRadiusMeters * (1 - w.Flattening)
	w.MeanRadiusMeters = (2*w.EquatorialRadiusMeters + w.PolarRadiusMeters) / 3
}

// GPSPi is the value of pi used in GPS ephemeris scale factors, matching
// the constant the receiver firmware itself uses rather than math.Pi.
const GPSPi = 3.1415926535898

// SpeedOfLightMetersPerSec is the speed of light in metres per second.
const SpeedOfLightMetersPerSec = 299792458.0

// SpeedOfLightKmPerSec is the speed of light in kilometres per second.
const SpeedOfLightKmPerSec = 299792.458

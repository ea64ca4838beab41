package geodesy

import "math"

// Haversine returns the great-circle distance between two coordinates, in
// metres, using the ellipsoid's mean radius.
func Haversine(first, second GPSCoordinate) float64 {
	return HaversineWithRadius(first, second, WGS84.MeanRadiusMeters)
}

// HaversineWithRadius is Haversine with an explicit sphere radius, in
// metres.
func HaversineWithRadius(first, second GPSCoordinate, radiusMeters float64) float64 {
	firstLat := first.Lat * math.Pi / 180
	secondLat := second.Lat * math.Pi / 180
	latDiff := firstLat - secondLat
	lonDiff := (first.Lon - second.Lon) * math.Pi / 180

	d := sinSq(latDiff*0.5) + math.Cos(firstLat)*math.Cos(secondLat)*sinSq(lonDiff*0.5)
	return 2 * radiusMeters * math.Asin(math.Sqrt(d))
}

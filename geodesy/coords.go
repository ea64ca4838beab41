package geodesy

import (
	"encoding/json"
	"fmt"
)

// Vector3D is a simple three-component vector, shared by the XYZ/NED
// velocity types below.
type Vector3D struct {
	X, Y, Z float64
}

// VelocityNED is a north/east/down velocity vector, in metres per second.
type VelocityNED struct {
	Vector3D
}

// North is an alias for the X component.
func (v VelocityNED) North() float64 { return v.X }

// East is an alias for the Y component.
func (v VelocityNED) East() float64 { return v.Y }

// Down is an alias for the Z component.
func (v VelocityNED) Down() float64 { return v.Z }

// VelocityXYZ is a velocity vector in an arbitrary Cartesian frame, in
// metres per second. Its JSON form stores mm/s integers.
type VelocityXYZ struct {
	Vector3D
}

// MarshalJSON renders the velocity as `[x*1e3, y*1e3, z*1e3]` millimetres
// per second, matching the wire convention used for ECEF positions.
func (v VelocityXYZ) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int64{
		roundTo1e3(v.X), roundTo1e3(v.Y), roundTo1e3(v.Z),
	})
}

func roundTo1e3(v float64) int64 {
	if v >= 0 {
		return int64(v*1e3 + 0.5)
	}
	return int64(v*1e3 - 0.5)
}

func roundTo1e7(v float64) int64 {
	if v >= 0 {
		return int64(v*1e7 + 0.5)
	}
	return int64(v*1e7 - 0.5)
}

// ECEFCoordinate is an Earth-Centred, Earth-Fixed Cartesian position in
// metres. Its JSON form stores mm integers.
type ECEFCoordinate struct {
	X, Y, Z float64
}

// MarshalJSON renders the ECEF position as `[x*1e3, y*1e3, z*1e3]`
// millimetre integers.
func (e ECEFCoordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int64{roundTo1e3(e.X), roundTo1e3(e.Y), roundTo1e3(e.Z)})
}

// UnmarshalJSON parses the `[x, y, z]` millimetre-integer form.
func (e *ECEFCoordinate) UnmarshalJSON(data []byte) error {
	var raw [3]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.X, e.Y, e.Z = raw[0]*1e-3, raw[1]*1e-3, raw[2]*1e-3
	return nil
}

// GPSCoordinate is a latitude/longitude position with up to three
// independent, optional altitude channels: above mean sea level, above
// home level, and above ground level.
type GPSCoordinate struct {
	Lat, Lon float64
	AMSL     *float64
	AHL      *float64
	AGL      *float64
}

// Format renders the coordinate the way a human-facing log line would.
func (g GPSCoordinate) Format() string {
	switch {
	case g.AMSL != nil:
		return fmt.Sprintf("%.7f°, %.7f°, %.1fm AMSL", g.Lat, g.Lon, *g.AMSL)
	case g.AGL != nil:
		return fmt.Sprintf("%.7f°, %.7f°, %.1fm AGL", g.Lat, g.Lon, *g.AGL)
	default:
		return fmt.Sprintf("%.7f°, %.7f°", g.Lat, g.Lon)
	}
}

// MarshalJSON renders `[lat*1e7, lon*1e7, amsl*1e3|null, ahl*1e3|null,
// agl*1e3]`. The 5th element is present only when AGL is set.
func (g GPSCoordinate) MarshalJSON() ([]byte, error) {
	out := []interface{}{
		roundTo1e7(g.Lat),
		roundTo1e7(g.Lon),
		scaledOrNull(g.AMSL),
		scaledOrNull(g.AHL),
	}
	if g.AGL != nil {
		out = append(out, roundTo1e3(*g.AGL))
	}
	return json.Marshal(out)
}

func scaledOrNull(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return roundTo1e3(*v)
}

// UnmarshalJSON parses the GPSCoordinate wire form. A trailing nil or
// absent element leaves the corresponding altitude unset.
func (g *GPSCoordinate) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 2 {
		return fmt.Errorf("geodesy: GPS coordinate JSON needs at least lat and lon, got %d elements", len(raw))
	}
	if raw[0] == nil || raw[1] == nil {
		return fmt.Errorf("geodesy: GPS coordinate lat/lon must not be null")
	}
	g.Lat = *raw[0] * 1e-7
	g.Lon = *raw[1] * 1e-7
	g.AMSL, g.AHL, g.AGL = nil, nil, nil
	if len(raw) > 2 && raw[2] != nil {
		v := *raw[2] * 1e-3
		g.AMSL = &v
	}
	if len(raw) > 3 && raw[3] != nil {
		v := *raw[3] * 1e-3
		g.AHL = &v
	}
	if len(raw) > 4 && raw[4] != nil {
		v := *raw[4] * 1e-3
		g.AGL = &v
	}
	return nil
}

// FlatEarthCoordinate is a position in a local tangent-plane frame, in
// metres.
type FlatEarthCoordinate struct {
	X, Y float64
	AMSL *float64
	AHL  *float64
	AGL  *float64
}

// MarshalJSON renders `[x*1e3, y*1e3, amsl*1e3|null, ahl*1e3|null,
// agl*1e3]`, matching GPSCoordinate's altitude-channel convention.
func (f FlatEarthCoordinate) MarshalJSON() ([]byte, error) {
	out := []interface{}{
		roundTo1e3(f.X),
		roundTo1e3(f.Y),
		scaledOrNull(f.AMSL),
		scaledOrNull(f.AHL),
	}
	if f.AGL != nil {
		out = append(out, roundTo1e3(*f.AGL))
	}
	return json.Marshal(out)
}

// Package geo provides coordinate conversions and distance/angle derivations
// on a spherical-Earth model. All functions are pure and stateless.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the spherical model.
const EarthRadiusKm = 6371.0

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// ToCartesian converts geodetic coordinates to Earth-centered Cartesian
// coordinates (kilometers). X points through the equator at 0° longitude,
// Y through 90° east, Z through the North Pole.
func ToCartesian(latDeg, lonDeg, altKm float64) (x, y, z float64) {
	lat := latDeg * degToRad
	lon := lonDeg * degToRad

	r := EarthRadiusKm + altKm

	x = r * math.Cos(lat) * math.Cos(lon)
	y = r * math.Cos(lat) * math.Sin(lon)
	z = r * math.Sin(lat)

	return x, y, z
}

// ToGeodetic converts Earth-centered Cartesian coordinates (kilometers) back
// to latitude, longitude (degrees) and altitude above the mean-radius sphere
// (kilometers). Inverse of ToCartesian.
func ToGeodetic(x, y, z float64) (latDeg, lonDeg, altKm float64) {
	r := math.Sqrt(x*x + y*y + z*z)

	latDeg = math.Asin(z/r) * radToDeg
	lonDeg = math.Atan2(y, x) * radToDeg
	altKm = r - EarthRadiusKm

	return latDeg, lonDeg, altKm
}

// HaversineKm returns the great-circle surface distance in kilometers between
// two points on the mean-radius sphere. Uses asin(sqrt(a)) rather than acos
// for numerical stability near antipodal points.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	la1 := lat1 * degToRad
	la2 := lat2 * degToRad
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat + math.Cos(la1)*math.Cos(la2)*sinLon*sinLon
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusKm * c
}

// Euclidean3D returns the straight-line distance between two Cartesian
// points, in the same units as the inputs.
func Euclidean3D(x1, y1, z1, x2, y2, z2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	dz := z2 - z1

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistanceKm returns the straight-line distance in kilometers between two
// objects given as geodetic positions, converting both through the Cartesian
// frame.
func DistanceKm(lat1, lon1, alt1, lat2, lon2, alt2 float64) float64 {
	x1, y1, z1 := ToCartesian(lat1, lon1, alt1)
	x2, y2, z2 := ToCartesian(lat2, lon2, alt2)

	return Euclidean3D(x1, y1, z1, x2, y2, z2)
}

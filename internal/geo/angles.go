package geo

import "math"

// ElevationAngle returns the angle in degrees above (positive) or below
// (negative) the observer's horizontal toward the target, in [-90, 90].
//
// The horizontal split is taken in the Cartesian frame (vertical component vs
// horizontal magnitude of the displacement vector), not the observer's local
// tangent plane. This is a known simplification of true horizon-relative
// elevation and is kept for compatibility with upstream consumers.
func ElevationAngle(obsLat, obsLon, obsAltKm, tgtLat, tgtLon, tgtAltKm float64) float64 {
	ox, oy, oz := ToCartesian(obsLat, obsLon, obsAltKm)
	tx, ty, tz := ToCartesian(tgtLat, tgtLon, tgtAltKm)

	dx := tx - ox
	dy := ty - oy
	dz := tz - oz

	horizontal := math.Sqrt(dx*dx + dy*dy)

	return math.Atan2(dz, horizontal) * radToDeg
}

// AzimuthAngle returns the initial bearing in degrees from the observer to the
// target: 0° = north, 90° = east, normalized into [0, 360).
func AzimuthAngle(obsLat, obsLon, tgtLat, tgtLon float64) float64 {
	ola := obsLat * degToRad
	tla := tgtLat * degToRad
	dLon := (tgtLon - obsLon) * degToRad

	y := math.Sin(dLon) * math.Cos(tla)
	x := math.Cos(ola)*math.Sin(tla) - math.Sin(ola)*math.Cos(tla)*math.Cos(dLon)

	az := math.Atan2(y, x) * radToDeg
	if az < 0 {
		az += 360
	}

	return az
}

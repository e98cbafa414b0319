package uphere

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/slimtomatillo/ephemeris/internal/orbital"
)

// ParseObject normalizes one raw item from any of the upstream endpoints
// (list, details, location) into a canonical record. It never fails: input
// that cannot be coerced into a record yields nil, and a record is either
// complete or absent, never partial. Callers decide whether to log or skip.
func ParseObject(item any) (obj *orbital.Object) {
	// Input is untrusted and shape-shifts between endpoints; whatever goes
	// wrong during extraction must yield nil, not a panic.
	defer func() {
		if recover() != nil {
			obj = nil
		}
	}()

	data, ok := item.(map[string]any)
	if !ok {
		return nil
	}

	obj = &orbital.Object{
		Name:   "Unknown",
		Type:   "satellite",
		Source: data,
	}

	if name, ok := data["name"].(string); ok && name != "" {
		obj.Name = name
	}

	// NORAD id varies by endpoint: "number" on list/details, "norad_id" on
	// some shapes, bare "id" as a last resort.
	for _, key := range []string{"number", "norad_id", "id"} {
		if s := coerceString(data[key]); s != "" {
			obj.CatalogID = s
			break
		}
	}
	obj.InternalID = coerceString(data["id"])

	obj.Position = parsePosition(data)

	if vx, vy, vz := toFloat(data["velocity_x"]), toFloat(data["velocity_y"]), toFloat(data["velocity_z"]); vx != nil && vy != nil && vz != nil {
		obj.Velocity = &orbital.Velocity{X: *vx, Y: *vy, Z: *vz}
	}

	obj.Elements = orbital.Elements{
		InclinationDeg:  toFloat(data["inclination"]),
		Eccentricity:    toFloat(data["eccentricity"]),
		SemiMajorAxisKm: toFloat(data["semi_major_axis"]),
		ArgOfPerigeeDeg: toFloat(data["argument_of_perigee"]),
		RightAscension:  toFloat(data["right_ascension"]),
		MeanAnomalyDeg:  toFloat(data["mean_anomaly"]),
	}

	obj.ObservedAt = orbital.ParseEpoch(data["launch_date"])

	if typ := firstString(data, "type", "classification"); typ != "" {
		obj.Type = strings.ToLower(typ)
	}

	return obj
}

// parsePosition assembles the all-or-none position group. The location
// endpoint delivers a "coordinates" pair ordered [longitude, latitude] — an
// upstream contract, preserved as-is; explicit latitude/longitude fields
// override it. Altitude comes from "altitude" or "height"; when lat/lon are
// known but altitude is absent the object is taken to be at the surface.
func parsePosition(data map[string]any) *orbital.Position {
	var lat, lon *float64

	if coords, ok := data["coordinates"].([]any); ok && len(coords) >= 2 {
		lon = toFloat(coords[0])
		lat = toFloat(coords[1])
	}
	if v := toFloat(data["latitude"]); v != nil {
		lat = v
	}
	if v := toFloat(data["longitude"]); v != nil {
		lon = v
	}

	if lat == nil || lon == nil {
		return nil
	}

	alt := 0.0
	if v := toFloat(data["altitude"]); v != nil {
		alt = *v
	} else if v := toFloat(data["height"]); v != nil {
		alt = *v
	}

	return &orbital.Position{LatDeg: *lat, LonDeg: *lon, AltKm: alt}
}

// toFloat coerces JSON scalar shapes to a float, nil when it cannot.
func toFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return nil
		}
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// coerceString renders identifiers that arrive as strings or numbers.
// Integral floats print without a decimal point so "25544" stays "25544".
func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case json.Number:
		return s.String()
	default:
		return ""
	}
}

// firstString returns the first key whose value is a non-empty string.
func firstString(data map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

package uphere

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseObjectListShape(t *testing.T) {
	raw := map[string]any{"name": "ISS", "number": "25544"}

	obj := ParseObject(raw)
	if obj == nil {
		t.Fatal("ParseObject returned nil for valid item")
	}
	if obj.Name != "ISS" {
		t.Errorf("name = %q, want ISS", obj.Name)
	}
	if obj.CatalogID != "25544" {
		t.Errorf("catalog id = %q, want 25544", obj.CatalogID)
	}
	if obj.Type != "satellite" {
		t.Errorf("type = %q, want satellite", obj.Type)
	}
	if obj.HasPosition() {
		t.Error("record without position fields should carry no position")
	}
	if obj.ObservedAt != nil {
		t.Errorf("observed_at = %v, want nil", obj.ObservedAt)
	}
}

// TestParseObjectCoordinatesOrder pins the upstream quirk: the location
// endpoint's coordinates pair is ordered [longitude, latitude].
func TestParseObjectCoordinatesOrder(t *testing.T) {
	raw := map[string]any{
		"name":        "HUBBLE",
		"coordinates": []any{float64(10), float64(20)},
	}

	obj := ParseObject(raw)
	if obj == nil || !obj.HasPosition() {
		t.Fatalf("expected position, got %#v", obj)
	}
	if obj.Position.LonDeg != 10 {
		t.Errorf("longitude = %v, want 10 (element 0)", obj.Position.LonDeg)
	}
	if obj.Position.LatDeg != 20 {
		t.Errorf("latitude = %v, want 20 (element 1)", obj.Position.LatDeg)
	}
	if obj.Position.AltKm != 0 {
		t.Errorf("altitude = %v, want 0 when absent", obj.Position.AltKm)
	}
}

func TestParseObjectDirectFieldsOverrideCoordinates(t *testing.T) {
	raw := map[string]any{
		"name":        "NOAA 19",
		"coordinates": []any{float64(10), float64(20)},
		"latitude":    float64(-33.5),
		"longitude":   float64(151.2),
		"height":      float64(870.4),
	}

	obj := ParseObject(raw)
	if obj == nil || !obj.HasPosition() {
		t.Fatalf("expected position, got %#v", obj)
	}
	if obj.Position.LatDeg != -33.5 || obj.Position.LonDeg != 151.2 {
		t.Errorf("position = %+v, direct fields should win over coordinates", obj.Position)
	}
	if obj.Position.AltKm != 870.4 {
		t.Errorf("altitude = %v, want height fallback 870.4", obj.Position.AltKm)
	}
}

func TestParseObjectAltitudePrecedence(t *testing.T) {
	raw := map[string]any{
		"name":      "X",
		"latitude":  float64(1),
		"longitude": float64(2),
		"altitude":  float64(500),
		"height":    float64(999),
	}

	obj := ParseObject(raw)
	if obj == nil || !obj.HasPosition() {
		t.Fatal("expected position")
	}
	if obj.Position.AltKm != 500 {
		t.Errorf("altitude = %v, want altitude field over height", obj.Position.AltKm)
	}
}

func TestParseObjectPartialPositionDropped(t *testing.T) {
	// Latitude without longitude must not surface as a partial triple.
	raw := map[string]any{"name": "X", "latitude": float64(45)}

	obj := ParseObject(raw)
	if obj == nil {
		t.Fatal("expected record")
	}
	if obj.HasPosition() {
		t.Errorf("position = %+v, want none for a lone latitude", obj.Position)
	}
}

func TestParseObjectCatalogIDResolution(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"number string", map[string]any{"number": "25544"}, "25544"},
		{"number float", map[string]any{"number": float64(25544)}, "25544"},
		{"norad_id fallback", map[string]any{"norad_id": float64(20580)}, "20580"},
		{"id fallback", map[string]any{"id": "abc-123"}, "abc-123"},
		{"number wins", map[string]any{"number": "1", "norad_id": "2", "id": "3"}, "1"},
		{"empty becomes absent", map[string]any{"number": ""}, ""},
		{"json number", map[string]any{"number": json.Number("48274")}, "48274"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := ParseObject(tt.raw)
			if obj == nil {
				t.Fatal("expected record")
			}
			if obj.CatalogID != tt.want {
				t.Errorf("catalog id = %q, want %q", obj.CatalogID, tt.want)
			}
		})
	}
}

func TestParseObjectTypeResolution(t *testing.T) {
	obj := ParseObject(map[string]any{"name": "X", "type": "ROCKET BODY"})
	if obj.Type != "rocket body" {
		t.Errorf("type = %q, want lower-cased rocket body", obj.Type)
	}

	obj = ParseObject(map[string]any{"name": "X", "classification": "Debris"})
	if obj.Type != "debris" {
		t.Errorf("classification fallback = %q, want debris", obj.Type)
	}

	obj = ParseObject(map[string]any{"name": "X"})
	if obj.Type != "satellite" {
		t.Errorf("default type = %q, want satellite", obj.Type)
	}
}

func TestParseObjectLaunchDate(t *testing.T) {
	obj := ParseObject(map[string]any{"name": "ISS", "launch_date": "1998-11-20"})
	if obj.ObservedAt == nil {
		t.Fatal("expected parsed launch date")
	}
	want := time.Date(1998, 11, 20, 0, 0, 0, 0, time.UTC)
	if !obj.ObservedAt.Equal(want) {
		t.Errorf("observed_at = %v, want %v", obj.ObservedAt, want)
	}

	// Unparseable dates degrade to nil, never an error.
	obj = ParseObject(map[string]any{"name": "ISS", "launch_date": "circa 1998"})
	if obj == nil {
		t.Fatal("bad launch_date must not fail the whole record")
	}
	if obj.ObservedAt != nil {
		t.Errorf("observed_at = %v, want nil for junk input", obj.ObservedAt)
	}
}

func TestParseObjectVelocityGroup(t *testing.T) {
	obj := ParseObject(map[string]any{
		"name":       "X",
		"velocity_x": float64(7.1),
		"velocity_y": float64(-0.3),
		"velocity_z": float64(1.2),
	})
	if !obj.HasVelocity() {
		t.Fatal("expected velocity group")
	}
	if obj.Velocity.X != 7.1 || obj.Velocity.Y != -0.3 || obj.Velocity.Z != 1.2 {
		t.Errorf("velocity = %+v", obj.Velocity)
	}

	// Two of three components is not a velocity.
	obj = ParseObject(map[string]any{
		"name":       "X",
		"velocity_x": float64(7.1),
		"velocity_y": float64(-0.3),
	})
	if obj.HasVelocity() {
		t.Error("partial velocity components should yield no velocity group")
	}
}

func TestParseObjectElements(t *testing.T) {
	obj := ParseObject(map[string]any{
		"name":         "X",
		"inclination":  float64(51.64),
		"eccentricity": float64(0.0003),
	})
	if obj.Elements.InclinationDeg == nil || *obj.Elements.InclinationDeg != 51.64 {
		t.Errorf("inclination = %v, want 51.64", obj.Elements.InclinationDeg)
	}
	if obj.Elements.Eccentricity == nil || *obj.Elements.Eccentricity != 0.0003 {
		t.Errorf("eccentricity = %v, want 0.0003", obj.Elements.Eccentricity)
	}
	if obj.Elements.SemiMajorAxisKm != nil {
		t.Errorf("semi-major axis = %v, want nil when absent", obj.Elements.SemiMajorAxisKm)
	}
}

func TestParseObjectMalformedInput(t *testing.T) {
	inputs := []any{
		nil,
		"just a string",
		[]any{"list", "not", "object"},
		float64(42),
	}
	for _, in := range inputs {
		if obj := ParseObject(in); obj != nil {
			t.Errorf("ParseObject(%#v) = %+v, want nil", in, obj)
		}
	}
}

func TestParseObjectPreservesSource(t *testing.T) {
	raw := map[string]any{"name": "ISS", "number": "25544", "extra_field": "kept"}
	obj := ParseObject(raw)
	if obj.Source["extra_field"] != "kept" {
		t.Error("source payload should be preserved verbatim for diagnostics")
	}
}

// Package orbital defines the canonical record for a tracked orbital object
// and the epoch parsing/formatting helpers shared across endpoint shapes.
package orbital

import (
	"fmt"
	"time"
)

// Position is a complete geodetic position. A record carries either the whole
// triple or no position at all; the pointer on Object enforces that.
type Position struct {
	LatDeg float64 `json:"latitude"`
	LonDeg float64 `json:"longitude"`
	AltKm  float64 `json:"altitude_km"`
}

// Velocity holds Cartesian velocity components in km/s.
type Velocity struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Elements holds optional classical orbital elements. Each field is
// independent; absent values stay nil.
type Elements struct {
	InclinationDeg  *float64 `json:"inclination,omitempty"`
	Eccentricity    *float64 `json:"eccentricity,omitempty"`
	SemiMajorAxisKm *float64 `json:"semi_major_axis,omitempty"`
	ArgOfPerigeeDeg *float64 `json:"argument_of_perigee,omitempty"`
	RightAscension  *float64 `json:"right_ascension,omitempty"`
	MeanAnomalyDeg  *float64 `json:"mean_anomaly,omitempty"`
}

// Object is the canonical representation of one tracked object, independent
// of which upstream endpoint produced it. Instances are built once by the
// parser and never mutated afterwards.
type Object struct {
	Name       string         `json:"name"`
	CatalogID  string         `json:"catalog_id,omitempty"`  // NORAD number, stable across requests
	InternalID string         `json:"internal_id,omitempty"` // source-specific identifier
	Position   *Position      `json:"position,omitempty"`
	Velocity   *Velocity      `json:"velocity,omitempty"`
	Elements   Elements       `json:"elements"`
	Type       string         `json:"type"`
	ObservedAt *time.Time     `json:"observed_at,omitempty"`
	Source     map[string]any `json:"-"` // original payload, diagnostics only
}

// HasPosition reports whether the object carries a complete position triple.
func (o *Object) HasPosition() bool {
	return o.Position != nil
}

// HasVelocity reports whether the object carries velocity components.
func (o *Object) HasVelocity() bool {
	return o.Velocity != nil
}

func (o *Object) String() string {
	typ := o.Type
	if typ == "" {
		typ = "unknown"
	}
	return fmt.Sprintf("%s (%s)", o.Name, typ)
}

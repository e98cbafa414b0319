package orbital

import "testing"

func TestObjectPositionCompleteness(t *testing.T) {
	// A position is carried as a whole triple or not at all.
	obj := &Object{Name: "ISS", Type: "satellite"}
	if obj.HasPosition() {
		t.Error("object without position reports HasPosition")
	}

	obj.Position = &Position{LatDeg: 51.6, LonDeg: -0.1, AltKm: 420}
	if !obj.HasPosition() {
		t.Error("object with full triple reports no position")
	}
}

func TestObjectHasVelocity(t *testing.T) {
	obj := &Object{Name: "ISS"}
	if obj.HasVelocity() {
		t.Error("object without velocity reports HasVelocity")
	}
	obj.Velocity = &Velocity{X: 7.66}
	if !obj.HasVelocity() {
		t.Error("object with velocity reports none")
	}
}

func TestObjectString(t *testing.T) {
	obj := &Object{Name: "HUBBLE", Type: "satellite"}
	if got := obj.String(); got != "HUBBLE (satellite)" {
		t.Errorf("String() = %q", got)
	}

	obj = &Object{Name: "UNKNOWN OBJ"}
	if got := obj.String(); got != "UNKNOWN OBJ (unknown)" {
		t.Errorf("String() without type = %q", got)
	}
}

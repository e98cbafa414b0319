package metrics

import "testing"

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		// Fixed endpoints pass through unchanged.
		{"satellite/list", "satellite/list"},
		{"satellite/list/countries", "satellite/list/countries"},
		{"satellite/list/launch-sites", "satellite/list/launch-sites"},
		{"user/visible", "user/visible"},

		// Per-satellite paths collapse to one label.
		{"satellites/25544/details", "satellites/{id}/details"},
		{"satellites/44713/details", "satellites/{id}/details"},
		{"satellites/25544/location", "satellites/{id}/location"},
		{"satellites/25544/orbit", "satellites/{id}/orbit"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			got := normalizeEndpoint(tt.endpoint)
			if got != tt.want {
				t.Errorf("normalizeEndpoint(%q) = %q, want %q", tt.endpoint, got, tt.want)
			}
		})
	}
}

// TestEndpointCardinality verifies that many distinct satellite IDs produce a
// single endpoint label, not one per satellite.
func TestEndpointCardinality(t *testing.T) {
	seen := make(map[string]bool)
	ids := []string{"25544", "44713", "20580", "48274", "99999"}
	for _, id := range ids {
		seen[normalizeEndpoint("satellites/"+id+"/location")] = true
	}
	if len(seen) != 1 {
		t.Errorf("expected 1 unique label, got %d: %v", len(seen), seen)
	}
}

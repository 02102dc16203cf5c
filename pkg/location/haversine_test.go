package location

import (
	"math"
	"testing"
)

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Empire State Building to Statue of Liberty, ~8.2 km.
	d := HaversineKm(40.7484, -73.9857, 40.6892, -74.0445)
	if math.Abs(d-8.2) > 0.3 {
		t.Errorf("expected ~8.2 km, got %.2f", d)
	}
}

func TestHaversineKm_ZeroForSamePoint(t *testing.T) {
	if d := HaversineKm(51.5, -0.12, 51.5, -0.12); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestHaversineMeters(t *testing.T) {
	km := HaversineKm(40.0, -74.0, 40.001, -74.0)
	m := HaversineMeters(40.0, -74.0, 40.001, -74.0)
	if math.Abs(m-km*1000) > 1e-9 {
		t.Errorf("meters/km mismatch: %f vs %f", m, km*1000)
	}
	// ~111m per 0.001 degree of latitude
	if m < 100 || m > 125 {
		t.Errorf("expected ~111m, got %.1f", m)
	}
}

package routing

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestHaversineProperties(t *testing.T) {
	points := []orb.Point{
		{2.5, 49.0},
		{2.55, 49.01},
		{-73.57, 45.50},
		{0, 0},
		{180, 0},
		{-179.9999, -89.9},
	}

	for _, a := range points {
		if d := Haversine(a, a); d != 0 {
			t.Errorf("Haversine(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range points {
			ab := Haversine(a, b)
			ba := Haversine(b, a)
			if ab != ba {
				t.Errorf("Haversine not symmetric for %v, %v: %v vs %v", a, b, ab, ba)
			}
			if ab < 0 || math.IsNaN(ab) {
				t.Errorf("Haversine(%v, %v) = %v, want non-negative", a, b, ab)
			}
		}
	}
}

func TestHaversineKnownDistances(t *testing.T) {
	oneDegree := EarthRadiusMeters * math.Pi / 180

	tests := []struct {
		name string
		a, b orb.Point
		want float64
	}{
		{"one degree of latitude", orb.Point{0, 0}, orb.Point{0, 1}, oneDegree},
		{"one degree of longitude at equator", orb.Point{10, 0}, orb.Point{11, 0}, oneDegree},
		{"antipodal", orb.Point{0, 0}, orb.Point{180, 0}, EarthRadiusMeters * math.Pi},
		{"poles", orb.Point{0, 90}, orb.Point{0, -90}, EarthRadiusMeters * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-6*tt.want {
				t.Errorf("got %.6f, want %.6f", got, tt.want)
			}
		})
	}
}

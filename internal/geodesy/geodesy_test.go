package geodesy_test

import (
	"math"
	"testing"

	"placing/internal/geodesy"
)

func TestDistanceMeters(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want, tolerance        float64
	}{
		{name: "identical", lat1: 45, lon1: 12, lat2: 45, lon2: 12, want: 0, tolerance: 1e-9},
		{name: "equator millidegree", lat1: 0, lon1: 0, lat2: 0, lon2: 0.001, want: 111.319, tolerance: 0.01},
		{name: "quarter meridian", lat1: 0, lon1: 0, lat2: 90, lon2: 0, want: 10001965.729, tolerance: 0.01},
		{name: "antipodal on equator", lat1: 0, lon1: 0, lat2: 0, lon2: 180, want: 20003931.459, tolerance: 0.01},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := geodesy.DistanceMeters(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.want) > tc.tolerance {
				t.Fatalf("DistanceMeters = %.6f, want %.6f", got, tc.want)
			}
		})
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	a := geodesy.DistanceKm(52.37, 4.89, -33.87, 151.21)
	b := geodesy.DistanceKm(-33.87, 151.21, 52.37, 4.89)
	if math.Abs(a-b) > 1e-6 {
		t.Fatalf("asymmetric distance: %f vs %f", a, b)
	}
	if a < 16000 || a > 17000 {
		t.Fatalf("Amsterdam to Sydney = %f km, want about 16600", a)
	}
}

package routing

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusMeters is the mean Earth radius used for every distance in the
// routing package, including the A* heuristic.
const EarthRadiusMeters = 6371000.0

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Haversine returns the great-circle distance in meters between two
// (longitude, latitude) points.
func Haversine(p1, p2 orb.Point) float64 {
	phi1 := toRadians(p1.Lat())
	phi2 := toRadians(p2.Lat())
	deltaPhi := toRadians(p2.Lat() - p1.Lat())
	deltaLambda := toRadians(p2.Lon() - p1.Lon())

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	// rounding can push a past 1 for antipodal points
	if a > 1 {
		a = 1
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

package routing

import (
	"context"
	"log"

	"github.com/paulmach/orb"
)

// EtaResult holds travel times for a multi-stop route.
type EtaResult struct {
	TotalTimeMinutes    float64
	SegmentTimesSeconds []float64
	AverageSpeedKmh     float64
	TotalDistanceMeters float64
}

// Estimator times routes edge by edge using the speed limit of the road each
// edge came from.
type Estimator struct {
	Resolver        SpeedResolver
	DefaultSpeedKmh float64
}

func (est Estimator) defaultMps() float64 {
	if est.DefaultSpeedKmh > 0 {
		return est.DefaultSpeedKmh / 3.6
	}
	return DefaultSpeedKmh / 3.6
}

// EdgeSpeedMps resolves the speed for one edge. Missing roads, missing tags
// and unparsable tags all fall back to the default speed.
func (est Estimator) EdgeSpeedMps(s, e orb.Point) float64 {
	if est.Resolver == nil {
		return est.defaultMps()
	}
	tag, ok := est.Resolver.SpeedFor(s, e)
	if !ok {
		return est.defaultMps()
	}
	kmh, err := ParseSpeedKmh(tag)
	if err != nil {
		return est.defaultMps()
	}
	return kmh / 3.6
}

// Estimate routes the stops exactly like PlanRoute and sums the time of every
// traversed edge, one total per leg.
func (est Estimator) Estimate(ctx context.Context, g *Graph, stops []Stop) (EtaResult, error) {
	if err := checkRequest(g, stops); err != nil {
		return EtaResult{}, err
	}

	var result EtaResult
	for i := 0; i < len(stops)-1; i++ {
		if err := ctx.Err(); err != nil {
			return EtaResult{}, err
		}

		l, err := g.routeLeg(stops[i], stops[i+1])
		if err != nil {
			return EtaResult{}, err
		}

		legTime := 0.0
		for j := 0; j < len(l.nodes)-1; j++ {
			s := g.points[l.nodes[j]]
			e := g.points[l.nodes[j+1]]
			legTime += Haversine(s, e) / est.EdgeSpeedMps(s, e)
		}
		log.Printf("ETA segment %d: %s -> %s, %d nodes, %.1fm, %.1fs",
			i, stops[i].Name, stops[i+1].Name, len(l.nodes), l.distance, legTime)

		result.TotalDistanceMeters += l.distance
		result.SegmentTimesSeconds = append(result.SegmentTimesSeconds, legTime)
	}

	totalSeconds := 0.0
	for _, t := range result.SegmentTimesSeconds {
		totalSeconds += t
	}
	result.TotalTimeMinutes = totalSeconds / 60
	if result.TotalTimeMinutes > 0 {
		result.AverageSpeedKmh = (result.TotalDistanceMeters / 1000) / (result.TotalTimeMinutes / 60)
	}
	return result, nil
}

// EstimateEta is Estimate with the default speed.
func EstimateEta(ctx context.Context, g *Graph, resolver SpeedResolver, stops []Stop) (EtaResult, error) {
	return Estimator{Resolver: resolver}.Estimate(ctx, g, stops)
}

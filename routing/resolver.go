package routing

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// MatchTolerance is the planar distance, in degrees, under which a road
// geometry is considered to carry a path edge.
const MatchTolerance = 1e-6

// SpeedResolver finds the speed tag of the road an edge s-e was built from.
// ok is false when no road matches.
type SpeedResolver interface {
	SpeedFor(s, e orb.Point) (tag SpeedTag, ok bool)
}

// GeometryMatcher scans the road segments in input order and returns the
// first one whose geometry lies within Tolerance of the edge line. A road that
// only touches one end of the edge still matches, so at junctions the road
// listed first wins.
type GeometryMatcher struct {
	Tolerance float64

	segments []RoadSegment
	bounds   []orb.Bound
}

func NewGeometryMatcher(segments []RoadSegment) *GeometryMatcher {
	m := &GeometryMatcher{
		Tolerance: MatchTolerance,
		segments:  segments,
		bounds:    make([]orb.Bound, len(segments)),
	}
	for i, seg := range segments {
		m.bounds[i] = seg.Line.Bound()
	}
	return m
}

func (m *GeometryMatcher) SpeedFor(s, e orb.Point) (SpeedTag, bool) {
	edge := orb.LineString{s, e}
	window := edge.Bound().Pad(m.Tolerance)

	for i, seg := range m.segments {
		if !m.bounds[i].Intersects(window) {
			continue
		}
		if lineDistance(seg.Line, edge) < m.Tolerance {
			return seg.MaxSpeed, true
		}
	}
	return SpeedTag{}, false
}

// EdgeSpeedIndex answers from the edge-to-segment mapping recorded while the
// graph was built, without any geometry search.
type EdgeSpeedIndex struct {
	graph *Graph
}

func NewEdgeSpeedIndex(g *Graph) *EdgeSpeedIndex {
	return &EdgeSpeedIndex{graph: g}
}

func (x *EdgeSpeedIndex) SpeedFor(s, e orb.Point) (SpeedTag, bool) {
	u, ok := x.graph.Lookup(s)
	if !ok {
		return SpeedTag{}, false
	}
	v, ok := x.graph.Lookup(e)
	if !ok {
		return SpeedTag{}, false
	}
	seg, ok := x.graph.EdgeSegment(u, v)
	if !ok {
		return SpeedTag{}, false
	}
	return seg.MaxSpeed, true
}

// lineDistance is the minimum planar distance between two polylines.
func lineDistance(a, b orb.LineString) float64 {
	best := -1.0
	for i := 0; i < len(a)-1; i++ {
		for j := 0; j < len(b)-1; j++ {
			d := segmentDistance(a[i], a[i+1], b[j], b[j+1])
			if best < 0 || d < best {
				best = d
			}
			if best == 0 {
				return 0
			}
		}
	}
	return best
}

func segmentDistance(p1, p2, q1, q2 orb.Point) float64 {
	if segmentsCross(p1, p2, q1, q2) {
		return 0
	}
	d := planar.DistanceFromSegment(q1, q2, p1)
	if v := planar.DistanceFromSegment(q1, q2, p2); v < d {
		d = v
	}
	if v := planar.DistanceFromSegment(p1, p2, q1); v < d {
		d = v
	}
	if v := planar.DistanceFromSegment(p1, p2, q2); v < d {
		d = v
	}
	return d
}

// segmentsCross reports a proper crossing. Touching and collinear overlaps
// are caught by the endpoint distances in segmentDistance.
func segmentsCross(p1, p2, q1, q2 orb.Point) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func orientation(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

package routing

import (
	"testing"

	"github.com/paulmach/orb"
)

func line(id string, pts ...orb.Point) RoadSegment {
	return RoadSegment{ID: id, Line: orb.LineString(pts)}
}

type edgePair struct{ a, b orb.Point }

func edgeSet(g *Graph) map[edgePair]float64 {
	set := make(map[edgePair]float64)
	for i := 0; i < g.NodeCount(); i++ {
		p := g.Point(NodeID(i))
		for _, e := range g.Neighbors(NodeID(i)) {
			q := g.Point(e.To)
			if q[0] < p[0] || (q[0] == p[0] && q[1] < p[1]) {
				continue
			}
			set[edgePair{p, q}] = e.Weight
		}
	}
	return set
}

func TestBuildGraphCountsAndWeights(t *testing.T) {
	g := BuildGraph([]RoadSegment{
		line("a", orb.Point{2.50, 49.00}, orb.Point{2.51, 49.00}, orb.Point{2.52, 49.00}),
		line("b", orb.Point{2.51, 49.00}, orb.Point{2.51, 49.01}),
	})

	if g.NodeCount() != 4 {
		t.Errorf("NodeCount = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3", g.EdgeCount())
	}

	u, _ := g.Lookup(orb.Point{2.50, 49.00})
	v, _ := g.Lookup(orb.Point{2.51, 49.00})
	w, ok := g.EdgeWeight(u, v)
	if !ok {
		t.Fatalf("edge %d-%d missing", u, v)
	}
	if want := Haversine(orb.Point{2.50, 49.00}, orb.Point{2.51, 49.00}); w != want {
		t.Errorf("weight = %v, want %v", w, want)
	}
	if _, ok := g.EdgeWeight(v, u); !ok {
		t.Errorf("edge should be undirected")
	}
}

func TestBuildGraphSharedEndpointConnects(t *testing.T) {
	shared := orb.Point{2.5, 49.0}
	g := BuildGraph([]RoadSegment{
		line("west", orb.Point{2.49, 49.0}, shared),
		line("east", shared, orb.Point{2.51, 49.0}),
	})

	if got := g.Components(); got != 1 {
		t.Errorf("Components = %d, want 1", got)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
}

func TestBuildGraphNearlyEqualEndpointsStaySeparate(t *testing.T) {
	g := BuildGraph([]RoadSegment{
		line("west", orb.Point{2.49, 49.0}, orb.Point{2.5, 49.0}),
		line("east", orb.Point{2.5 + 1e-9, 49.0}, orb.Point{2.51, 49.0}),
	})

	if got := g.Components(); got != 2 {
		t.Errorf("Components = %d, want 2", got)
	}

	start, _ := g.Lookup(orb.Point{2.49, 49.0})
	goal, _ := g.Lookup(orb.Point{2.51, 49.0})
	if _, err := g.ShortestPath(start, goal); err == nil {
		t.Errorf("expected ErrNoPathFound across disconnected features")
	}
}

func TestBuildGraphIndependentOfFeatureOrder(t *testing.T) {
	segments := []RoadSegment{
		line("a", orb.Point{0, 0}, orb.Point{0, 0.01}, orb.Point{0.01, 0.01}),
		line("b", orb.Point{0.01, 0.01}, orb.Point{0.02, 0.01}),
		line("c", orb.Point{0, 0.01}, orb.Point{0, 0}),
		line("d", orb.Point{0.02, 0.01}, orb.Point{0.02, 0.02}, orb.Point{0, 0.01}),
	}
	reversed := make([]RoadSegment, len(segments))
	for i, s := range segments {
		reversed[len(segments)-1-i] = s
	}

	g1 := BuildGraph(segments)
	g2 := BuildGraph(reversed)

	if g1.NodeCount() != g2.NodeCount() || g1.EdgeCount() != g2.EdgeCount() {
		t.Fatalf("counts differ: %d/%d vs %d/%d",
			g1.NodeCount(), g1.EdgeCount(), g2.NodeCount(), g2.EdgeCount())
	}
	for i := 0; i < g1.NodeCount(); i++ {
		if _, ok := g2.Lookup(g1.Point(NodeID(i))); !ok {
			t.Errorf("node %v missing from reordered graph", g1.Point(NodeID(i)))
		}
	}

	e1, e2 := edgeSet(g1), edgeSet(g2)
	if len(e1) != len(e2) {
		t.Fatalf("edge sets differ in size: %d vs %d", len(e1), len(e2))
	}
	for k, w := range e1 {
		if w2, ok := e2[k]; !ok || w2 != w {
			t.Errorf("edge %v: %v vs %v (present=%v)", k, w, w2, ok)
		}
	}
}

func TestBuildGraphSkipsDegenerateInput(t *testing.T) {
	g := BuildGraph([]RoadSegment{
		line("empty"),
		line("single", orb.Point{1, 1}),
		line("repeat", orb.Point{1, 1}, orb.Point{1, 1}, orb.Point{1, 2}),
	})

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if len(g.Segments()) != 1 {
		t.Errorf("retained %d segments, want 1", len(g.Segments()))
	}
}

func TestBuildGraphEmpty(t *testing.T) {
	g := BuildGraph(nil)
	if g.NodeCount() != 0 || g.EdgeCount() != 0 || g.Components() != 0 {
		t.Errorf("empty input should give an empty graph, got %d nodes %d edges",
			g.NodeCount(), g.EdgeCount())
	}
}

func TestEdgeSegmentKeepsFirstProducer(t *testing.T) {
	g := BuildGraph([]RoadSegment{
		{ID: "first", Line: orb.LineString{{0, 0}, {0, 1}}, MaxSpeed: TextSpeed("30")},
		{ID: "second", Line: orb.LineString{{0, 1}, {0, 0}}, MaxSpeed: TextSpeed("50")},
	})

	if g.EdgeCount() != 1 {
		t.Fatalf("duplicate edge should merge, EdgeCount = %d", g.EdgeCount())
	}
	u, _ := g.Lookup(orb.Point{0, 1})
	v, _ := g.Lookup(orb.Point{0, 0})
	seg, ok := g.EdgeSegment(u, v)
	if !ok || seg.ID != "first" {
		t.Errorf("EdgeSegment = %q (ok=%v), want first", seg.ID, ok)
	}
}

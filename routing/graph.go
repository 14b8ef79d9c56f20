package routing

import (
	"github.com/paulmach/orb"
)

// NodeID indexes a node in first-seen order. It is only meaningful for the
// graph that issued it.
type NodeID int

// RoadSegment is one drivable line from the source data.
type RoadSegment struct {
	ID       string
	Line     orb.LineString
	MaxSpeed SpeedTag
}

// Edge is one half of an undirected road edge, stored in the adjacency list
// of its origin node.
type Edge struct {
	To     NodeID
	Weight float64 // meters
}

type edgeKey struct{ a, b NodeID }

func newEdgeKey(u, v NodeID) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{a: u, b: v}
}

// Graph is an undirected road network whose nodes are identified by their
// exact coordinates. Two vertices merge into one node only when both
// coordinates are equal; vertices that are merely close stay separate, so
// source lines must share endpoint coordinates to be connected.
//
// A Graph is not safe for concurrent mutation, but once BuildGraph returns it
// is only read and may be shared freely.
type Graph struct {
	points    []orb.Point
	index     map[orb.Point]NodeID
	edges     [][]Edge
	edgeCount int

	segments   []RoadSegment
	edgeSource map[edgeKey]int // first segment that produced the edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		index:      make(map[orb.Point]NodeID),
		edgeSource: make(map[edgeKey]int),
	}
}

// BuildGraph links every consecutive vertex pair of every segment into an
// undirected edge weighted by its great-circle length. Segments with fewer
// than two vertices are skipped. The usable segments are retained for speed
// lookups.
func BuildGraph(segments []RoadSegment) *Graph {
	g := NewGraph()
	for _, seg := range segments {
		if len(seg.Line) < 2 {
			continue
		}
		g.segments = append(g.segments, seg)
		source := len(g.segments) - 1
		for i := 0; i < len(seg.Line)-1; i++ {
			g.addEdge(seg.Line[i], seg.Line[i+1], source)
		}
	}
	return g
}

func (g *Graph) addNode(p orb.Point) NodeID {
	if id, ok := g.index[p]; ok {
		return id
	}
	id := NodeID(len(g.points))
	g.points = append(g.points, p)
	g.edges = append(g.edges, nil)
	g.index[p] = id
	return id
}

func (g *Graph) addEdge(p, q orb.Point, source int) {
	u := g.addNode(p)
	v := g.addNode(q)
	if u == v {
		return
	}

	key := newEdgeKey(u, v)
	if _, exists := g.edgeSource[key]; exists {
		return
	}
	g.edgeSource[key] = source

	w := Haversine(p, q)
	g.edges[u] = append(g.edges[u], Edge{To: v, Weight: w})
	g.edges[v] = append(g.edges[v], Edge{To: u, Weight: w})
	g.edgeCount++
}

func (g *Graph) NodeCount() int { return len(g.points) }

func (g *Graph) EdgeCount() int { return g.edgeCount }

// Segments returns the retained source segments in input order.
func (g *Graph) Segments() []RoadSegment { return g.segments }

// Point returns the coordinates of a node.
func (g *Graph) Point(id NodeID) orb.Point { return g.points[id] }

// Lookup returns the node sitting exactly at p.
func (g *Graph) Lookup(p orb.Point) (NodeID, bool) {
	id, ok := g.index[p]
	return id, ok
}

func (g *Graph) Neighbors(id NodeID) []Edge { return g.edges[id] }

// EdgeWeight returns the stored weight of the edge u-v.
func (g *Graph) EdgeWeight(u, v NodeID) (float64, bool) {
	if !g.valid(u) || !g.valid(v) {
		return 0, false
	}
	for _, e := range g.edges[u] {
		if e.To == v {
			return e.Weight, true
		}
	}
	return 0, false
}

// EdgeSegment returns the first segment, in input order, that contributed
// the edge u-v.
func (g *Graph) EdgeSegment(u, v NodeID) (RoadSegment, bool) {
	source, ok := g.edgeSource[newEdgeKey(u, v)]
	if !ok {
		return RoadSegment{}, false
	}
	return g.segments[source], true
}

// Components counts connected components. Isolated nodes count as one each.
func (g *Graph) Components() int {
	seen := make([]bool, len(g.points))
	count := 0
	stack := make([]NodeID, 0, 64)

	for start := range g.points {
		if seen[start] {
			continue
		}
		count++
		seen[start] = true
		stack = append(stack[:0], NodeID(start))
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range g.edges[n] {
				if !seen[e.To] {
					seen[e.To] = true
					stack = append(stack, e.To)
				}
			}
		}
	}
	return count
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.points)
}

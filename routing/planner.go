package routing

import (
	"context"
	"fmt"
	"log"

	"github.com/paulmach/orb"
)

// Stop is a named location supplied by the caller. The name is a label only.
type Stop struct {
	Name     string
	Location orb.Point
}

// LegSummary describes the path between two consecutive stops.
type LegSummary struct {
	From           string
	To             string
	NodeCount      int
	DistanceMeters float64
}

// PathResult is a multi-stop route. Junction nodes between legs appear once.
type PathResult struct {
	Path                []orb.Point
	TotalDistanceMeters float64
	NodeCount           int
	Legs                []LegSummary
}

type leg struct {
	nodes    []NodeID
	distance float64
}

// routeLeg snaps both stops to their nearest nodes and searches between them.
func (g *Graph) routeLeg(from, to Stop) (leg, error) {
	startNode, _, err := g.Nearest(from.Location)
	if err != nil {
		return leg{}, err
	}
	endNode, _, err := g.Nearest(to.Location)
	if err != nil {
		return leg{}, err
	}

	nodes, err := g.ShortestPath(startNode, endNode)
	if err != nil {
		return leg{}, fmt.Errorf("%s -> %s: %w", from.Name, to.Name, err)
	}

	l := leg{nodes: nodes}
	for i := 0; i < len(nodes)-1; i++ {
		l.distance += Haversine(g.points[nodes[i]], g.points[nodes[i+1]])
	}
	return l, nil
}

func checkRequest(g *Graph, stops []Stop) error {
	if len(stops) < 2 {
		return fmt.Errorf("%w: got %d", ErrInsufficientStops, len(stops))
	}
	if g == nil || g.NodeCount() == 0 {
		return ErrEmptyGraph
	}
	return nil
}

// PlanRoute concatenates the shortest path of every consecutive stop pair.
// The context is checked between legs; a single search is never interrupted.
func PlanRoute(ctx context.Context, g *Graph, stops []Stop) (PathResult, error) {
	if err := checkRequest(g, stops); err != nil {
		return PathResult{}, err
	}

	var result PathResult
	for i := 0; i < len(stops)-1; i++ {
		if err := ctx.Err(); err != nil {
			return PathResult{}, err
		}

		l, err := g.routeLeg(stops[i], stops[i+1])
		if err != nil {
			return PathResult{}, err
		}
		log.Printf("Segment %d: %s -> %s, %d nodes, %.1fm",
			i, stops[i].Name, stops[i+1].Name, len(l.nodes), l.distance)

		result.TotalDistanceMeters += l.distance
		result.Legs = append(result.Legs, LegSummary{
			From:           stops[i].Name,
			To:             stops[i+1].Name,
			NodeCount:      len(l.nodes),
			DistanceMeters: l.distance,
		})

		nodes := l.nodes
		if i > 0 {
			nodes = nodes[1:]
		}
		for _, n := range nodes {
			result.Path = append(result.Path, g.points[n])
		}
	}

	result.NodeCount = len(result.Path)
	return result, nil
}

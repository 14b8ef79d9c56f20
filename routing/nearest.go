package routing

import (
	"math"

	"github.com/paulmach/orb"
)

// Nearest returns the node closest to p by great-circle distance, and that
// distance in meters. The scan is exhaustive; on ties the node seen first
// during the build wins.
func (g *Graph) Nearest(p orb.Point) (NodeID, float64, error) {
	if len(g.points) == 0 {
		return 0, 0, ErrEmptyGraph
	}

	var nearest NodeID
	minDistance := math.Inf(1)

	for id, node := range g.points {
		dist := Haversine(p, node)
		if dist < minDistance {
			minDistance = dist
			nearest = NodeID(id)
		}
	}

	return nearest, minDistance, nil
}

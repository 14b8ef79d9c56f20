package routing

import (
	"container/heap"
	"fmt"
)

// ShortestPath runs A* from start to goal using stored edge weights as cost
// and the great-circle distance to goal as heuristic. Since edge weights are
// themselves great-circle lengths the heuristic never overestimates, and the
// first time goal is popped its path is optimal.
func (g *Graph) ShortestPath(start, goal NodeID) ([]NodeID, error) {
	if !g.valid(start) || !g.valid(goal) {
		return nil, fmt.Errorf("%w: unknown node %d or %d", ErrNoPathFound, start, goal)
	}
	if start == goal {
		return []NodeID{start}, nil
	}

	goalPoint := g.points[goal]
	heuristic := func(n NodeID) float64 {
		return Haversine(g.points[n], goalPoint)
	}

	gScore := map[NodeID]float64{start: 0}
	cameFrom := make(map[NodeID]NodeID)

	pq := &priorityQueue{}
	heap.Push(pq, &pqItem{node: start, cost: 0, priority: heuristic(start)})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem)
		current := item.node

		// stale entry, a cheaper route was pushed later
		if item.cost > gScore[current] {
			continue
		}
		if current == goal {
			return reconstructPath(cameFrom, start, goal), nil
		}

		for _, e := range g.edges[current] {
			tentative := gScore[current] + e.Weight
			if old, ok := gScore[e.To]; !ok || tentative < old {
				cameFrom[e.To] = current
				gScore[e.To] = tentative
				heap.Push(pq, &pqItem{node: e.To, cost: tentative, priority: tentative + heuristic(e.To)})
			}
		}
	}

	return nil, fmt.Errorf("%w: from %v to %v", ErrNoPathFound, g.points[start], goalPoint)
}

func reconstructPath(cameFrom map[NodeID]NodeID, start, goal NodeID) []NodeID {
	path := []NodeID{goal}
	for current := goal; current != start; {
		current = cameFrom[current]
		path = append(path, current)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type pqItem struct {
	node     NodeID
	cost     float64
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int           { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)      { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(*pqItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[0 : n-1]
	return item
}

package routing

import "errors"

var (
	// ErrEmptyGraph is returned when a query needs at least one node and the
	// road graph has none.
	ErrEmptyGraph = errors.New("road graph is empty")

	// ErrInsufficientStops is returned when fewer than two stops are supplied.
	ErrInsufficientStops = errors.New("need at least 2 stops")

	// ErrNoPathFound is returned when the endpoints lie in disconnected
	// components of the graph.
	ErrNoPathFound = errors.New("no path found")

	// ErrSpeedParse marks a speed tag that cannot be turned into km/h. The ETA
	// estimator absorbs it and falls back to the default speed.
	ErrSpeedParse = errors.New("unparsable speed tag")
)

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/nazihkhelifa/servair-webapp/preprocessing"
	"github.com/nazihkhelifa/servair-webapp/routing"
	"golang.org/x/sync/singleflight"
)

// Speed lookup strategies accepted in Options.SpeedLookup.
const (
	SpeedLookupGeometry = "geometry"
	SpeedLookupEdge     = "edge"
)

// RoadLoader reads the road segments the network is built from.
type RoadLoader func(ctx context.Context) ([]routing.RoadSegment, error)

type Options struct {
	SpeedLookup     string
	DefaultSpeedKmh float64
	Logger          *log.Logger
}

// network is immutable once published.
type network struct {
	graph    *routing.Graph
	resolver routing.SpeedResolver
	builtAt  time.Time
}

// Status summarizes the road network without failing the caller.
type Status struct {
	Ready      bool
	NodeCount  int
	EdgeCount  int
	Components int
	Segments   int
	BuiltAt    time.Time
	Message    string
}

// TruckpathService builds the road network on first use and answers route
// and ETA queries against it. It is safe for concurrent use.
type TruckpathService struct {
	load    RoadLoader
	opts    Options
	logger  *log.Logger
	current atomic.Pointer[network]
	group   singleflight.Group
}

func NewTruckpathService(load RoadLoader, opts Options) *TruckpathService {
	if opts.SpeedLookup == "" {
		opts.SpeedLookup = SpeedLookupGeometry
	}
	if opts.DefaultSpeedKmh <= 0 {
		opts.DefaultSpeedKmh = routing.DefaultSpeedKmh
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &TruckpathService{load: load, opts: opts, logger: logger}
}

// Ready reports whether the network has been built.
func (s *TruckpathService) Ready() bool {
	return s.current.Load() != nil
}

// network returns the published network, building it if needed. Concurrent
// callers share one build; a failed build is retried by the next call.
func (s *TruckpathService) network(ctx context.Context) (*network, error) {
	if n := s.current.Load(); n != nil {
		return n, nil
	}

	ch := s.group.DoChan("network", func() (interface{}, error) {
		if n := s.current.Load(); n != nil {
			return n, nil
		}
		// one caller giving up must not fail the build for the others
		n, err := s.build(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.current.Store(n)
		return n, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*network), nil
	}
}

func (s *TruckpathService) build(ctx context.Context) (*network, error) {
	if s.load == nil {
		return nil, fmt.Errorf("%w: no road loader configured", preprocessing.ErrDataLoad)
	}

	start := time.Now()
	s.logger.Println("Building road network...")

	segments, err := s.load(ctx)
	if err != nil {
		s.logger.Printf("ERROR: failed to load roads: %v", err)
		if errors.Is(err, preprocessing.ErrDataLoad) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", preprocessing.ErrDataLoad, err)
	}

	g := routing.BuildGraph(segments)

	var resolver routing.SpeedResolver
	switch s.opts.SpeedLookup {
	case SpeedLookupEdge:
		resolver = routing.NewEdgeSpeedIndex(g)
	default:
		resolver = routing.NewGeometryMatcher(g.Segments())
	}

	s.logger.Printf("Road network ready in %s: %d nodes, %d edges, %d components, speed lookup %q",
		time.Since(start).Round(time.Millisecond), g.NodeCount(), g.EdgeCount(), g.Components(), s.opts.SpeedLookup)

	return &network{graph: g, resolver: resolver, builtAt: time.Now()}, nil
}

// PlanRoute returns the concatenated shortest path through stops.
func (s *TruckpathService) PlanRoute(ctx context.Context, stops []routing.Stop) (routing.PathResult, error) {
	if len(stops) < 2 {
		return routing.PathResult{}, fmt.Errorf("%w: got %d", routing.ErrInsufficientStops, len(stops))
	}
	n, err := s.network(ctx)
	if err != nil {
		return routing.PathResult{}, err
	}

	result, err := routing.PlanRoute(ctx, n.graph, stops)
	if err != nil {
		return routing.PathResult{}, err
	}
	s.logger.Printf("Route through %d stops: %d nodes, %.1fm", len(stops), result.NodeCount, result.TotalDistanceMeters)
	return result, nil
}

// EstimateEta times the same route PlanRoute would return.
func (s *TruckpathService) EstimateEta(ctx context.Context, stops []routing.Stop) (routing.EtaResult, error) {
	if len(stops) < 2 {
		return routing.EtaResult{}, fmt.Errorf("%w: got %d", routing.ErrInsufficientStops, len(stops))
	}
	n, err := s.network(ctx)
	if err != nil {
		return routing.EtaResult{}, err
	}

	est := routing.Estimator{Resolver: n.resolver, DefaultSpeedKmh: s.opts.DefaultSpeedKmh}
	return est.Estimate(ctx, n.graph, stops)
}

// Status triggers the build if it has not happened yet. Build failures are
// reported in the result, never returned.
func (s *TruckpathService) Status(ctx context.Context) Status {
	n, err := s.network(ctx)
	if err != nil {
		return Status{Message: err.Error()}
	}

	g := n.graph
	return Status{
		Ready:      true,
		NodeCount:  g.NodeCount(),
		EdgeCount:  g.EdgeCount(),
		Components: g.Components(),
		Segments:   len(g.Segments()),
		BuiltAt:    n.builtAt,
		Message:    fmt.Sprintf("Road network loaded with %d nodes", g.NodeCount()),
	}
}

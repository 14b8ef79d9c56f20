package services

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nazihkhelifa/servair-webapp/preprocessing"
	"github.com/nazihkhelifa/servair-webapp/routing"
	"github.com/paulmach/orb"
)

func testRoads() []routing.RoadSegment {
	return []routing.RoadSegment{
		{ID: "main", Line: orb.LineString{{2.50, 49.00}, {2.51, 49.00}, {2.52, 49.00}}, MaxSpeed: routing.TextSpeed("30 km/h")},
		{ID: "spur", Line: orb.LineString{{2.52, 49.00}, {2.52, 49.01}}, MaxSpeed: routing.NumericSpeed(50)},
	}
}

func quietOptions() Options {
	return Options{Logger: log.New(io.Discard, "", 0)}
}

func testStops() []routing.Stop {
	return []routing.Stop{
		{Name: "A", Location: orb.Point{2.50, 49.00}},
		{Name: "B", Location: orb.Point{2.52, 49.01}},
	}
}

func TestConcurrentFirstUseBuildsOnce(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	loader := func(ctx context.Context) ([]routing.RoadSegment, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return testRoads(), nil
	}
	svc := NewTruckpathService(loader, quietOptions())

	const callers = 16
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PlanRoute(context.Background(), testStops())
			errs <- err
		}()
	}

	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("PlanRoute: %v", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("loader called %d times, want 1", got)
	}
	if !svc.Ready() {
		t.Error("service should be ready after a successful build")
	}
}

func TestFailedBuildIsRetried(t *testing.T) {
	var calls int32
	loader := func(ctx context.Context) ([]routing.RoadSegment, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("disk unavailable")
		}
		return testRoads(), nil
	}
	svc := NewTruckpathService(loader, quietOptions())

	_, err := svc.PlanRoute(context.Background(), testStops())
	if !errors.Is(err, preprocessing.ErrDataLoad) {
		t.Fatalf("first call err = %v, want ErrDataLoad", err)
	}
	if svc.Ready() {
		t.Fatal("a failed build must not be published")
	}

	status := svc.Status(context.Background())
	if !status.Ready || status.NodeCount != 4 {
		t.Errorf("status after retry = %+v", status)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("loader called %d times, want 2", got)
	}
}

func TestStatusReportsFailure(t *testing.T) {
	svc := NewTruckpathService(func(ctx context.Context) ([]routing.RoadSegment, error) {
		return nil, preprocessing.ErrDataLoad
	}, quietOptions())

	status := svc.Status(context.Background())
	if status.Ready {
		t.Error("status should not be ready")
	}
	if status.Message == "" {
		t.Error("status should carry the failure message")
	}
}

func TestStatusCounts(t *testing.T) {
	svc := NewTruckpathService(func(ctx context.Context) ([]routing.RoadSegment, error) {
		return testRoads(), nil
	}, quietOptions())

	status := svc.Status(context.Background())
	want := Status{Ready: true, NodeCount: 4, EdgeCount: 3, Components: 1, Segments: 2}
	if status.Ready != want.Ready || status.NodeCount != want.NodeCount ||
		status.EdgeCount != want.EdgeCount || status.Components != want.Components ||
		status.Segments != want.Segments {
		t.Errorf("status = %+v, want %+v", status, want)
	}
}

func TestInsufficientStopsSkipsBuild(t *testing.T) {
	var calls int32
	svc := NewTruckpathService(func(ctx context.Context) ([]routing.RoadSegment, error) {
		atomic.AddInt32(&calls, 1)
		return testRoads(), nil
	}, quietOptions())

	_, err := svc.PlanRoute(context.Background(), testStops()[:1])
	if !errors.Is(err, routing.ErrInsufficientStops) {
		t.Errorf("PlanRoute err = %v", err)
	}
	_, err = svc.EstimateEta(context.Background(), nil)
	if !errors.Is(err, routing.ErrInsufficientStops) {
		t.Errorf("EstimateEta err = %v", err)
	}
	if calls != 0 {
		t.Errorf("loader called %d times, want 0", calls)
	}
}

func TestEmptyNetwork(t *testing.T) {
	svc := NewTruckpathService(func(ctx context.Context) ([]routing.RoadSegment, error) {
		return nil, nil
	}, quietOptions())

	_, err := svc.PlanRoute(context.Background(), testStops())
	if !errors.Is(err, routing.ErrEmptyGraph) {
		t.Errorf("err = %v, want ErrEmptyGraph", err)
	}
}

func TestEstimateEtaSpeedLookup(t *testing.T) {
	a, b, c, d := orb.Point{2.50, 49.00}, orb.Point{2.51, 49.00}, orb.Point{2.52, 49.00}, orb.Point{2.52, 49.01}
	mainRoad := routing.Haversine(a, b) + routing.Haversine(b, c)
	spur := routing.Haversine(c, d)

	// The spur edge touches "main" at c, so the geometry lookup times it at
	// the main road's 30 km/h while the edge lookup uses the spur's own 50.
	tests := []struct {
		lookup string
		want   float64
	}{
		{SpeedLookupGeometry, (mainRoad + spur) / (30 / 3.6)},
		{SpeedLookupEdge, mainRoad/(30/3.6) + spur/(50/3.6)},
	}

	for _, tt := range tests {
		t.Run(tt.lookup, func(t *testing.T) {
			opts := quietOptions()
			opts.SpeedLookup = tt.lookup
			svc := NewTruckpathService(func(ctx context.Context) ([]routing.RoadSegment, error) {
				return testRoads(), nil
			}, opts)

			eta, err := svc.EstimateEta(context.Background(), testStops())
			if err != nil {
				t.Fatalf("EstimateEta: %v", err)
			}
			if len(eta.SegmentTimesSeconds) != 1 {
				t.Fatalf("got %d leg times, want 1", len(eta.SegmentTimesSeconds))
			}
			if math.Abs(eta.SegmentTimesSeconds[0]-tt.want) > 1e-9 {
				t.Errorf("leg time = %f s, want %f s", eta.SegmentTimesSeconds[0], tt.want)
			}
			if math.Abs(eta.TotalTimeMinutes-tt.want/60) > 1e-9 {
				t.Errorf("total = %f min, want %f min", eta.TotalTimeMinutes, tt.want/60)
			}
		})
	}
}

func TestCanceledCallerDoesNotPoisonBuild(t *testing.T) {
	release := make(chan struct{})
	svc := NewTruckpathService(func(ctx context.Context) ([]routing.RoadSegment, error) {
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return testRoads(), nil
	}, quietOptions())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.PlanRoute(ctx, testStops())
		done <- err
	}()

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("canceled caller err = %v, want context.Canceled", err)
	}

	close(release)
	if _, err := svc.PlanRoute(context.Background(), testStops()); err != nil {
		t.Errorf("PlanRoute after cancellation: %v", err)
	}
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nazihkhelifa/servair-webapp/config"
	"github.com/nazihkhelifa/servair-webapp/models"
	"github.com/nazihkhelifa/servair-webapp/preprocessing"
	"github.com/nazihkhelifa/servair-webapp/routing"
	"github.com/nazihkhelifa/servair-webapp/services"
	"github.com/paulmach/orb"
)

// parseStop reads "Name:lon,lat" or "lon,lat".
func parseStop(arg string, i int) (routing.Stop, error) {
	name := fmt.Sprintf("Stop %d", i+1)
	coords := arg
	if idx := strings.LastIndex(arg, ":"); idx >= 0 {
		name, coords = arg[:idx], arg[idx+1:]
	}

	parts := strings.Split(coords, ",")
	if len(parts) != 2 {
		return routing.Stop{}, fmt.Errorf("stop %q: want lon,lat", arg)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return routing.Stop{}, fmt.Errorf("stop %q: longitude: %w", arg, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return routing.Stop{}, fmt.Errorf("stop %q: latitude: %w", arg, err)
	}
	return routing.Stop{Name: name, Location: orb.Point{lon, lat}}, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default environment variables")
	}
	cfg := config.Load()

	var (
		source  string
		table   string
		lookup  string
		timeout time.Duration
	)
	flag.StringVar(&source, "source", cfg.RoadsSource, "Road source: .geojson/.json/.gob file or sqlite://path")
	flag.StringVar(&table, "table", cfg.RoadsTable, "Table name for sqlite sources")
	flag.StringVar(&lookup, "speed-lookup", cfg.SpeedLookup, "Edge speed lookup: geometry or edge")
	flag.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall time limit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: planroute [flags] Name:lon,lat Name:lon,lat [...]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	var stops []routing.Stop
	for i, arg := range flag.Args() {
		stop, err := parseStop(arg, i)
		if err != nil {
			log.Fatalf("invalid stop: %v", err)
		}
		stops = append(stops, stop)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc := services.NewTruckpathService(func(ctx context.Context) ([]routing.RoadSegment, error) {
		return preprocessing.LoadRoads(ctx, source, table)
	}, services.Options{SpeedLookup: lookup, DefaultSpeedKmh: cfg.DefaultSpeedKmh})

	path, err := svc.PlanRoute(ctx, stops)
	if err != nil {
		log.Fatalf("route failed: %v", err)
	}
	eta, err := svc.EstimateEta(ctx, stops)
	if err != nil {
		log.Fatalf("ETA failed: %v", err)
	}

	out := struct {
		Route models.PathResponse `json:"route"`
		ETA   models.ETAResponse  `json:"eta"`
	}{
		Route: models.NewPathResponse(path, "cli"),
		ETA:   models.NewETAResponse(eta, "cli"),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&out); err != nil {
		log.Fatalf("failed to write JSON: %v", err)
	}
}

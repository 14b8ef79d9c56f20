package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/nazihkhelifa/servair-webapp/preprocessing"
	"github.com/nazihkhelifa/servair-webapp/routing"
)

type speedBucket struct {
	Tag      string  `json:"tag"`
	Kmh      float64 `json:"kmh"`
	Parsed   bool    `json:"parsed"`
	Segments int     `json:"segments"`
}

type roadsDump struct {
	Source  string         `json:"source"`
	Summary map[string]int `json:"summary"`
	Speeds  []speedBucket  `json:"speeds"`
}

func main() {
	var source, table, out string
	flag.StringVar(&source, "source", "public/cdg_private_service_roads.geojson", "Road source: .geojson/.json/.gob file or sqlite://path")
	flag.StringVar(&table, "table", preprocessing.DefaultRoadsTable, "Table name for sqlite sources")
	flag.StringVar(&out, "out", "preprocessing/cache/roads_index.json", "Path to write JSON summary of the road network")
	flag.Parse()

	log.Printf("Loading roads from %s...", source)
	segments, err := preprocessing.LoadRoads(context.Background(), source, table)
	if err != nil {
		log.Fatalf("failed to load roads: %v", err)
	}

	g := routing.BuildGraph(segments)
	dump := roadsDump{
		Source: source,
		Summary: map[string]int{
			"segments":   len(segments),
			"nodes":      g.NodeCount(),
			"edges":      g.EdgeCount(),
			"components": g.Components(),
		},
		Speeds: speedHistogram(segments),
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		log.Fatalf("failed to ensure output dir: %v", err)
	}

	f, err := os.Create(out)
	if err != nil {
		log.Fatalf("failed to create output file %s: %v", out, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&dump); err != nil {
		log.Fatalf("failed to write JSON: %v", err)
	}

	fmt.Printf("Road index written to %s\n", out)
	fmt.Printf("Summary: segments=%d nodes=%d edges=%d components=%d\n",
		len(segments), g.NodeCount(), g.EdgeCount(), dump.Summary["components"])
}

// speedHistogram counts segments per raw speed tag, most common first.
func speedHistogram(segments []routing.RoadSegment) []speedBucket {
	counts := make(map[string]*speedBucket)
	for _, s := range segments {
		tag := s.MaxSpeed.String()
		b, ok := counts[tag]
		if !ok {
			b = &speedBucket{Tag: tag}
			if kmh, err := routing.ParseSpeedKmh(s.MaxSpeed); err == nil {
				b.Kmh, b.Parsed = kmh, true
			} else {
				b.Kmh = routing.DefaultSpeedKmh
			}
			counts[tag] = b
		}
		b.Segments++
	}

	buckets := make([]speedBucket, 0, len(counts))
	for _, b := range counts {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Segments != buckets[j].Segments {
			return buckets[i].Segments > buckets[j].Segments
		}
		return buckets[i].Tag < buckets[j].Tag
	})
	return buckets
}

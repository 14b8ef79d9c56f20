package preprocessing

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nazihkhelifa/servair-webapp/routing"
)

const snapshotVersion = 1

// RoadSnapshot is the gob layout of a pre-converted road source.
type RoadSnapshot struct {
	Version     int
	GeneratedAt time.Time
	Source      string
	Segments    []routing.RoadSegment
}

// WriteRoadsGob encodes segments as a RoadSnapshot.
func WriteRoadsGob(w io.Writer, source string, segments []routing.RoadSegment) error {
	snap := RoadSnapshot{
		Version:     snapshotVersion,
		GeneratedAt: time.Now().UTC(),
		Source:      source,
		Segments:    segments,
	}
	if err := gob.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("encode road snapshot: %w", err)
	}
	return nil
}

// LoadRoadsFromGob reads a snapshot written by WriteRoadsGob.
func LoadRoadsFromGob(path string) ([]routing.RoadSegment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrDataLoad, path, err)
	}
	defer file.Close()

	var snap RoadSnapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrDataLoad, path, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: %s has snapshot version %d, want %d", ErrDataLoad, path, snap.Version, snapshotVersion)
	}

	logSummary(path, snap.Segments, 0)
	return snap.Segments, nil
}

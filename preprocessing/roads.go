package preprocessing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/nazihkhelifa/servair-webapp/routing"
	"github.com/paulmach/orb"
)

// ErrDataLoad wraps every failure to read or decode a road source.
var ErrDataLoad = errors.New("road data load failure")

const sqliteScheme = "sqlite://"

// LoadRoads reads road segments from source, which is one of
//
//	path/to/roads.geojson (or .json)  GeoJSON FeatureCollection
//	path/to/roads.gob                 snapshot written by WriteRoadsGob
//	sqlite://path/to/roads.db         table of GeoJSON geometries, see QueryRoads
func LoadRoads(ctx context.Context, source, table string) ([]routing.RoadSegment, error) {
	if source == "" {
		return nil, fmt.Errorf("%w: no road source configured", ErrDataLoad)
	}

	if strings.HasPrefix(source, sqliteScheme) {
		return LoadRoadsFromSQLite(ctx, strings.TrimPrefix(source, sqliteScheme), table)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".geojson", ".json":
		return LoadRoadsFromGeoJSON(source)
	case ".gob":
		return LoadRoadsFromGob(source)
	default:
		return nil, fmt.Errorf("%w: unsupported road source %q", ErrDataLoad, source)
	}
}

// speedProperty picks the speed attribute out of feature properties.
func speedProperty(props map[string]interface{}) routing.SpeedTag {
	for _, key := range []string{"maxspeed", "maxSpeed", "max_speed"} {
		if v, ok := props[key]; ok {
			return routing.SpeedTagFromProperty(v)
		}
	}
	return routing.SpeedTag{}
}

// appendLines adds one segment per line in geom. Multi-line geometries are
// split into their parts, every other geometry type is skipped.
func appendLines(out []routing.RoadSegment, id string, geom orb.Geometry, speed routing.SpeedTag) ([]routing.RoadSegment, bool) {
	switch g := geom.(type) {
	case orb.LineString:
		return append(out, routing.RoadSegment{ID: id, Line: g, MaxSpeed: speed}), true
	case orb.MultiLineString:
		for i, part := range g {
			out = append(out, routing.RoadSegment{ID: fmt.Sprintf("%s#%d", id, i), Line: part, MaxSpeed: speed})
		}
		return out, true
	default:
		return out, false
	}
}

func logSummary(source string, segments []routing.RoadSegment, skipped int) {
	log.Printf("Loaded %d road segments from %s (%d non-line features skipped)", len(segments), source, skipped)
}

package preprocessing

import (
	"fmt"
	"os"

	"github.com/nazihkhelifa/servair-webapp/routing"
	"github.com/paulmach/orb/geojson"
)

// LoadRoadsFromGeoJSON reads a FeatureCollection of road lines.
func LoadRoadsFromGeoJSON(path string) ([]routing.RoadSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrDataLoad, path, err)
	}

	segments, skipped, err := DecodeRoadsGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logSummary(path, segments, skipped)
	return segments, nil
}

// DecodeRoadsGeoJSON decodes a FeatureCollection and returns its line
// segments together with the number of features that were not lines.
func DecodeRoadsGeoJSON(data []byte) ([]routing.RoadSegment, int, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: parse GeoJSON: %w", ErrDataLoad, err)
	}

	segments, skipped := SegmentsFromFeatures(fc.Features)
	return segments, skipped, nil
}

// SegmentsFromFeatures keeps the feature order of the collection.
func SegmentsFromFeatures(features []*geojson.Feature) ([]routing.RoadSegment, int) {
	segments := make([]routing.RoadSegment, 0, len(features))
	skipped := 0

	for i, f := range features {
		if f == nil || f.Geometry == nil {
			skipped++
			continue
		}

		var ok bool
		segments, ok = appendLines(segments, featureID(f, i), f.Geometry, speedProperty(f.Properties))
		if !ok {
			skipped++
		}
	}
	return segments, skipped
}

func featureID(f *geojson.Feature, i int) string {
	if f.ID != nil {
		return fmt.Sprintf("%v", f.ID)
	}
	if v, ok := f.Properties["osm_id"]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("feature-%d", i)
}

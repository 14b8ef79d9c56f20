package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/nazihkhelifa/servair-webapp/routing"
	"github.com/paulmach/orb"
)

// ErrInvalidStop is returned by ToStops for malformed stop coordinates.
var ErrInvalidStop = errors.New("invalid stop")

// StopRequest accepts either "coordinates": [lon, lat] or separate
// "longitude"/"latitude" fields.
type StopRequest struct {
	Name        string    `json:"name"`
	Coordinates []float64 `json:"coordinates,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
}

type PathRequest struct {
	Stops []StopRequest `json:"stops"`
}

// Point returns the stop location as (lon, lat).
func (s StopRequest) Point() (orb.Point, error) {
	var lon, lat float64
	switch {
	case len(s.Coordinates) == 2:
		lon, lat = s.Coordinates[0], s.Coordinates[1]
	case len(s.Coordinates) != 0:
		return orb.Point{}, fmt.Errorf("%w %q: coordinates must be [lon, lat], got %d values", ErrInvalidStop, s.Name, len(s.Coordinates))
	case s.Longitude != nil && s.Latitude != nil:
		lon, lat = *s.Longitude, *s.Latitude
	default:
		return orb.Point{}, fmt.Errorf("%w %q: missing coordinates", ErrInvalidStop, s.Name)
	}

	if math.IsNaN(lon) || math.IsNaN(lat) || lon < -180 || lon > 180 || lat < -90 || lat > 90 {
		return orb.Point{}, fmt.Errorf("%w %q: (%v, %v) is out of range", ErrInvalidStop, s.Name, lon, lat)
	}
	return orb.Point{lon, lat}, nil
}

// ToStops converts the request in order. Unnamed stops are labelled by position.
func (r PathRequest) ToStops() ([]routing.Stop, error) {
	stops := make([]routing.Stop, 0, len(r.Stops))
	for i, s := range r.Stops {
		p, err := s.Point()
		if err != nil {
			return nil, err
		}
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("Stop %d", i+1)
		}
		stops = append(stops, routing.Stop{Name: name, Location: p})
	}
	return stops, nil
}

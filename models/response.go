package models

import (
	"fmt"
	"time"

	"github.com/nazihkhelifa/servair-webapp/routing"
	"github.com/nazihkhelifa/servair-webapp/services"
)

// Error codes carried in ApiError.Code.
const (
	CodeInsufficientStops = "INSUFFICIENT_STOPS"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeEmptyGraph        = "EMPTY_GRAPH"
	CodeNoPathFound       = "NO_PATH_FOUND"
	CodeDataLoadFailure   = "DATA_LOAD_FAILURE"
	CodeInternal          = "INTERNAL_ERROR"
)

type ApiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error     ApiError `json:"error"`
	RequestID string   `json:"request_id"`
}

type LegResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	NodeCount int     `json:"node_count"`
	Distance  float64 `json:"distance"`
}

// PathResponse distances are in meters, path points are [lon, lat].
type PathResponse struct {
	Path          [][2]float64  `json:"path"`
	TotalDistance float64       `json:"total_distance"`
	NodeCount     int           `json:"node_count"`
	Legs          []LegResponse `json:"legs"`
	Message       string        `json:"message"`
	RequestID     string        `json:"request_id"`
}

type ETAResponse struct {
	TotalTimeMinutes float64   `json:"total_time_minutes"`
	SegmentTimes     []float64 `json:"segment_times"`
	AverageSpeedKmh  float64   `json:"average_speed_kmh"`
	TotalDistance    float64   `json:"total_distance"`
	Message          string    `json:"message"`
	RequestID        string    `json:"request_id"`
}

type StatusResponse struct {
	Status     string     `json:"status"`
	GraphNodes int        `json:"graph_nodes"`
	GraphEdges int        `json:"graph_edges"`
	Components int        `json:"components"`
	Segments   int        `json:"segments"`
	BuiltAt    *time.Time `json:"built_at,omitempty"`
	Message    string     `json:"message"`
}

func NewPathResponse(result routing.PathResult, requestID string) PathResponse {
	path := make([][2]float64, len(result.Path))
	for i, p := range result.Path {
		path[i] = [2]float64{p.Lon(), p.Lat()}
	}
	legs := make([]LegResponse, len(result.Legs))
	for i, l := range result.Legs {
		legs[i] = LegResponse{From: l.From, To: l.To, NodeCount: l.NodeCount, Distance: l.DistanceMeters}
	}

	return PathResponse{
		Path:          path,
		TotalDistance: result.TotalDistanceMeters,
		NodeCount:     result.NodeCount,
		Legs:          legs,
		Message:       fmt.Sprintf("Path calculated with %d nodes", result.NodeCount),
		RequestID:     requestID,
	}
}

func NewETAResponse(result routing.EtaResult, requestID string) ETAResponse {
	times := result.SegmentTimesSeconds
	if times == nil {
		times = []float64{}
	}
	return ETAResponse{
		TotalTimeMinutes: result.TotalTimeMinutes,
		SegmentTimes:     times,
		AverageSpeedKmh:  result.AverageSpeedKmh,
		TotalDistance:    result.TotalDistanceMeters,
		Message: fmt.Sprintf("ETA calculated: %.1f minutes, Avg speed: %.1f km/h",
			result.TotalTimeMinutes, result.AverageSpeedKmh),
		RequestID: requestID,
	}
}

func NewStatusResponse(s services.Status) StatusResponse {
	if !s.Ready {
		return StatusResponse{Status: "error", Message: s.Message}
	}
	builtAt := s.BuiltAt
	return StatusResponse{
		Status:     "ready",
		GraphNodes: s.NodeCount,
		GraphEdges: s.EdgeCount,
		Components: s.Components,
		Segments:   s.Segments,
		BuiltAt:    &builtAt,
		Message:    "Pathfinding service is ready",
	}
}

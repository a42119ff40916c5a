package model

import (
	"time"

	"github.com/paulmach/orb/geojson"
)

// DrawnRoute is a hand-drawn route as stored: the raw clicked points,
// the road-snapped geometry (absent when snapping failed) and free-form
// metadata carrying at least the route-session identifier.
type DrawnRoute struct {
	ID        string                 `json:"routeId"`
	RawPoints [][]float64            `json:"gpxData"`
	Snapped   *geojson.Geometry      `json:"geojson,omitempty"`
	Metadata  map[string]interface{} `json:"metadata"`
	CreatedAt time.Time              `json:"created_at"`
}

// SaveRouteRequest is the body of POST /api/save-drawn-route.
type SaveRouteRequest struct {
	GpxData  [][]float64            `json:"gpxData" validate:"required"`
	GeoJSON  *geojson.Geometry      `json:"geojson,omitempty"`
	Metadata map[string]interface{} `json:"metadata" validate:"required"`
}

// SnapRequest is the body of POST /api/snap-to-road.
type SnapRequest struct {
	Points  [][]float64 `json:"points" validate:"required"`
	Profile string      `json:"profile,omitempty"` // driving, walking, cycling
}

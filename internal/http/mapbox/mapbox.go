package mapbox

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const defaultBaseURL = "https://api.mapbox.com"

// MapboxClient handles communication with Mapbox APIs
type MapboxClient struct {
	APIKey  string // IMPORTANT: Handle your API Key securely! Load from environment variable.
	BaseURL string
	Client  *http.Client
}

// NewMapboxClient creates a new Mapbox client instance
func NewMapboxClient(apiKey string) *MapboxClient {
	if apiKey == "" {
		log.Println("Warning: Mapbox API Key is empty.")
	}
	return &MapboxClient{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// ErrGatewayUnavailable is returned when the map-matching service could
// not be reached at the transport level (connection failure, timeout).
var ErrGatewayUnavailable = errors.New("map-matching service unavailable")

// UpstreamError is returned when the map-matching service answered but
// rejected the request. The upstream code and message are preserved for
// the caller.
type UpstreamError struct {
	Code    string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return "mapbox rejected the request: " + e.Code
	}
	return "mapbox rejected the request: " + e.Code + ": " + e.Message
}

// --- Map Matching Structures ---

// MapMatchingResponse represents the top-level response from the
// Map Matching API
type MapMatchingResponse struct {
	Code        string       `json:"code"` // "Ok", "NoMatch", "NoSegment", "TooManyCoordinates", etc.
	Message     string       `json:"message,omitempty"`
	Matchings   []Matching   `json:"matchings"`
	Tracepoints []Tracepoint `json:"tracepoints"`
}

// Matching contains a single road-snapped match
type Matching struct {
	Confidence float64         `json:"confidence"`
	Geometry   json.RawMessage `json:"geometry"` // GeoJSON object or encoded polyline, per geometries param
	Duration   float64         `json:"duration"` // in seconds
	Distance   float64         `json:"distance"` // in meters
}

// Tracepoint maps an input coordinate onto the matched geometry
type Tracepoint struct {
	Location       []float64 `json:"location"` // [longitude, latitude]
	MatchingsIndex int       `json:"matchings_index"`
	WaypointIndex  int       `json:"waypoint_index"`
	Name           string    `json:"name"`
}

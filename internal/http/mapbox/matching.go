package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/go-querystring/query"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/vinmasci/bikepathmap/util"
)

// Wire formats for matched geometries. Polyline variants keep the
// response payload small; they are decoded back into GeoJSON before
// anything downstream sees them.
const (
	GeometryGeoJSON   = "geojson"
	GeometryPolyline  = "polyline"
	GeometryPolyline6 = "polyline6"
)

// MatchOptions are the query parameters sent to the Map Matching API.
type MatchOptions struct {
	AccessToken string `url:"access_token"`
	Geometries  string `url:"geometries"`
	Radiuses    string `url:"radiuses,omitempty"`
	Steps       bool   `url:"steps"`
	Overview    string `url:"overview"`
}

// Match forwards a drawn point sequence to the Map Matching API and
// returns the raw matching payload. Points are [longitude, latitude]
// pairs that have already passed validation. A single attempt is made;
// there is no retry.
func (mc *MapboxClient) Match(ctx context.Context, points [][]float64, profile, geometries string) (*MapMatchingResponse, error) {
	if mc.APIKey == "" {
		return nil, fmt.Errorf("mapbox API key is not set")
	}
	if profile == "" {
		profile = "cycling"
	}
	if geometries == "" {
		geometries = GeometryGeoJSON
	}

	coordinates := make([]string, len(points))
	for i, p := range points {
		coordinates[i] = fmt.Sprintf("%.6f,%.6f", p[0], p[1])
	}

	opts := MatchOptions{
		AccessToken: mc.APIKey,
		Geometries:  geometries,
		Radiuses:    strings.TrimSuffix(strings.Repeat("25;", len(coordinates)), ";"),
		Steps:       false,
		Overview:    "full",
	}
	params, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request params: %w", err)
	}

	fullURL := fmt.Sprintf("%s/matching/v5/mapbox/%s/%s?%s",
		mc.BaseURL, profile, strings.Join(coordinates, ";"), params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := mc.Client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(ErrGatewayUnavailable, err.Error())
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(ErrGatewayUnavailable, err.Error())
	}

	var matchResp MapMatchingResponse
	if err := json.Unmarshal(bodyBytes, &matchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if matchResp.Code != "Ok" {
		return nil, &UpstreamError{Code: matchResp.Code, Message: matchResp.Message}
	}

	return &matchResp, nil
}

// MatchToRoads snaps a drawn point sequence to the road network and
// returns the matched geometry as GeoJSON, ready to persist alongside
// the raw points. geometries selects the wire format; encoded polyline
// responses are decoded so callers always receive the same shape.
func (mc *MapboxClient) MatchToRoads(ctx context.Context, points [][]float64, profile, geometries string) (*geojson.Geometry, error) {
	if geometries == "" {
		geometries = GeometryGeoJSON
	}

	resp, err := mc.Match(ctx, points, profile, geometries)
	if err != nil {
		return nil, err
	}

	if len(resp.Matchings) == 0 {
		return nil, &UpstreamError{Code: "NoMatch", Message: "no matchings returned"}
	}

	switch geometries {
	case GeometryPolyline, GeometryPolyline6:
		return decodePolylineGeometry(resp.Matchings[0].Geometry, geometries)
	default:
		var geom geojson.Geometry
		if err := json.Unmarshal(resp.Matchings[0].Geometry, &geom); err != nil {
			return nil, fmt.Errorf("failed to decode matched geometry: %w", err)
		}
		return &geom, nil
	}
}

// decodePolylineGeometry turns an encoded polyline matching into a
// GeoJSON LineString. Polylines carry [lat, lon] pairs; GeoJSON wants
// [lon, lat].
func decodePolylineGeometry(raw json.RawMessage, geometries string) (*geojson.Geometry, error) {
	var shape string
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, fmt.Errorf("failed to decode matched geometry: %w", err)
	}

	decode := util.DecodePolyLines
	if geometries == GeometryPolyline6 {
		decode = util.DecodePolyline6
	}
	coords, err := decode(shape)
	if err != nil {
		return nil, err
	}

	line := make(orb.LineString, 0, len(coords))
	for _, c := range util.CoordsToLonLat(coords) {
		line = append(line, orb.Point{c[0], c[1]})
	}
	return geojson.NewGeometry(line), nil
}

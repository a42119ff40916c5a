package rest

import (
	"errors"
	"net/http"

	"github.com/lucsky/cuid"
	"github.com/vinmasci/bikepathmap/internal/http/mapbox"
	"github.com/vinmasci/bikepathmap/internal/model"
	"github.com/vinmasci/bikepathmap/util"
	"github.com/vinmasci/bikepathmap/util/tracing"
	"github.com/vinmasci/bikepathmap/util/values"
	"github.com/vinmasci/bikepathmap/util/websockets"
)

const sessionCookie = "bpm_session"

// clientSession returns the caller's session identifier, minting a
// cookie on first contact.
func (api *API) clientSession(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := cuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (api *API) GenerateRouteID(w http.ResponseWriter, r *http.Request) *ServerResponse {
	sessionID := api.clientSession(w, r)
	routeID := api.Deps.Sessions.Generate(sessionID)

	return &ServerResponse{
		Success:    true,
		Message:    "Route ID generated",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       map[string]string{"routeId": routeID},
	}
}

func (api *API) SaveDrawnRoute(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.SaveRouteRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "gpxData and metadata are required", values.BadRequestBody, &tc)
	}

	if err := util.ValidatePoints(req.GpxData); err != nil {
		return respondWithError(err, err.Error(), values.BadRequestBody, &tc)
	}

	sessionID := api.clientSession(w, r)
	routeID, ok := api.Deps.Sessions.Lookup(sessionID)
	if !ok {
		return respondWithError(nil, "no route ID found for this session; call generate-route-id first", values.BadRequestBody, &tc)
	}

	req.Metadata["routeSessionId"] = routeID

	// Snap server-side when the client sent raw points only. Polyline6
	// keeps the matching payload small; a snap failure stores the raw
	// points with no snapped geometry.
	snapped := req.GeoJSON
	if snapped == nil {
		if geom, snapErr := api.Deps.Mapbox.MatchToRoads(r.Context(), req.GpxData, "", mapbox.GeometryPolyline6); snapErr == nil {
			snapped = geom
		}
	}

	route := model.DrawnRoute{
		ID:        routeID,
		RawPoints: req.GpxData,
		Snapped:   snapped,
		Metadata:  req.Metadata,
	}

	if err := api.CreateDrawnRouteRepo(r.Context(), route); err != nil {
		return respondWithError(err, "failed to save drawn route", values.Error, &tc)
	}

	api.Deps.WebSocket.BroadcastEvent(websockets.MsgTypeRouteSaved, map[string]string{"routeId": routeID})

	return &ServerResponse{
		Success:    true,
		Message:    "Route saved successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data:       map[string]string{"routeId": routeID},
	}
}

// GetDrawnRoutes fetches one route (?id=) or every stored route. The
// original site wired this path to a delete by mistake; the confirmed
// behavior is a fetch, with deletion living solely on delete-drawn-route.
func (api *API) GetDrawnRoutes(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	if id := r.URL.Query().Get("id"); id != "" {
		route, err := api.GetDrawnRouteRepo(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrRouteNotFound) {
				return respondWithError(err, "route not found", values.NotFound, &tc)
			}
			return respondWithError(err, "failed to get drawn route", values.Error, &tc)
		}
		return &ServerResponse{
			Success:    true,
			Status:     values.Success,
			StatusCode: util.StatusCode(values.Success),
			Data:       route,
		}
	}

	routes, err := api.ListDrawnRoutesRepo(r.Context())
	if err != nil {
		return respondWithError(err, "failed to list drawn routes", values.Error, &tc)
	}

	return &ServerResponse{
		Success:    true,
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       routes,
	}
}

func (api *API) DeleteDrawnRoute(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	routeID := r.URL.Query().Get("routeId")
	if routeID == "" {
		return respondWithError(nil, "routeId is required", values.BadRequestBody, &tc)
	}

	if err := api.DeleteDrawnRouteRepo(r.Context(), routeID); err != nil {
		if errors.Is(err, ErrRouteNotFound) {
			return respondWithError(err, "route not found", values.NotFound, &tc)
		}
		return respondWithError(err, "failed to delete drawn route", values.Error, &tc)
	}

	api.Deps.WebSocket.BroadcastEvent(websockets.MsgTypeRouteDeleted, map[string]string{"routeId": routeID})

	return &ServerResponse{
		Success:    true,
		Message:    "Route deleted successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

// SnapToRoad validates the drawn points and relays them to the
// map-matching service, passing the matching payload through verbatim.
// Nothing is persisted here; saving happens on save-drawn-route.
func (api *API) SnapToRoad(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.SnapRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidatePoints(req.Points); err != nil {
		return respondWithError(err, err.Error(), values.BadRequestBody, &tc)
	}

	matchResp, err := api.Deps.Mapbox.Match(r.Context(), req.Points, req.Profile, mapbox.GeometryGeoJSON)
	if err != nil {
		var upstream *mapbox.UpstreamError
		if errors.As(err, &upstream) {
			return respondWithError(err, upstream.Error(), values.BadRequestBody, &tc)
		}
		return respondWithError(err, "map-matching service unavailable", values.Error, &tc)
	}

	return &ServerResponse{
		Success:    true,
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       matchResp,
	}
}

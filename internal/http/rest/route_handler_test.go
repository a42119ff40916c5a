package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vinmasci/bikepathmap/config"
	deps "github.com/vinmasci/bikepathmap/internal/debs"
	"github.com/vinmasci/bikepathmap/internal/http/mapbox"
	"github.com/vinmasci/bikepathmap/internal/session"
)

// newTestAPI wires an API with only the dependencies the exercised
// handlers touch. Anything else stays nil so an unexpected call fails
// loudly.
func newTestAPI(t *testing.T, mc *mapbox.MapboxClient) (*API, http.Handler) {
	t.Helper()

	registry := session.NewRegistry(time.Minute)
	t.Cleanup(registry.Close)

	api := &API{
		Config: &config.Config{
			MaxPhotoSizeMB: 1,
			MaxGpxSizeMB:   1,
			JwtSecret:      "test-secret",
			JwtExpires:     "1h",
			RefreshSecret:  "test-refresh-secret",
			RefreshExpiry:  "24h",
		},
		Deps: &deps.Dependencies{
			Sessions: registry,
			Mapbox:   mc,
		},
	}
	return api, RequestTracing(api.MapRoutes())
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestGenerateRouteID(t *testing.T) {
	api, handler := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/generate-route-id", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeResponse(t, rec)
	data := body["data"].(map[string]interface{})
	first := data["routeId"].(string)
	if first == "" {
		t.Fatal("expected a route id")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Second call with the same session overwrites the mapping.
	req2 := httptest.NewRequest(http.MethodPost, "/generate-route-id", nil)
	req2.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)

	second := decodeResponse(t, rec2)["data"].(map[string]interface{})["routeId"].(string)
	if second == first {
		t.Fatalf("expected a fresh route id, got %q twice", first)
	}

	got, ok := api.Deps.Sessions.Lookup(cookies[0].Value)
	if !ok || got != second {
		t.Errorf("registry lookup = (%q, %v), want (%q, true)", got, ok, second)
	}
}

func TestSnapToRoadInsufficientPoints(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/snap-to-road",
		strings.NewReader(`{"points":[[33.36,35.17]]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeResponse(t, rec)
	if msg := body["message"].(string); !strings.Contains(msg, "at least 2 points") {
		t.Errorf("message = %q, want insufficient-points cause", msg)
	}
}

func TestSnapToRoadInvalidCoordinates(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/snap-to-road",
		strings.NewReader(`{"points":[[200.0,35.17],[33.37,35.18]]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeResponse(t, rec)
	if msg := body["message"].(string); !strings.Contains(msg, "invalid coordinates") {
		t.Errorf("message = %q, want invalid-coordinates cause", msg)
	}
}

func TestSnapToRoadUpstreamRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoMatch","message":"No matching found","matchings":[],"tracepoints":[]}`))
	}))
	defer srv.Close()

	mc := &mapbox.MapboxClient{APIKey: "test", BaseURL: srv.URL, Client: srv.Client()}
	_, handler := newTestAPI(t, mc)

	req := httptest.NewRequest(http.MethodPost, "/snap-to-road",
		strings.NewReader(`{"points":[[33.36,35.17],[33.37,35.18],[33.38,35.19]]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	// The upstream message must be preserved for the caller. No store
	// write happens: the test API has no database wired at all.
	body := decodeResponse(t, rec)
	if msg := body["message"].(string); !strings.Contains(msg, "No matching found") {
		t.Errorf("message = %q, want upstream message preserved", msg)
	}
}

func TestSnapToRoadPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","matchings":[{"confidence":0.87,"geometry":{"type":"LineString","coordinates":[[33.36,35.17],[33.38,35.19]]}}],"tracepoints":[]}`))
	}))
	defer srv.Close()

	mc := &mapbox.MapboxClient{APIKey: "test", BaseURL: srv.URL, Client: srv.Client()}
	_, handler := newTestAPI(t, mc)

	req := httptest.NewRequest(http.MethodPost, "/snap-to-road",
		strings.NewReader(`{"points":[[33.36,35.17],[33.37,35.18],[33.38,35.19]]}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	data := decodeResponse(t, rec)["data"].(map[string]interface{})
	if data["code"] != "Ok" {
		t.Errorf("passthrough code = %v, want Ok", data["code"])
	}
	matchings := data["matchings"].([]interface{})
	if len(matchings) != 1 {
		t.Errorf("expected 1 matching in passthrough payload, got %d", len(matchings))
	}
}

func TestDeleteDrawnRouteMissingID(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodDelete, "/delete-drawn-route", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestWrongMethodIsRejected(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/save-drawn-route", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	_, handler := newTestAPI(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

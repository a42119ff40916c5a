package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vinmasci/bikepathmap/config"
	deps "github.com/vinmasci/bikepathmap/internal/debs"
	"github.com/vinmasci/bikepathmap/util/values"
)

const (
	defaultIdleTimeout  = time.Minute
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 60 * time.Second
)

type Handler func(w http.ResponseWriter, r *http.Request) *ServerResponse

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := h(w, r)
	respByte, err := json.Marshal(resp)
	if err != nil {
		writeErrorResponse(w, err, values.Error, "unable to marshal server response")
		return
	}
	writeJSONResponse(w, respByte, resp.StatusCode)
}

type API struct {
	Server *http.Server
	Config *config.Config
	Deps   *deps.Dependencies
}

func (api *API) Serve() error {
	api.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		IdleTimeout:  defaultIdleTimeout,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		Handler:      api.setUpServerHandler(),
	}
	return api.Server.ListenAndServe()
}

func (api *API) setUpServerHandler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestTracing)

	mux.Mount("/auth", api.AuthRoutes())
	mux.Mount("/api", api.MapRoutes())

	mux.Get("/ws", api.Deps.WebSocket.HandleConnections)

	// SPA shell and map assets
	mux.Handle("/*", http.FileServer(http.Dir(api.Config.StaticDir)))

	return mux
}

// MapRoutes is the JSON surface the map UI drives.
func (api *API) MapRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodPost, "/generate-route-id", Handler(api.GenerateRouteID))
	mux.Method(http.MethodPost, "/save-drawn-route", Handler(api.SaveDrawnRoute))
	mux.Method(http.MethodGet, "/get-drawn-routes", Handler(api.GetDrawnRoutes))
	mux.Method(http.MethodDelete, "/delete-drawn-route", Handler(api.DeleteDrawnRoute))
	mux.Method(http.MethodPost, "/snap-to-road", Handler(api.SnapToRoad))

	mux.Method(http.MethodGet, "/get-photos", Handler(api.GetPhotos))
	mux.Method(http.MethodPost, "/upload-photo", Handler(api.UploadPhoto))
	mux.Method(http.MethodPost, "/delete-photo", Handler(api.DeletePhoto))
	mux.Method(http.MethodPost, "/save-caption", Handler(api.SaveCaption))

	mux.Method(http.MethodPost, "/upload-gpx", Handler(api.UploadGpx))

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireLogin)
		r.Method(http.MethodPost, "/profile", Handler(api.UpdateProfile))
	})

	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorResponse(w, nil, values.NotAllowedMethod, "method not allowed")
	})

	return mux
}

func (a *API) Shutdown() error {
	a.Deps.Sessions.Close()

	err := a.Server.Shutdown(context.Background())
	if err != nil {
		return err
	}
	return nil
}

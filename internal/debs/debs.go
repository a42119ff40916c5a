package deps

import (
	"log"
	"time"

	"github.com/vinmasci/bikepathmap/config"
	"github.com/vinmasci/bikepathmap/internal/db"
	"github.com/vinmasci/bikepathmap/internal/http/mapbox"
	"github.com/vinmasci/bikepathmap/internal/session"
	"github.com/vinmasci/bikepathmap/util/storage"
	"github.com/vinmasci/bikepathmap/util/websockets"
)

type Dependencies struct {
	DB         *db.DB
	Cloudinary *storage.Cloudinary
	Mapbox     *mapbox.MapboxClient
	Sessions   *session.Registry
	WebSocket  *websockets.WebSocketManager
}

// New wires the shared dependencies. The database pool is constructed
// once by the caller and owned here; handlers never open their own.
func New(cfg *config.Config, database *db.DB) *Dependencies {
	ttl, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		log.Printf("invalid SESSION_TTL %q, using 30m", cfg.SessionTTL)
		ttl = 30 * time.Minute
	}

	deps := Dependencies{
		DB:         database,
		Cloudinary: storage.NewCloudinary(cfg),
		Mapbox:     mapbox.NewMapboxClient(cfg.MapboxAPIKey),
		Sessions:   session.NewRegistry(ttl),
		WebSocket:  websockets.NewWebSocketManager(),
	}
	return &deps
}

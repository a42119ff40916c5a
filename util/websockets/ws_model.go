package websockets

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to connected map clients
const (
	MsgTypeSubscribe      = "subscribe"
	MsgTypeRouteSaved     = "route_saved"
	MsgTypeRouteDeleted   = "route_deleted"
	MsgTypePhotoAdded     = "photo_added"
	MsgTypePhotoDeleted   = "photo_deleted"
	MsgTypeCaptionUpdated = "caption_updated"
)

// Client represents a connected map viewer
type Client struct {
	Conn      *websocket.Conn
	SessionID string
	Latitude  float64
	Longitude float64
}

type WebSocketManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

// Message struct for incoming WebSocket messages
type Message struct {
	Type      string  `json:"type"`
	SessionID string  `json:"session_id,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Event is the envelope broadcast to every connected client when the
// shared map changes.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

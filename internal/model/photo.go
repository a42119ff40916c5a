package model

import (
	"time"

	"github.com/google/uuid"
)

// Photo is a stored map photo. Latitude and longitude are either both
// present or both absent; a photo never carries half a coordinate.
type Photo struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	Caption      string    `json:"caption"`
	OriginalName string    `json:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// PhotoLocation is a hand-placed capture location sent alongside an
// upload. It overrides whatever the EXIF tags say.
type PhotoLocation struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// SaveCaptionRequest is the body of POST /api/save-caption.
type SaveCaptionRequest struct {
	ID      string `json:"id" validate:"required"`
	Caption string `json:"caption"`
}

// PhotoUploadResult is returned by POST /api/upload-photo.
type PhotoUploadResult struct {
	URL       string   `json:"url"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	DbID      string   `json:"dbId"`
}

// GpxUploadResult is returned by POST /api/upload-gpx.
type GpxUploadResult struct {
	URL    string `json:"url"`
	Tracks int    `json:"tracks"`
	Points int    `json:"points"`
}

package rest

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	pkgerrors "github.com/pkg/errors"
	"github.com/vinmasci/bikepathmap/internal/model"
	"github.com/vinmasci/bikepathmap/util"
	"github.com/vinmasci/bikepathmap/util/imagemeta"
	"github.com/vinmasci/bikepathmap/util/tracing"
	"github.com/vinmasci/bikepathmap/util/values"
	"github.com/vinmasci/bikepathmap/util/websockets"
)

func (api *API) GetPhotos(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	photos, err := api.ListPhotosRepo(r.Context())
	if err != nil {
		return respondWithError(err, "failed to get photos", values.Error, &tc)
	}

	return &ServerResponse{
		Success:    true,
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       photos,
	}
}

// photoLocationFromForm reads the optional latitude/longitude form
// fields. Both must be present together and pass coordinate
// validation; absent fields mean the EXIF tags decide.
func photoLocationFromForm(r *http.Request) (*model.PhotoLocation, error) {
	latStr, lonStr := r.FormValue("latitude"), r.FormValue("longitude")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, pkgerrors.New("latitude and longitude must be provided together")
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		return nil, pkgerrors.New("latitude and longitude must be numbers")
	}

	loc := model.PhotoLocation{Latitude: lat, Longitude: lon}
	if err := util.ValidateStruct(loc); err != nil {
		return nil, pkgerrors.Wrap(err, "latitude or longitude out of range")
	}
	return &loc, nil
}

func (api *API) UploadPhoto(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	limitMB := api.Config.MaxPhotoSizeMB
	r.Body = http.MaxBytesReader(w, r.Body, (limitMB+1)*megabyte)

	file, header, err := r.FormFile("photoFile")
	if err != nil {
		return respondWithError(err, "no photo file provided", values.BadRequestBody, &tc)
	}
	defer file.Close()

	if err := checkPhotoUpload(header, limitMB); err != nil {
		return respondWithError(err, err.Error(), values.BadRequestBody, &tc)
	}

	manual, locErr := photoLocationFromForm(r)
	if locErr != nil {
		return respondWithError(locErr, locErr.Error(), values.BadRequestBody, &tc)
	}

	tmpPath, cleanup, err := stageUpload(file, "bpm-photo-*")
	if err != nil {
		return respondWithError(err, "failed to receive upload", values.Error, &tc)
	}
	defer cleanup()

	// EXIF extraction is best-effort: a photo without usable GPS tags
	// simply has no coordinates. A hand-placed location wins over EXIF.
	var lat, lon *float64
	if f, openErr := os.Open(tmpPath); openErr == nil {
		if gps, ok := imagemeta.ExtractGPS(f); ok {
			lat, lon = &gps.Latitude, &gps.Longitude
		}
		f.Close()
	}
	if manual != nil {
		lat, lon = &manual.Latitude, &manual.Longitude
	}

	url, err := api.Deps.Cloudinary.UploadImage(r.Context(), tmpPath, api.Deps.Cloudinary.Folder)
	if err != nil {
		return respondWithError(err, "failed to upload photo to storage", values.Error, &tc)
	}

	photo := model.Photo{
		ID:           util.GenerateUUID(),
		URL:          url,
		Latitude:     lat,
		Longitude:    lon,
		OriginalName: header.Filename,
	}
	if err := api.CreatePhotoRepo(r.Context(), photo); err != nil {
		return respondWithError(err, "failed to record photo", values.Error, &tc)
	}

	api.Deps.WebSocket.BroadcastEvent(websockets.MsgTypePhotoAdded, photo)

	return &ServerResponse{
		Success:    true,
		Message:    "Photo uploaded successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data: model.PhotoUploadResult{
			URL:       url,
			Latitude:  lat,
			Longitude: lon,
			DbID:      photo.ID.String(),
		},
	}
}

func (api *API) DeletePhoto(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	photoID := r.URL.Query().Get("photoId")
	if photoID == "" {
		return respondWithError(nil, "photoId is required", values.BadRequestBody, &tc)
	}

	id, err := util.StringToUUID(photoID)
	if err != nil {
		return respondWithError(err, "invalid photoId format", values.BadRequestBody, &tc)
	}

	if err := api.DeletePhotoRepo(r.Context(), id); err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			return respondWithError(err, "photo not found", values.NotFound, &tc)
		}
		return respondWithError(err, "failed to delete photo", values.Error, &tc)
	}

	api.Deps.WebSocket.BroadcastEvent(websockets.MsgTypePhotoDeleted, map[string]string{"photoId": photoID})

	return &ServerResponse{
		Success:    true,
		Message:    "Photo deleted successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

func (api *API) SaveCaption(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.SaveCaptionRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "id is required", values.BadRequestBody, &tc)
	}

	id, err := util.StringToUUID(req.ID)
	if err != nil {
		return respondWithError(err, "invalid id format", values.BadRequestBody, &tc)
	}

	if err := api.UpdatePhotoCaptionRepo(r.Context(), id, req.Caption); err != nil {
		if errors.Is(err, ErrPhotoNotFound) {
			return respondWithError(err, "photo not found", values.NotFound, &tc)
		}
		return respondWithError(err, "failed to update caption", values.Error, &tc)
	}

	api.Deps.WebSocket.BroadcastEvent(websockets.MsgTypeCaptionUpdated, map[string]string{
		"photoId": req.ID,
		"caption": req.Caption,
	})

	return &ServerResponse{
		Success:    true,
		Message:    "Caption saved successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

package rest

import (
	"net/http"
	"os"

	"github.com/tkrajina/gpxgo/gpx"
	"github.com/vinmasci/bikepathmap/internal/model"
	"github.com/vinmasci/bikepathmap/util"
	"github.com/vinmasci/bikepathmap/util/tracing"
	"github.com/vinmasci/bikepathmap/util/values"
)

// UploadGpx accepts a GPX track log, validates that it parses and
// actually contains track points, then stores it as a raw asset.
func (api *API) UploadGpx(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	limitMB := api.Config.MaxGpxSizeMB
	r.Body = http.MaxBytesReader(w, r.Body, (limitMB+1)*megabyte)

	file, header, err := r.FormFile("gpxFile")
	if err != nil {
		return respondWithError(err, "no GPX file provided", values.BadRequestBody, &tc)
	}
	defer file.Close()

	if err := checkGpxUpload(header, limitMB); err != nil {
		return respondWithError(err, err.Error(), values.BadRequestBody, &tc)
	}

	tmpPath, cleanup, err := stageUpload(file, "bpm-gpx-*")
	if err != nil {
		return respondWithError(err, "failed to receive upload", values.Error, &tc)
	}
	defer cleanup()

	f, err := os.Open(tmpPath)
	if err != nil {
		return respondWithError(err, "failed to read upload", values.Error, &tc)
	}
	gpxData, parseErr := gpx.Parse(f)
	f.Close()
	if parseErr != nil {
		return respondWithError(parseErr, "invalid GPX file", values.BadRequestBody, &tc)
	}

	points := 0
	for _, track := range gpxData.Tracks {
		for _, segment := range track.Segments {
			points += len(segment.Points)
		}
	}
	if points == 0 {
		return respondWithError(nil, "GPX file contains no track points", values.BadRequestBody, &tc)
	}

	url, err := api.Deps.Cloudinary.UploadRaw(r.Context(), tmpPath, api.Deps.Cloudinary.Folder+"/gpx")
	if err != nil {
		return respondWithError(err, "failed to upload GPX to storage", values.Error, &tc)
	}

	return &ServerResponse{
		Success:    true,
		Message:    "GPX uploaded successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data: model.GpxUploadResult{
			URL:    url,
			Tracks: len(gpxData.Tracks),
			Points: points,
		},
	}
}

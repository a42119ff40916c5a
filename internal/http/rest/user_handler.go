package rest

import (
	"net/http"

	"github.com/vinmasci/bikepathmap/internal/model"
	"github.com/vinmasci/bikepathmap/util"
	"github.com/vinmasci/bikepathmap/util/tracing"
	"github.com/vinmasci/bikepathmap/util/values"
)

// UpdateProfile updates the authenticated user's display name and,
// when an image is attached, their avatar. Multipart form: field
// "name" required, file "image" optional.
func (api *API) UpdateProfile(w http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	userID, err := util.GetUserIDFromContext(r.Context())
	if err != nil {
		return respondWithError(err, "unable to get user ID from context", values.NotAuthorised, &tc)
	}

	limitMB := api.Config.MaxPhotoSizeMB
	r.Body = http.MaxBytesReader(w, r.Body, (limitMB+1)*megabyte)

	if err := r.ParseMultipartForm(limitMB * megabyte); err != nil {
		return respondWithError(err, "unable to parse form", values.BadRequestBody, &tc)
	}

	name := r.FormValue("name")
	if !util.NotBlank(name) {
		return respondWithError(nil, "name is required", values.BadRequestBody, &tc)
	}

	var pictureURL *string
	if file, header, fileErr := r.FormFile("image"); fileErr == nil {
		defer file.Close()

		if err := checkPhotoUpload(header, limitMB); err != nil {
			return respondWithError(err, err.Error(), values.BadRequestBody, &tc)
		}

		tmpPath, cleanup, stageErr := stageUpload(file, "bpm-avatar-*")
		if stageErr != nil {
			return respondWithError(stageErr, "failed to receive upload", values.Error, &tc)
		}
		defer cleanup()

		url, uploadErr := api.Deps.Cloudinary.UploadImage(r.Context(), tmpPath, api.Deps.Cloudinary.Folder+"/avatars")
		if uploadErr != nil {
			return respondWithError(uploadErr, "failed to upload profile image", values.Error, &tc)
		}
		pictureURL = &url
	}

	user := model.User{
		ID:         userID,
		FirstName:  &name,
		PictureURL: pictureURL,
	}
	if err := api.UpdateUserProfileRepo(r.Context(), user); err != nil {
		return respondWithError(err, "failed to update profile", values.Error, &tc)
	}

	return &ServerResponse{
		Success:    true,
		Message:    "Profile updated successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
	}
}

package rest

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrTooLarge is returned before any storage call when the upload
	// exceeds the configured size limit.
	ErrTooLarge = errors.New("file exceeds the size limit")
	// ErrUnsupportedType is returned when the file is not an accepted
	// format for the endpoint.
	ErrUnsupportedType = errors.New("unsupported file type")
)

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

const megabyte = int64(1 << 20)

func checkPhotoUpload(header *multipart.FileHeader, limitMB int64) error {
	if header.Size > limitMB*megabyte {
		return errors.Wrapf(ErrTooLarge, "%d bytes, limit %d MB", header.Size, limitMB)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !photoExtensions[ext] {
		return errors.Wrapf(ErrUnsupportedType, "extension %q", ext)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType != "" && contentType != "image/jpeg" && contentType != "image/png" {
		return errors.Wrapf(ErrUnsupportedType, "content type %q", contentType)
	}

	return nil
}

func checkGpxUpload(header *multipart.FileHeader, limitMB int64) error {
	if header.Size > limitMB*megabyte {
		return errors.Wrapf(ErrTooLarge, "%d bytes, limit %d MB", header.Size, limitMB)
	}

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".gpx" {
		return errors.Wrapf(ErrUnsupportedType, "extension %q", ext)
	}

	return nil
}

// stageUpload copies the received multipart file to a temporary local
// file so it can be handed to the storage client by path. The returned
// cleanup removes the file and is safe to defer on every exit path.
func stageUpload(file multipart.File, pattern string) (string, func(), error) {
	tmp, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", nil, errors.Wrap(err, "creating temp file")
	}

	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	if _, err := io.Copy(tmp, file); err != nil {
		cleanup()
		return "", nil, errors.Wrap(err, "staging upload")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, errors.Wrap(err, "staging upload")
	}

	return tmp.Name(), cleanup, nil
}

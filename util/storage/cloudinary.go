package storage

import (
	"context"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
	"github.com/vinmasci/bikepathmap/config"
)

// ErrStorageUnavailable is returned when the object-storage call fails
// in transport, as opposed to the request being rejected.
var ErrStorageUnavailable = errors.New("object storage unavailable")

type Cloudinary struct {
	CLD    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinary(cfg *config.Config) *Cloudinary {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}

	return &Cloudinary{CLD: cld, Folder: cfg.CloudinaryFolder}
}

// UploadImage uploads an image file from the local path and returns its
// public URL.
func (c *Cloudinary) UploadImage(ctx context.Context, filePath string, folder string) (string, error) {
	resp, err := c.CLD.Upload.Upload(ctx, filePath, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	return resp.SecureURL, nil
}

// UploadRaw uploads a non-image asset (GPX tracks) and returns its
// public URL.
func (c *Cloudinary) UploadRaw(ctx context.Context, filePath string, folder string) (string, error) {
	resp, err := c.CLD.Upload.Upload(ctx, filePath, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "raw",
	})
	if err != nil {
		return "", errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	return resp.SecureURL, nil
}

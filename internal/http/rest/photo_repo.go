package rest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vinmasci/bikepathmap/internal/model"
)

// ErrPhotoNotFound is returned when no photo matches the identifier.
var ErrPhotoNotFound = errors.New("photo not found")

func (api *API) CreatePhotoRepo(ctx context.Context, photo model.Photo) error {
	stmt := `
        INSERT INTO photos (id, url, latitude, longitude, caption, original_name)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := api.Deps.DB.Pool().Exec(ctx, stmt,
		photo.ID,
		photo.URL,
		photo.Latitude,
		photo.Longitude,
		photo.Caption,
		photo.OriginalName,
	)
	if err != nil {
		return fmt.Errorf("creating photo: %w", err)
	}
	return nil
}

func (api *API) ListPhotosRepo(ctx context.Context) ([]model.Photo, error) {
	stmt := `
        SELECT id, url, latitude, longitude, caption, original_name, uploaded_at
        FROM photos
        ORDER BY uploaded_at DESC
    `
	rows, err := api.Deps.DB.Pool().Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty table serializes as [] rather than omitting
	// the field.
	photos := []model.Photo{}
	for rows.Next() {
		var photo model.Photo
		err := rows.Scan(
			&photo.ID,
			&photo.URL,
			&photo.Latitude,
			&photo.Longitude,
			&photo.Caption,
			&photo.OriginalName,
			&photo.UploadedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	return photos, nil
}

func (api *API) UpdatePhotoCaptionRepo(ctx context.Context, id uuid.UUID, caption string) error {
	stmt := `UPDATE photos SET caption = $2 WHERE id = $1`

	result, err := api.Deps.DB.Pool().Exec(ctx, stmt, id, caption)
	if err != nil {
		return fmt.Errorf("updating caption: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

func (api *API) DeletePhotoRepo(ctx context.Context, id uuid.UUID) error {
	stmt := `DELETE FROM photos WHERE id = $1`

	result, err := api.Deps.DB.Pool().Exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPhotoNotFound
	}
	return nil
}

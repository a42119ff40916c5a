package rest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/vinmasci/bikepathmap/internal/model"
)

// ErrRouteNotFound is returned when no drawn route exists for the
// identifier. Repeated deletes of the same id keep returning it.
var ErrRouteNotFound = errors.New("drawn route not found")

func (api *API) CreateDrawnRouteRepo(ctx context.Context, route model.DrawnRoute) error {
	stmt := `
        INSERT INTO drawn_routes (id, raw_points, snapped, metadata)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE
        SET raw_points = EXCLUDED.raw_points,
            snapped = EXCLUDED.snapped,
            metadata = EXCLUDED.metadata
    `
	var snapped interface{}
	if route.Snapped != nil {
		snapped = route.Snapped
	}

	_, err := api.Deps.DB.Pool().Exec(ctx, stmt,
		route.ID,
		route.RawPoints,
		snapped,
		route.Metadata,
	)
	if err != nil {
		return fmt.Errorf("creating drawn route: %w", err)
	}
	return nil
}

func (api *API) GetDrawnRouteRepo(ctx context.Context, id string) (model.DrawnRoute, error) {
	var route model.DrawnRoute
	stmt := `
        SELECT id, raw_points, snapped, metadata, created_at
        FROM drawn_routes
        WHERE id = $1
    `

	err := api.Deps.DB.Pool().QueryRow(ctx, stmt, id).Scan(
		&route.ID,
		&route.RawPoints,
		&route.Snapped,
		&route.Metadata,
		&route.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.DrawnRoute{}, ErrRouteNotFound
		}
		return model.DrawnRoute{}, fmt.Errorf("getting drawn route: %w", err)
	}

	return route, nil
}

func (api *API) ListDrawnRoutesRepo(ctx context.Context) ([]model.DrawnRoute, error) {
	stmt := `
        SELECT id, raw_points, snapped, metadata, created_at
        FROM drawn_routes
        ORDER BY created_at DESC
    `
	rows, err := api.Deps.DB.Pool().Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("listing drawn routes: %w", err)
	}
	defer rows.Close()

	// Non-nil so an empty table serializes as [] rather than omitting
	// the field.
	routes := []model.DrawnRoute{}
	for rows.Next() {
		var route model.DrawnRoute
		err := rows.Scan(
			&route.ID,
			&route.RawPoints,
			&route.Snapped,
			&route.Metadata,
			&route.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning drawn route: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing drawn routes: %w", err)
	}
	return routes, nil
}

func (api *API) DeleteDrawnRouteRepo(ctx context.Context, id string) error {
	stmt := `DELETE FROM drawn_routes WHERE id = $1`

	result, err := api.Deps.DB.Pool().Exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("deleting drawn route: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRouteNotFound
	}
	return nil
}

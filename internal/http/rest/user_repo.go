package rest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/vinmasci/bikepathmap/internal/model"
)

// ErrUserExists is returned when an account already holds the email.
var ErrUserExists = errors.New("user already exists")

// CreateUserIfAbsentRepo inserts the user unless the email is already
// taken. The existence check and insert run in one transaction so two
// concurrent signups cannot both pass the check.
func (api *API) CreateUserIfAbsentRepo(ctx context.Context, user model.User) error {
	return api.Deps.DB.RunInTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, user.Email).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking for existing user: %w", err)
		}
		if exists {
			return ErrUserExists
		}

		stmt := `
            INSERT INTO users (id, email, first_name, last_name, picture_url, auth_provider, is_verified)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
        `
		_, err = tx.Exec(ctx, stmt,
			user.ID,
			user.Email,
			user.FirstName,
			user.LastName,
			user.PictureURL,
			user.AuthProvider,
			user.IsVerified,
		)
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		return nil
	})
}

func (api *API) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	stmt := `
        SELECT id, email, first_name, last_name, picture_url, auth_provider, is_verified, created_at, updated_at
        FROM users
        WHERE email = $1
    `
	err := api.Deps.DB.Pool().QueryRow(ctx, stmt, email).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PictureURL,
		&user.AuthProvider,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.User{}, fmt.Errorf("user with email %s not found", email)
		}
		return model.User{}, fmt.Errorf("getting user by email: %w", err)
	}
	return user, nil
}

func (api *API) GetUserByID(ctx context.Context, id string) (model.User, error) {
	var user model.User
	stmt := `
        SELECT id, email, first_name, last_name, picture_url, auth_provider, is_verified, created_at, updated_at
        FROM users
        WHERE id = $1
    `
	err := api.Deps.DB.Pool().QueryRow(ctx, stmt, id).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PictureURL,
		&user.AuthProvider,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.User{}, fmt.Errorf("user with id %s not found", id)
		}
		return model.User{}, fmt.Errorf("getting user by id: %w", err)
	}
	return user, nil
}

func (api *API) UpdateUserProfileRepo(ctx context.Context, user model.User) error {
	stmt := `
        UPDATE users
        SET first_name = $2,
            picture_url = COALESCE($3, picture_url),
            updated_at = NOW()
        WHERE id = $1
    `
	result, err := api.Deps.DB.Pool().Exec(ctx, stmt,
		user.ID,
		user.FirstName,
		user.PictureURL,
	)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user with id %s not found", user.ID)
	}
	return nil
}

package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"
	googleauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/vinmasci/bikepathmap/internal/model"
	"github.com/vinmasci/bikepathmap/util"
	"github.com/vinmasci/bikepathmap/util/tracing"
	"github.com/vinmasci/bikepathmap/util/values"
)

func (api *API) AuthRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodPost, "/google/create", Handler(api.CreateAccountWithGoogle))
	mux.Method(http.MethodPost, "/google/login", Handler(api.LoginWithGoogle))
	mux.Method(http.MethodPost, "/refresh", Handler(api.RefreshToken))
	return mux
}

// googleUserInfo verifies the access token against Google and returns
// the owning account's profile.
func (api *API) googleUserInfo(ctx context.Context, accessToken string) (*googleauth.Userinfo, error) {
	token := &oauth2.Token{AccessToken: accessToken}
	svc, err := googleauth.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return nil, err
	}
	return svc.Userinfo.Get().Do()
}

func (api *API) CreateAccountWithGoogle(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.GoogleAuthRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "access_token is required", values.BadRequestBody, &tc)
	}

	userInfo, err := api.googleUserInfo(r.Context(), req.AccessToken)
	if err != nil {
		return respondWithError(err, "failed to verify Google token", values.NotAuthorised, &tc)
	}

	verified := userInfo.VerifiedEmail != nil && *userInfo.VerifiedEmail
	user := model.User{
		ID:           util.GenerateUUID(),
		Email:        userInfo.Email,
		FirstName:    &userInfo.GivenName,
		LastName:     &userInfo.FamilyName,
		PictureURL:   &userInfo.Picture,
		AuthProvider: "google",
		IsVerified:   verified,
	}
	if err := api.CreateUserIfAbsentRepo(r.Context(), user); err != nil {
		if errors.Is(err, ErrUserExists) {
			return respondWithError(err, "user already exists", values.Conflict, &tc)
		}
		return respondWithError(err, "failed to create new user", values.Error, &tc)
	}

	tokenString, _, err := api.createToken(user.ID.String())
	if err != nil {
		return respondWithError(err, "failed to create token", values.Error, &tc)
	}
	refreshString, _, err := api.createRefreshToken(user.ID.String())
	if err != nil {
		return respondWithError(err, "failed to create token", values.Error, &tc)
	}

	return &ServerResponse{
		Success:    true,
		Message:    "Account created successfully",
		Status:     values.Created,
		StatusCode: util.StatusCode(values.Created),
		Data: model.LoginResponse{
			User: &model.LoginUserResponse{
				ID:         user.ID,
				FirstName:  user.FirstName,
				LastName:   user.LastName,
				Email:      user.Email,
				IsVerified: user.IsVerified,
			},
			Token:        tokenString,
			RefreshToken: refreshString,
		},
	}
}

func (api *API) LoginWithGoogle(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.GoogleAuthRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "access_token is required", values.BadRequestBody, &tc)
	}

	userInfo, err := api.googleUserInfo(r.Context(), req.AccessToken)
	if err != nil {
		return respondWithError(err, "failed to verify Google token", values.NotAuthorised, &tc)
	}

	user, err := api.GetUserByEmail(r.Context(), userInfo.Email)
	if err != nil {
		return respondWithError(err, "no account for this Google user", values.NotFound, &tc)
	}

	tokenString, _, err := api.createToken(user.ID.String())
	if err != nil {
		return respondWithError(err, "failed to create token", values.Error, &tc)
	}
	refreshString, _, err := api.createRefreshToken(user.ID.String())
	if err != nil {
		return respondWithError(err, "failed to create token", values.Error, &tc)
	}

	return &ServerResponse{
		Success:    true,
		Message:    "Logged in successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: model.LoginResponse{
			User: &model.LoginUserResponse{
				ID:         user.ID,
				FirstName:  user.FirstName,
				LastName:   user.LastName,
				Email:      user.Email,
				IsVerified: user.IsVerified,
			},
			Token:        tokenString,
			RefreshToken: refreshString,
		},
	}
}

// RefreshToken exchanges a valid refresh token for a fresh token pair.
// The refresh token rotates on every use.
func (api *API) RefreshToken(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.RefreshRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(req); err != nil {
		return respondWithError(err, "refresh_token is required", values.BadRequestBody, &tc)
	}

	claims, err := api.verifyToken(req.RefreshToken, true)
	if err != nil {
		if err.Error() == "token expired" {
			return respondWithError(err, "refresh token expired", values.TokenExpired, &tc)
		}
		return respondWithError(err, "invalid refresh token", values.NotAuthorised, &tc)
	}

	tokenString, _, err := api.createToken(claims.UserID)
	if err != nil {
		return respondWithError(err, "failed to create token", values.Error, &tc)
	}
	refreshString, _, err := api.createRefreshToken(claims.UserID)
	if err != nil {
		return respondWithError(err, "failed to create token", values.Error, &tc)
	}

	return &ServerResponse{
		Success:    true,
		Message:    "Token refreshed",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data: map[string]string{
			"token":         tokenString,
			"refresh_token": refreshString,
		},
	}
}

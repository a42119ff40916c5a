package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRefreshTokenRotatesPair(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	handler := RequestTracing(api.AuthRoutes())

	refresh, _, err := api.createRefreshToken("2f1e7c52-8f2a-4f0d-9a76-3f6f9a9f4b10")
	if err != nil {
		t.Fatalf("minting refresh token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/refresh",
		strings.NewReader(`{"refresh_token":"`+refresh+`"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data := decodeResponse(t, rec)["data"].(map[string]interface{})
	token, _ := data["token"].(string)
	rotated, _ := data["refresh_token"].(string)
	if token == "" || rotated == "" {
		t.Fatalf("expected a fresh token pair, got token=%q refresh=%q", token, rotated)
	}

	// The new access token must pass access-token verification.
	claims, err := api.verifyToken(token, false)
	if err != nil {
		t.Fatalf("verifying refreshed access token: %v", err)
	}
	if claims.UserID != "2f1e7c52-8f2a-4f0d-9a76-3f6f9a9f4b10" {
		t.Errorf("refreshed token subject = %q, want the original user", claims.UserID)
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	handler := RequestTracing(api.AuthRoutes())

	// An access token is signed with a different secret and typ; it
	// must not be accepted as a refresh token.
	access, _, err := api.createToken("2f1e7c52-8f2a-4f0d-9a76-3f6f9a9f4b10")
	if err != nil {
		t.Fatalf("minting access token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/refresh",
		strings.NewReader(`{"refresh_token":"`+access+`"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	handler := RequestTracing(api.AuthRoutes())

	req := httptest.NewRequest(http.MethodPost, "/refresh",
		strings.NewReader(`{"refresh_token":"not-a-jwt"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRefreshTokenMissingBody(t *testing.T) {
	api, _ := newTestAPI(t, nil)
	handler := RequestTracing(api.AuthRoutes())

	req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

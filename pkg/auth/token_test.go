package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/shreemobiles/storefront-backend/pkg/config"
	"github.com/shreemobiles/storefront-backend/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "shreemobiles",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	userID := uuid.New()

	payload := AccessTokenPayload{
		UserID: userID,
		Role:   enums.UserRoleAdmin,
		JTI:    "session-1",
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != enums.UserRoleAdmin {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %s", claims.Issuer)
	}
	if claims.ID != "session-1" {
		t.Fatalf("expected jti session-1, got %s", claims.ID)
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now.Add(29*time.Minute)) {
		t.Fatalf("expiry not applied")
	}
}

func TestMintAccessTokenGeneratesJTI(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "shreemobiles", ExpirationMinutes: 5}
	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleUser,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if strings.TrimSpace(claims.ID) == "" {
		t.Fatalf("expected generated jti")
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	base := config.JWTConfig{Secret: "secret", Issuer: "shreemobiles", ExpirationMinutes: 5}
	payload := AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRoleUser}

	cases := []struct {
		name    string
		cfg     config.JWTConfig
		payload AccessTokenPayload
	}{
		{"missing secret", config.JWTConfig{Issuer: "shreemobiles", ExpirationMinutes: 5}, payload},
		{"missing issuer", config.JWTConfig{Secret: "secret", ExpirationMinutes: 5}, payload},
		{"zero expiry", config.JWTConfig{Secret: "secret", Issuer: "shreemobiles"}, payload},
		{"bad role", base, AccessTokenPayload{UserID: uuid.New(), Role: enums.UserRole("root")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MintAccessToken(tc.cfg, time.Now().UTC(), tc.payload); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "shreemobiles", ExpirationMinutes: 5}
	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleUser,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}
	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected signature validation failure")
	}
}

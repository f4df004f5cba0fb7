package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/google/uuid"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "aperture",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now().UTC()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID:  userID,
		Email:   "asha@example.com",
		IsAdmin: true,
		JTI:     "session-1",
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != userID || claims.Email != "asha@example.com" || !claims.IsAdmin {
		t.Fatalf("claims not preserved: %+v", claims)
	}
	if claims.ID != "session-1" {
		t.Fatalf("expected jti session-1, got %q", claims.ID)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if !claims.ExpiresAt.Time.Equal(now.Add(30 * time.Minute).Truncate(time.Second)) {
		t.Fatalf("unexpected expiry %s", claims.ExpiresAt.Time)
	}
}

func TestMintGeneratesJTI(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		t.Fatalf("expected uuid jti, got %q", claims.ID)
	}
}

func TestMintRejectsInvalidInput(t *testing.T) {
	cfg := testJWTConfig()
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{}); err == nil {
		t.Fatal("expected error without user id")
	}
	cfg.ExpirationMinutes = 0
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()}); err == nil {
		t.Fatal("expected error without ttl")
	}
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	cfg := testJWTConfig()
	past := time.Now().Add(-2 * time.Hour)
	token, err := MintAccessToken(cfg, past, AccessTokenPayload{UserID: uuid.New(), JTI: "old"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to fail")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("allow expired: %v", err)
	}
	if claims.ID != "old" {
		t.Fatalf("expected jti old, got %q", claims.ID)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessTokenAllowExpired(other, token); err == nil {
		t.Fatal("expected signature failure")
	}

	other = cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessTokenAllowExpired(other, token); err == nil || !strings.Contains(err.Error(), "issuer") {
		t.Fatalf("expected issuer mismatch, got %v", err)
	}
}

package jwtutil

import (
	"testing"

	"fleet-service/internal/model"
	"fleet-service/pkg/config"
)

func TestGenerateAndValidateToken(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	user := &model.User{Username: "jdoe", Role: model.RoleManager}
	user.ID = 42

	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "jdoe" || claims.Role != model.RoleManager {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	user := &model.User{Username: "jdoe", Role: model.RoleUser}
	user.ID = 7
	token, err := GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token + "x"); err == nil {
		t.Fatal("tampered token must not validate")
	}

	// A token signed under a different key must be rejected too.
	Initialize(&config.JWTConfig{SigningKey: "another-key", ExpirationHours: 1})
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("token signed with old key must not validate")
	}
}

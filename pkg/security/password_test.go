package security_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/security"
)

var testPasswordConfig = config.PasswordConfig{
	ArgonMemoryKB:    8 * 1024,
	ArgonTime:        1,
	ArgonParallelism: 1,
	ArgonSaltLen:     16,
	ArgonKeyLen:      32,
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("kerala2024", testPasswordConfig)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=8192,t=1,p=1$") {
		t.Fatalf("unexpected hash format %q", hash)
	}

	ok, err := security.VerifyPassword("kerala2024", hash)
	if err != nil || !ok {
		t.Fatalf("expected password to verify, ok=%v err=%v", ok, err)
	}
	ok, err = security.VerifyPassword("kerala2025", hash)
	if err != nil || ok {
		t.Fatalf("expected mismatch, ok=%v err=%v", ok, err)
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := security.HashPassword("", testPasswordConfig); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=1,t=1,p=1$***$a2V5",
	} {
		if _, err := security.VerifyPassword("x", encoded); !errors.Is(err, security.ErrInvalidHash) {
			t.Errorf("expected ErrInvalidHash for %q, got %v", encoded, err)
		}
	}
}

func TestValidateStrength(t *testing.T) {
	cases := map[string]bool{
		"short1":      false,
		"onlyletters": false,
		"12345678":    false,
		"kochi2024":   true,
	}
	for password, valid := range cases {
		err := security.ValidateStrength(password)
		if valid && err != nil {
			t.Errorf("%q: unexpected error %v", password, err)
		}
		if !valid && !errors.Is(err, security.ErrWeakPassword) {
			t.Errorf("%q: expected ErrWeakPassword, got %v", password, err)
		}
	}
}

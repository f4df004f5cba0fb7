package auth

import (
	"context"
	"testing"

	"github.com/C00lPIXER/aperture/internal/users"
	"github.com/C00lPIXER/aperture/pkg/config"
	"github.com/C00lPIXER/aperture/pkg/db/dbtest"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/security"
)

func newRegisterService(t *testing.T) (RegisterService, *users.Repository) {
	t.Helper()
	repo := users.NewRepository(dbtest.Open(t))
	svc, err := NewRegisterService(RegisterServiceParams{Users: repo, PasswordConfig: config.PasswordConfig{}})
	if err != nil {
		t.Fatalf("build register service: %v", err)
	}
	return svc, repo
}

func TestRegisterCreatesShopper(t *testing.T) {
	svc, repo := newRegisterService(t)
	phone := "9876543210"

	dto, err := svc.Register(context.Background(), RegisterRequest{
		Email:    " Asha@Example.com",
		Password: "kochi2024",
		Name:     " Asha ",
		Phone:    &phone,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.Email != "asha@example.com" || dto.Name != "Asha" || dto.IsAdmin {
		t.Fatalf("unexpected user %+v", dto)
	}

	stored, err := repo.FindByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("find registered user: %v", err)
	}
	ok, err := security.VerifyPassword("kochi2024", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify, ok=%v err=%v", ok, err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newRegisterService(t)
	req := RegisterRequest{Email: "asha@example.com", Password: "kochi2024", Name: "Asha"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}

	req.Email = "ASHA@example.com"
	_, err := svc.Register(context.Background(), req)
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := newRegisterService(t)
	_, err := svc.Register(context.Background(), RegisterRequest{Email: "asha@example.com", Password: "short", Name: "Asha"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminRegisterFlagsAdmin(t *testing.T) {
	repo := users.NewRepository(dbtest.Open(t))
	svc, err := NewAdminRegisterService(AdminRegisterServiceParams{Users: repo})
	if err != nil {
		t.Fatalf("build admin register: %v", err)
	}
	dto, err := svc.Register(context.Background(), AdminRegisterRequest{Name: "Ops", Email: "ops@example.com", Password: "opsadmin1"})
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	if !dto.IsAdmin {
		t.Fatalf("expected admin flag")
	}
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medaccred/accreditation-backend/internal/apperr"
	"github.com/medaccred/accreditation-backend/internal/requestdata"
	"github.com/medaccred/accreditation-backend/internal/services"
)

func newAuthService(f *fixture) services.AuthService {
	return services.NewAuthService(f.db, f.log, f.userRepo, f.userTokenRepo, "test-secret", time.Hour, 24*time.Hour)
}

func TestAuth_RegisterLoginRoundTrip(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	user, err := svc.Register(ctx, services.RegisterInput{
		Email:     "Reviewer@PMDC.org",
		Password:  "correct horse",
		FirstName: "Test",
		LastName:  "Reviewer",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "reviewer@pmdc.org" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.Password == "correct horse" {
		t.Fatalf("password stored in the clear")
	}

	access, refresh, err := svc.Login(ctx, "reviewer@pmdc.org", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens")
	}

	authedCtx, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("token context: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("token must resolve to the registered user, got %+v", rd)
	}

	if _, _, err := svc.Login(ctx, "reviewer@pmdc.org", "wrong password"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
}

func TestAuth_RefreshRotatesToken(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	if _, err := svc.Register(ctx, services.RegisterInput{
		Email:    "reviewer@pmdc.org",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, refresh, err := svc.Login(ctx, "reviewer@pmdc.org", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, newRefresh, err := svc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if newRefresh == refresh {
		t.Fatalf("refresh token must rotate")
	}
	if _, _, err := svc.Refresh(ctx, refresh); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("old refresh token must be dead, got %v", err)
	}
}

func TestAuth_LogoutInvalidatesRefresh(t *testing.T) {
	f := newFixture(t)
	svc := newAuthService(f)
	ctx := context.Background()

	user, err := svc.Register(ctx, services.RegisterInput{
		Email:    "reviewer@pmdc.org",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	_, refresh, err := svc.Login(ctx, "reviewer@pmdc.org", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, user.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, _, err := svc.Refresh(ctx, refresh); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("refresh after logout must fail, got %v", err)
	}

	_, err = svc.Register(ctx, services.RegisterInput{Email: "not-an-email", Password: "correct horse"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for bad email, got %v", err)
	}
}

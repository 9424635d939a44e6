package app_test

import (
	"context"
	"errors"
	"testing"

	"quizdesk/internal/app"
	"quizdesk/internal/domain"
	"quizdesk/internal/infra/memory"
)

func TestLoginStoresTokenAndLogoutClears(t *testing.T) {
	ctx := context.Background()
	tokens := memory.NewTokenStore()
	auth := app.NewAuth(tokens, newFakeGateway())

	if err := auth.Login(ctx, "admin", "admin"); err != nil {
		t.Fatalf("login: %v", err)
	}
	token, ok, _ := tokens.Get(ctx)
	if !ok || token != "token-admin" {
		t.Fatalf("expected stored token, got %q %v", token, ok)
	}
	if !auth.LoggedIn(ctx) {
		t.Fatalf("expected logged in")
	}

	if err := auth.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if auth.LoggedIn(ctx) {
		t.Fatalf("expected logged out")
	}
}

func TestFailedLoginLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	tokens := memory.NewTokenStore()
	_ = tokens.Set(ctx, "previous")
	auth := app.NewAuth(tokens, newFakeGateway())

	err := auth.Login(ctx, "admin", "wrong")
	if !errors.Is(err, domain.ErrAuthExpired) {
		t.Fatalf("expected 401 error, got %v", err)
	}
	if msg := domain.Message(err, "Login failed"); msg != "Incorrect username or password" {
		t.Fatalf("unexpected message %q", msg)
	}
	if token, _, _ := tokens.Get(ctx); token != "previous" {
		t.Fatalf("expected store untouched, got %q", token)
	}
}

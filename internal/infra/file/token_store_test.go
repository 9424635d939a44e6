package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTokenStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")

	first := NewTokenStore(path, "quiz_admin_token")
	if first.IsPresent(ctx) {
		t.Fatalf("expected no token before login")
	}
	if err := first.Set(ctx, "jwt-token"); err != nil {
		t.Fatalf("set: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "quiz_admin_token: jwt-token") {
		t.Fatalf("unexpected file contents %q", data)
	}

	second := NewTokenStore(path, "quiz_admin_token")
	token, ok, err := second.Get(ctx)
	if err != nil || !ok || token != "jwt-token" {
		t.Fatalf("expected token from disk, got %q %v %v", token, ok, err)
	}

	if err := second.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected token file removed, got %v", err)
	}
	if err := second.Clear(ctx); err != nil {
		t.Fatalf("clearing twice should be a no-op: %v", err)
	}
}

func TestTokenStoreCorruptFileCountsAsAbsent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	if err := os.WriteFile(path, []byte("[unterminated"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	store := NewTokenStore(path, "quiz_admin_token")
	if store.IsPresent(ctx) {
		t.Fatalf("expected corrupt file to read as no token")
	}
	if _, _, err := store.Get(ctx); err == nil {
		t.Fatalf("expected decode error")
	}
}

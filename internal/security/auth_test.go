package security

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier(map[string]string{
		"tok-alice": "alice",
		"tok-bob":   "bob",
	})
	ctx := context.Background()

	identity, err := v.Verify(ctx, "tok-alice")
	if err != nil {
		t.Fatal(err)
	}
	if identity.UserID != "alice" {
		t.Fatalf("expected alice, got %s", identity.UserID)
	}

	_, err = v.Verify(ctx, "tok-unknown")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRemoteVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer valid-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"user_id": "alice"}`))
	}))
	defer srv.Close()

	v := NewRemoteVerifier(srv.URL)
	ctx := context.Background()

	identity, err := v.Verify(ctx, "valid-token")
	if err != nil {
		t.Fatal(err)
	}
	if identity.UserID != "alice" {
		t.Fatalf("expected alice, got %s", identity.UserID)
	}

	_, err = v.Verify(ctx, "expired-token")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestRemoteVerifierEmptyUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	v := NewRemoteVerifier(srv.URL)
	_, err := v.Verify(context.Background(), "any")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty user id, got %v", err)
	}
}

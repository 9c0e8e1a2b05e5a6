package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cympfh/shanghai/internal/auth"
)

func authHandler(tokenHash string) http.Handler {
	cfg := WriteAuthConfig{
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		TokenHash: tokenHash,
	}
	return WriteAuth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestWriteAuth_DisabledWithoutHash(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/shanghai/memos", nil)
	rec := httptest.NewRecorder()

	authHandler("").ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected pass-through without token hash, got %d", rec.Code)
	}
}

func TestWriteAuth_MissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/shanghai/memos", nil)
	rec := httptest.NewRecorder()

	authHandler("$argon2id$v=19$m=65536,t=3,p=4$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaGhhc2g").ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for missing token, got %d", rec.Code)
	}
}

func TestWriteAuth_ValidToken(t *testing.T) {
	token, err := auth.GenerateWriteToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/shanghai/memos", nil)
	req.Header.Set("Authorization", "Bearer "+token.Plaintext)
	rec := httptest.NewRecorder()

	authHandler(token.Hash).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected valid token to pass, got %d", rec.Code)
	}
}

func TestWriteAuth_WrongToken(t *testing.T) {
	token, err := auth.GenerateWriteToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	other, err := auth.GenerateWriteToken()
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/shanghai/memos", nil)
	req.Header.Set("Authorization", "Bearer "+other.Plaintext)
	rec := httptest.NewRecorder()

	authHandler(token.Hash).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong token, got %d", rec.Code)
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"", ""},
		{"Bearer", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		if got := bearerToken(req); got != tt.want {
			t.Errorf("header %q: got %q, want %q", tt.header, got, tt.want)
		}
	}
}

package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cympfh/shanghai/internal/auth"
)

// WriteAuthConfig holds configuration for write authentication.
type WriteAuthConfig struct {
	Logger *slog.Logger
	// TokenHash is the Argon2id PHC hash of the write token.
	// Empty disables authentication; mutations are then open, matching
	// the secret-in-URL trust model of the upstream journal.
	TokenHash string
}

// WriteAuth returns middleware that guards mutating endpoints with a
// bearer write token. The token is verified against the configured
// Argon2id hash; the plaintext is never stored server-side.
func WriteAuth(cfg WriteAuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.TokenHash == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "MISSING_TOKEN", "Write token required")
				return
			}

			if !auth.ValidateTokenFormat(token) {
				writeAuthError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid write token")
				return
			}

			ok, err := auth.VerifyToken(token, cfg.TokenHash)
			if err != nil {
				cfg.Logger.Error("write token verification failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, http.StatusInternalServerError, "AUTH_ERROR", "Authentication unavailable")
				return
			}

			if !ok {
				tokenID, _ := auth.TokenID(token)
				cfg.Logger.Warn("write token rejected",
					slog.String("token_id", tokenID),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid write token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}

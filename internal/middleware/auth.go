package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/passgen/passgen-go/internal/crypto"
)

type contextKey string

const (
	clientKey  contextKey = "client"
	requestKey contextKey = "request"
)

// requestInfo is filled in by inner middleware and read back by Logger.
type requestInfo struct {
	client string
}

// APIAuth admits requests carrying a valid Bearer API token. The token's
// client name is stored in the request context and on the access log line.
func APIAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, reason := bearerToken(r.Header.Get("Authorization"))
			if reason != "" {
				reject(w, r, reason)
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				reject(w, r, "invalid or expired token")
				return
			}

			if info, ok := r.Context().Value(requestKey).(*requestInfo); ok {
				info.client = claims.Client
			}
			ctx := context.WithValue(r.Context(), clientKey, claims.Client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken returns the token from an Authorization header, or a reason it
// could not be taken.
func bearerToken(header string) (string, string) {
	if header == "" {
		return "", "missing authorization header"
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", "invalid authorization format"
	}
	return token, ""
}

func reject(w http.ResponseWriter, r *http.Request, reason string) {
	slog.Warn("api token rejected", "reason", reason, "path", r.URL.Path, "remote", r.RemoteAddr)
	writeJSONError(w, http.StatusUnauthorized, reason)
}

// ClientFromContext returns the API client named by the request's token.
func ClientFromContext(ctx context.Context) (string, bool) {
	client, ok := ctx.Value(clientKey).(string)
	return client, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

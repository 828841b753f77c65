// Package middleware provides various middleware functionality.
package middleware

import (
	"context"
	"net/http"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/config"
)

// APIKeyHeader is the header clients authenticate with.
const APIKeyHeader = "X-API-Key"

type clientContextKey struct{}

// KeyHandler sets object structure.
type KeyHandler struct {
	// clients maps API keys to client names
	clients map[string]string
}

// NewKeyHandler initializes a new API key handler from the configured client set.
func NewKeyHandler(cfg *config.Config) (*KeyHandler, error) {
	clients := make(map[string]string, len(cfg.AuthConfig.Clients))
	for name, key := range cfg.AuthConfig.Clients {
		if key == "" {
			continue
		}
		clients[key] = name
	}
	return &KeyHandler{clients: clients}, nil
}

// KeyHandle provides API key authentication functionality. Requests without a
// valid key are rejected; authenticated requests carry the client name in the
// request context.
func (k *KeyHandler) KeyHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(APIKeyHeader)
		if key == "" {
			http.Error(w, "missing API key", http.StatusForbidden)
			return
		}
		name, ok := k.clients[key]
		if !ok {
			http.Error(w, "invalid API key", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), clientContextKey{}, name)))
	})
}

// ClientFromContext returns the authenticated client name stored by KeyHandle.
func ClientFromContext(ctx context.Context) string {
	name, _ := ctx.Value(clientContextKey{}).(string)
	return name
}

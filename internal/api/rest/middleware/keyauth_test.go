package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/config"
)

func newKeyHandler(t *testing.T) *KeyHandler {
	t.Helper()
	cfg := &config.Config{
		AuthConfig: &config.AuthConfig{
			Clients: map[string]string{"acme": "acme-key-123"},
		},
	}
	handler, err := NewKeyHandler(cfg)
	require.NoError(t, err)
	return handler
}

func TestKeyHandle(t *testing.T) {
	keyHandler := newKeyHandler(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ClientFromContext(r.Context())))
	})
	server := httptest.NewServer(keyHandler.KeyHandle(next))
	defer server.Close()

	tests := []struct {
		name         string
		key          string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "missing key",
			key:          "",
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "invalid key",
			key:          "wrong-key",
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "valid key",
			key:          "acme-key-123",
			expectedCode: http.StatusOK,
			expectedBody: "acme",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			require.NoError(t, err)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			resp, err := server.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
			if tt.expectedBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.expectedBody, string(body))
			}
		})
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/config"
)

func newTrustedNetHandler(subnet string) *TrustedNetHandler {
	cfg := &config.Config{
		AuthConfig: &config.AuthConfig{TrustedSubnet: subnet},
	}
	return NewTrustedNetHandler(cfg)
}

func TestTrustedNetworkHandler(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		subnet       string
		realIP       string
		expectedCode int
	}{
		{
			name:         "inside subnet",
			subnet:       "10.0.0.0/8",
			realIP:       "10.1.2.3",
			expectedCode: http.StatusOK,
		},
		{
			name:         "outside subnet",
			subnet:       "10.0.0.0/8",
			realIP:       "192.168.1.1",
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "unresolved subnet",
			subnet:       "",
			realIP:       "10.1.2.3",
			expectedCode: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTrustedNetHandler(tt.subnet)
			server := httptest.NewServer(handler.TrustedNetworkHandler(next))
			defer server.Close()

			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			require.NoError(t, err)
			req.Header.Set("X-Real-IP", tt.realIP)
			resp, err := server.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.expectedCode, resp.StatusCode)
		})
	}
}

func TestResolveClientIPForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "10.1.2.3, 172.16.0.1")
	ip := resolveClientIP(req)
	require.NotNil(t, ip)
	assert.Equal(t, "10.1.2.3", ip.String())
}

func TestResolveClientIPRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:54321"
	ip := resolveClientIP(req)
	require.NotNil(t, ip)
	assert.Equal(t, "10.1.2.3", ip.String())
}

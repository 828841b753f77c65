// Package middleware provides various middleware functionality.
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/7g2dvxmw94-gif/facturx-engine/internal/config"
)

// TrustedNetHandler sets object structure.
type TrustedNetHandler struct {
	Resolved bool
	IPNet    *net.IPNet
}

// NewTrustedNetHandler initializes a new trusted network handler. An empty or
// malformed subnet leaves the handler unresolved and the guarded endpoints
// unreachable.
func NewTrustedNetHandler(cfg *config.Config) *TrustedNetHandler {
	_, ipnet, err := net.ParseCIDR(cfg.AuthConfig.TrustedSubnet)
	if err != nil {
		return &TrustedNetHandler{
			Resolved: false,
			IPNet:    nil,
		}
	}
	return &TrustedNetHandler{
		Resolved: true,
		IPNet:    ipnet,
	}
}

// TrustedNetworkHandler provides trusted network handling functionality.
func (tn *TrustedNetHandler) TrustedNetworkHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !tn.Resolved {
			http.Error(w, "Internal subnet access violation", http.StatusForbidden)
			return
		}
		ip := resolveClientIP(r)
		if ip == nil || !tn.IPNet.Contains(ip) {
			http.Error(w, "Internal subnet access violation", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// resolveClientIP extracts the client IP from proxy headers falling back to
// the remote address.
func resolveClientIP(r *http.Request) net.IP {
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return net.ParseIP(realIP)
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return net.ParseIP(strings.TrimSpace(parts[0]))
	}
	ipStr, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return nil
	}
	return net.ParseIP(ipStr)
}

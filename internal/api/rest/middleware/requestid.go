// Package middleware provides various middleware functionality.
package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader is the header carrying the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// RequestIDHandler sets object structure.
type RequestIDHandler struct {
	sugar *zap.SugaredLogger
}

// NewRequestIDHandler initializes a new request ID handler.
func NewRequestIDHandler(sugar *zap.SugaredLogger) *RequestIDHandler {
	return &RequestIDHandler{sugar: sugar}
}

// RequestIDHandle assigns each request a correlation ID, echoes it in the
// response and logs the request line under it. Client-supplied IDs are kept.
func (h *RequestIDHandler) RequestIDHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		h.sugar.Infow("Request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

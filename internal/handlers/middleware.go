package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader carries the caller-supplied correlation id when present.
const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware assigns a request id to every request and stores it
// in the context under the key the structured logger reads.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(requestIDHeader, requestID)

		// The structured logger reads "request_id" as a plain string key.
		ctx := context.WithValue(r.Context(), "request_id", requestID) //nolint:staticcheck
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

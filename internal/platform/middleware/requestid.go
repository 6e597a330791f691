package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"backoffice/pkg/requestcontext"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request an id and stores it in the context. An
// inbound X-Request-ID is honored so ids propagate from upstream proxies;
// otherwise a fresh uuid is generated. The id is echoed on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request id from the context.
func GetRequestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}

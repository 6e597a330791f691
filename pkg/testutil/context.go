package testutil

import (
	"context"
	"net/http"

	platformmw "backoffice/internal/platform/middleware"
	"backoffice/pkg/requestcontext"
)

// WithOperator adds an authenticated operator to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithOperator(req *http.Request, operatorID, role string) *http.Request {
	ctx := requestcontext.WithActor(req.Context(), operatorID)
	if role != "" {
		ctx = context.WithValue(ctx, platformmw.ContextKeyRole, role)
	}
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}

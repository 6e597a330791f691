package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"backoffice/pkg/platform/middleware/metadata"
	"backoffice/pkg/requestcontext"
)

// TokenValidator defines the interface for validating operator tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*OperatorClaims, error)
}

// OperatorClaims represents the claims we expect from the token validator
type OperatorClaims struct {
	OperatorID string
	Role       string
}

// Context key for the operator role; the operator id lives in requestcontext
// as the actor.
type contextKeyRole struct{}

// ContextKeyRole is exported for use in handlers
var ContextKeyRole = contextKeyRole{}

// GetOperatorID retrieves the authenticated operator ID from the context
func GetOperatorID(ctx context.Context) string {
	return requestcontext.Actor(ctx)
}

// GetRole retrieves the operator role from the context
func GetRole(ctx context.Context) string {
	role, ok := ctx.Value(ContextKeyRole).(string)
	if !ok {
		return ""
	}
	return role
}

func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if token, ok := strings.CutPrefix(authHeader, bearerPrefix); ok {
				claims, err := validator.ValidateToken(token)
				if err != nil {
					ctx := r.Context()
					requestID := GetRequestID(ctx)
					logger.WarnContext(ctx, "unauthorized access - invalid token",
						"error", err,
						"request_id", requestID,
						"client_ip", metadata.GetClientIP(ctx),
					)
					writeUnauthorized(w, logger, ctx, requestID, "Invalid or expired token")
					return
				}

				ctx := requestcontext.WithActor(r.Context(), claims.OperatorID)
				ctx = context.WithValue(ctx, ContextKeyRole, claims.Role)

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// No Authorization header or invalid format
			ctx := r.Context()
			requestID := GetRequestID(ctx)
			logger.WarnContext(ctx, "unauthorized access - missing token",
				"request_id", requestID,
				"client_ip", metadata.GetClientIP(ctx),
			)
			writeUnauthorized(w, logger, ctx, requestID, "Missing or invalid Authorization header")
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, logger *slog.Logger, ctx context.Context, requestID, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, err := w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
	if err != nil {
		logger.ErrorContext(ctx, "failed to write unauthorized response",
			"error", err,
			"request_id", requestID,
		)
	}
}

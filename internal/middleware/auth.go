package middleware

import (
	"context"
	"net/http"
	"strings"

	"dynastytrade/internal/models"
	"dynastytrade/internal/repositories"
	"dynastytrade/internal/utils"
)

const sessionCookieName = "session_token"

const currentUserKey contextKey = "current_user"

// SessionAuth resolves the request's session token against the session
// store and rejects the request when the token is missing, unknown, or
// expired. The token comes from the Authorization header for API clients or
// the session cookie for browser flows.
func SessionAuth(sessions *repositories.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "missing_session",
					Message: "Please sign in to access this feature",
				})
				return
			}

			user, err := sessions.ResolveSession(token)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "session_expired",
					Message: "Session expired. Please sign in again.",
				})
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest extracts the opaque session token, preferring the
// Authorization header over the cookie.
func TokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// CurrentUser returns the authenticated user placed by SessionAuth. Only
// valid inside guarded handlers.
func CurrentUser(r *http.Request) *models.User {
	return r.Context().Value(currentUserKey).(*models.User)
}

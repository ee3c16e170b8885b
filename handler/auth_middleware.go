package handler

import (
	"context"
	"meetbook-api/common"
	"meetbook-api/service"
	"net/http"
)

type contextKey string

const UserIDKey contextKey = "userID"

// AuthMiddleware gates protected routes. The access token travels in an
// http-only cookie; a missing cookie and a failed verification are both
// rejections, distinguished only by message.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(accessTokenCookie)
			if err != nil {
				appErr := common.NewAppError(http.StatusUnauthorized, "Access token missing", nil)
				appErr.Send(w)
				return
			}

			userID, err := authService.VerifyToken(cookie.Value, service.TokenKindAccess)
			if err != nil {
				appErr := common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", err)
				appErr.Send(w)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

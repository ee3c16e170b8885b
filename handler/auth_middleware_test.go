// file: handler/auth_middleware_test.go

package handler

import (
	"meetbook-api/config"
	"meetbook-api/service"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func protectedEcho(t *testing.T, gotUserID *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(int)
		assert.True(t, ok)
		*gotUserID = userID
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	authService := service.NewAuthService(nil)

	t.Run("missing cookie", func(t *testing.T) {
		var gotUserID int
		mw := AuthMiddleware(authService)(protectedEcho(t, &gotUserID))

		req := httptest.NewRequest("GET", "/api/meetings", nil)
		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Zero(t, gotUserID)
	})

	t.Run("valid access cookie", func(t *testing.T) {
		token, err := authService.GenerateToken(42, service.TokenKindAccess)
		assert.NoError(t, err)

		var gotUserID int
		mw := AuthMiddleware(authService)(protectedEcho(t, &gotUserID))

		req := httptest.NewRequest("GET", "/api/meetings", nil)
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 42, gotUserID)
	})

	t.Run("expired access cookie", func(t *testing.T) {
		originalTTL := config.AppConfig.JWT.AccessTokenTTL
		config.AppConfig.JWT.AccessTokenTTL = -time.Minute
		token, err := authService.GenerateToken(42, service.TokenKindAccess)
		config.AppConfig.JWT.AccessTokenTTL = originalTTL
		assert.NoError(t, err)

		var gotUserID int
		mw := AuthMiddleware(authService)(protectedEcho(t, &gotUserID))

		req := httptest.NewRequest("GET", "/api/meetings", nil)
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Zero(t, gotUserID)
	})

	t.Run("refresh token does not pass the access gate", func(t *testing.T) {
		token, err := authService.GenerateToken(42, service.TokenKindRefresh)
		assert.NoError(t, err)

		var gotUserID int
		mw := AuthMiddleware(authService)(protectedEcho(t, &gotUserID))

		req := httptest.NewRequest("GET", "/api/meetings", nil)
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: token})
		rr := httptest.NewRecorder()
		mw.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

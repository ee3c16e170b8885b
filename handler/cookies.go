// file: handler/cookies.go

package handler

import (
	"meetbook-api/config"
	"net/http"
	"time"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

func sameSiteMode() http.SameSite {
	if config.AppConfig.Cookie.SameSite == "none" {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

// setSessionCookies attaches both session tokens as http-only cookies
// whose lifetimes match the tokens' own expiries.
func setSessionCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	secure := config.AppConfig.Cookie.Secure
	sameSite := sameSiteMode()

	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(config.AppConfig.JWT.AccessTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(config.AppConfig.JWT.RefreshTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	})
}

// clearSessionCookies expires both cookies client-side. The tokens
// themselves stay cryptographically valid until their natural expiry;
// the server keeps no session table to revoke them from.
func clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   config.AppConfig.Cookie.Secure,
			SameSite: sameSiteMode(),
		})
	}
}

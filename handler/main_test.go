// handler/main_test.go
package handler

import (
	"meetbook-api/config"
	"meetbook-api/logger"
	"os"
	"testing"
	"time"
)

// TestMain sets up shared state for the handler package tests.
func TestMain(m *testing.M) {
	logger.Init()

	config.AppConfig.JWT.AccessSecret = "test-access-secret"
	config.AppConfig.JWT.RefreshSecret = "test-refresh-secret"
	config.AppConfig.JWT.AccessTokenTTL = 15 * time.Minute
	config.AppConfig.JWT.RefreshTokenTTL = 7 * 24 * time.Hour
	config.AppConfig.Cookie.SameSite = "lax"

	os.Exit(m.Run())
}

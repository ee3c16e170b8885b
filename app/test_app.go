// file: app/test_app.go

package app

import (
	"database/sql"
	"meetbook-api/handler"
	"meetbook-api/repository"
	"meetbook-api/router"
	"meetbook-api/service"
	"net/http"
)

// TestApp wires the full stack over caller-supplied connections, so
// integration tests can run the real router against a test database and
// cache without starting a server.
type TestApp struct {
	DB     *sql.DB
	Router http.Handler
}

func NewTestApp(db *sql.DB, cache service.ICacheClient) *TestApp {
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	meetingService := service.NewMeetingService(db, meetingRepo, cache)
	agoraService := service.NewAgoraService(meetingRepo)

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	agoraHandler := handler.NewAgoraHandler(agoraService)

	return &TestApp{
		DB:     db,
		Router: router.NewRouter(authService, authHandler, userHandler, meetingHandler, agoraHandler),
	}
}

package router

import (
	"meetbook-api/config"
	"meetbook-api/handler"
	"meetbook-api/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "meetbook-api/docs" // swagger spec registration
)

func NewRouter(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	meetingHandler *handler.MeetingHandler,
	agoraHandler *handler.AgoraHandler,
) http.Handler {
	r := chi.NewRouter()

	// Cookies carry the session, so CORS must allow credentials and name
	// the frontend origin explicitly.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.AppConfig.CORS.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", handler.HealthCheck)
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.ErrorHandlingMiddleware(authHandler.Register))
		r.Post("/login", handler.ErrorHandlingMiddleware(authHandler.Login))
		r.Post("/google", handler.ErrorHandlingMiddleware(authHandler.GoogleLogin))
		r.Post("/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
		r.Post("/logout", handler.ErrorHandlingMiddleware(authHandler.Logout))

		r.Group(func(r chi.Router) {
			r.Use(handler.AuthMiddleware(authService))
			r.Get("/user", handler.ErrorHandlingMiddleware(authHandler.Me))
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(handler.AuthMiddleware(authService))

		r.Get("/users", handler.ErrorHandlingMiddleware(userHandler.ListUsers))

		r.Post("/meetings", handler.ErrorHandlingMiddleware(meetingHandler.CreateMeeting))
		r.Get("/meetings", handler.ErrorHandlingMiddleware(meetingHandler.ListMeetings))
		r.Patch("/meetings/{id}", handler.ErrorHandlingMiddleware(meetingHandler.UpdateMeeting))
		r.Delete("/meetings/{id}", handler.ErrorHandlingMiddleware(meetingHandler.DeleteMeeting))

		r.Get("/agora/token", handler.ErrorHandlingMiddleware(agoraHandler.GenerateToken))
	})

	return r
}

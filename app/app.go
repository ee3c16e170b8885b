// File: app/app.go
package app

import (
	"context"
	"fmt"
	"meetbook-api/config"
	"meetbook-api/db"
	"meetbook-api/handler"
	"meetbook-api/logger"
	"meetbook-api/repository"
	"meetbook-api/router"
	"meetbook-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	dbCfg := config.AppConfig.Database
	migrateConnStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbCfg.User, dbCfg.Password, dbCfg.Host, dbCfg.Port, dbCfg.Name)
	if err := db.RunMigrations("file://db/migrations", migrateConnStr); err != nil {
		logger.Log.Fatalf("Error applying database migrations: %v", err)
	}

	redisClient, err := db.ConnectRedis()
	if err != nil {
		logger.Log.Fatalf("Error connecting to redis: %v", err)
	}
	defer redisClient.Close()

	// Wire all layers together. Repositories, services and handlers are
	// constructed here and injected downward; nothing holds package-level
	// connection state.
	userRepo := repository.NewUserRepository(database)
	meetingRepo := repository.NewMeetingRepository(database)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	meetingService := service.NewMeetingService(database, meetingRepo, redisClient)
	agoraService := service.NewAgoraService(meetingRepo)

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	meetingHandler := handler.NewMeetingHandler(meetingService)
	agoraHandler := handler.NewAgoraHandler(agoraService)

	r := router.NewRouter(authService, authHandler, userHandler, meetingHandler, agoraHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

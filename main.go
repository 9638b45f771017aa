// File: podbooker/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"podbooker/config"
	"podbooker/database"
	bookinglogRepo "podbooker/database/repository/bookinglog"
	"podbooker/handlers"
	"podbooker/middleware"
	"podbooker/models"
	"podbooker/routes"
	"podbooker/services/calendar"
	ai "podbooker/services/intelligence"
	"podbooker/services/scheduling"
	"podbooker/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitTokenCache()

	// Host roster is fixed configuration; its order is the canonical one
	// used by availability checks and the round-robin scan.
	var hosts []models.Host
	for _, h := range config.LoadHosts() {
		hosts = append(hosts, models.Host{ID: h.ID, Name: h.Name, Email: h.Email})
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	tokenStore := calendar.NewRedisTokenStore(utils.GetTokenCacheClient())
	calendarProvider := calendar.NewGoogleProvider(tokenStore)

	var bookingLog scheduling.BookingLog
	if config.AppConfig.BookingStore == "mongo" {
		database.InitDB()
		bookingLog = bookinglogRepo.NewMongoBookingLog(database.MongoClient)
	} else {
		bookingLog = scheduling.NewMemoryBookingLog()
	}

	detailsGenerator := ai.NewDetailsGenerator(config.AppConfig.GeminiAPIKey, logger)

	schedulingEngine := scheduling.NewSchedulingEngine(
		hosts,
		calendarProvider,
		tokenStore,
		bookingLog,
		detailsGenerator,
		scheduling.SlotConfig{
			WorkdayStartHour: config.AppConfig.WorkdayStartHour,
			WorkdayEndHour:   config.AppConfig.WorkdayEndHour,
			SlotDuration:     time.Duration(config.AppConfig.SlotDurationMin) * time.Minute,
		},
		time.Duration(config.AppConfig.CalendarTimeoutSec)*time.Second,
		logger,
	)

	bookingHandler := handlers.NewBookingHandler(schedulingEngine, logger)
	authHandler := handlers.NewAuthHandler(calendar.OAuthConfig(), tokenStore, hosts, logger)

	handlerBundle := &handlers.HandlerBundle{
		Booking: bookingHandler,
		Auth:    authHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)
	utils.StartHealthMonitor(utils.GetTokenCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
